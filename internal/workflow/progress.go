package workflow

import "github.com/berba-q/hospitality-scheduler-sub001/internal/model"

// Actor 下一步动作归属
type Actor string

const (
	ActorManager Actor = "manager"
	ActorStaff   Actor = "staff"
	ActorSystem  Actor = "system"
)

// Step 工作流展示步骤
type Step struct {
	Status    model.Status `json:"status"`
	Percent   int          `json:"percent"`
	NextActor Actor        `json:"next_actor"`
}

// Progress 面向展示的进度描述
type Progress struct {
	StepIndex  int   `json:"step_index"`
	TotalSteps int   `json:"total_steps"`
	Percent    int   `json:"percent"`
	NextActor  Actor `json:"next_actor"`
}

// 两条步骤序列：specific 不经过"等待指派候选人"节点
// （auto 必须先由系统/经理选出候选人，候选人才能响应）
var (
	autoSteps = []Step{
		{model.StatusPending, 10, ActorManager},
		{model.StatusAwaitingTarget, 35, ActorStaff},
		{model.StatusStaffAccepted, 60, ActorManager},
		{model.StatusManagerFinalApproval, 85, ActorManager},
		{model.StatusExecuted, 100, ActorSystem},
	}
	specificSteps = []Step{
		{model.StatusPending, 10, ActorStaff},
		{model.StatusStaffAccepted, 60, ActorManager},
		{model.StatusManagerFinalApproval, 85, ActorManager},
		{model.StatusExecuted, 100, ActorSystem},
	}
)

// MapProgress 将状态映射为步骤序号、完成百分比与下一步动作归属
//
// 先做状态归一以兼容历史拼写；归一后仍不在序列中的状态回退到
// 第 0 步（降级展示而非报错——单条畸形记录不应中断整块面板；
// 该回退是否会误导用户仍是待澄清项，见 DESIGN.md）
func MapProgress(raw string, swapType model.SwapType) Progress {
	steps := specificSteps
	if swapType == model.SwapTypeAuto {
		steps = autoSteps
	}

	status := Normalize(raw, swapType)
	for i, step := range steps {
		if step.Status == status {
			return Progress{
				StepIndex:  i,
				TotalSteps: len(steps),
				Percent:    step.Percent,
				NextActor:  step.NextActor,
			}
		}
	}

	// 未知状态：进度归零展示
	return Progress{
		StepIndex:  0,
		TotalSteps: len(steps),
		Percent:    0,
		NextActor:  ActorSystem,
	}
}
