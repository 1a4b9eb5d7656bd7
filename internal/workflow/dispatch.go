package workflow

import (
	"fmt"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

// Action 用户请求的动作
type Action string

const (
	ActionAccept       Action = "accept"
	ActionDecline      Action = "decline"
	ActionApprove      Action = "approve"
	ActionFinalApprove Action = "final_approve"
	ActionCancel       Action = "cancel"
)

// Operation 上游排班服务的后端操作
// 语义相近的动作因类型/状态不同走不同端点，不做"就近"猜测
type Operation string

const (
	OpRespondPotentialAssignment Operation = "respond_potential_assignment"
	OpRespondSwap                Operation = "respond_swap"
	OpManagerSwapDecision        Operation = "manager_swap_decision"
	OpManagerFinalApproval       Operation = "manager_final_approval"
	OpCancelSwapRequest          Operation = "cancel_swap_request"
)

// Call 发往上游的调用描述（操作 + 载荷）
// 转发成功不改动本地状态：调用方应丢弃过期快照并重新拉取
type Call struct {
	Operation     Operation      `json:"operation"`
	SwapRequestID string         `json:"swap_request_id"`
	Payload       map[string]any `json:"payload"`
}

// InvalidTransitionError 非法动作组合
// 携带出错时的类型/状态/动作便于诊断；绝不静默换成其它后端调用
type InvalidTransitionError struct {
	SwapType model.SwapType
	Status   model.Status
	Action   Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("非法换班流转: type=%s status=%s action=%s", e.SwapType, e.Status, e.Action)
}

// Dispatch 将 (类型, 当前状态, 动作) 映射为上游调用描述
//
// 映射表：
//   - auto + awaiting_target（含历史 potential_assignment/assigned）
//     accept/decline → respond_potential_assignment {accepted, notes, availability_confirmed}
//   - specific + pending 或原始 manager_approved
//     accept/decline → respond_swap {accepted, notes, confirm_availability}
//   - 任意类型 + pending + approve       → manager_swap_decision {approved, notes}
//   - 任意类型 + manager_final_approval + final_approve → manager_final_approval {approved, notes}
//   - 申请人本人 + 非终态 + cancel        → cancel_swap_request {reason}
//
// 其余组合一律返回 *InvalidTransitionError
func Dispatch(req *model.SwapRequest, action Action, notes, actorID string) (*Call, error) {
	status := Normalize(req.RawStatus, req.SwapType)

	invalid := func() (*Call, error) {
		return nil, &InvalidTransitionError{SwapType: req.SwapType, Status: status, Action: action}
	}

	switch action {
	case ActionAccept, ActionDecline:
		accepted := action == ActionAccept

		if req.SwapType == model.SwapTypeAuto {
			if status != model.StatusAwaitingTarget {
				return invalid()
			}
			return &Call{
				Operation:     OpRespondPotentialAssignment,
				SwapRequestID: req.SwapRequestID,
				Payload: map[string]any{
					"accepted":               accepted,
					"notes":                  notes,
					"availability_confirmed": true,
				},
			}, nil
		}

		// specific：pending 可响应；此外上游的原始 manager_approved
		// （经理先批的旧流程）也允许目标同事响应
		if status != model.StatusPending && req.RawStatus != "manager_approved" {
			return invalid()
		}
		return &Call{
			Operation:     OpRespondSwap,
			SwapRequestID: req.SwapRequestID,
			Payload: map[string]any{
				"accepted":             accepted,
				"notes":                notes,
				"confirm_availability": true,
			},
		}, nil

	case ActionApprove:
		if status != model.StatusPending {
			return invalid()
		}
		return &Call{
			Operation:     OpManagerSwapDecision,
			SwapRequestID: req.SwapRequestID,
			Payload: map[string]any{
				"approved": true,
				"notes":    notes,
			},
		}, nil

	case ActionFinalApprove:
		if status != model.StatusManagerFinalApproval {
			return invalid()
		}
		return &Call{
			Operation:     OpManagerFinalApproval,
			SwapRequestID: req.SwapRequestID,
			Payload: map[string]any{
				"approved": true,
				"notes":    notes,
			},
		}, nil

	case ActionCancel:
		if status.IsTerminal() {
			return invalid()
		}
		if req.RequestingStaffID != actorID && req.UserRole != model.RoleRequester {
			return invalid()
		}
		return &Call{
			Operation:     OpCancelSwapRequest,
			SwapRequestID: req.SwapRequestID,
			Payload: map[string]any{
				"reason": notes,
			},
		}, nil

	default:
		return invalid()
	}
}
