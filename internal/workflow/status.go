package workflow

import "github.com/berba-q/hospitality-scheduler-sub001/internal/model"

// Normalize 将上游原始状态归一为规范状态
//
// 历史拼写映射：
//   - potential_assignment → awaiting_target
//   - assigned             → awaiting_target
//   - manager_approved     → auto: awaiting_target / specific: staff_accepted
//     （同一原始值按类型归一不同：两种流程的经理审批发生在不同节点）
//
// 全函数：映射表之外的值视为已是规范状态原样放行，不报错——
// 单条畸形记录不应冻结整个换班界面。幂等。
func Normalize(raw string, swapType model.SwapType) model.Status {
	switch raw {
	case "potential_assignment", "assigned":
		return model.StatusAwaitingTarget
	case "manager_approved":
		if swapType == model.SwapTypeAuto {
			return model.StatusAwaitingTarget
		}
		return model.StatusStaffAccepted
	default:
		return model.Status(raw)
	}
}
