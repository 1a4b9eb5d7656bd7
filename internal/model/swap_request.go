package model

import "time"

// ── 换班类型 ──

// SwapType 换班申请类型
type SwapType string

const (
	SwapTypeSpecific SwapType = "specific" // 指定同事互换
	SwapTypeAuto     SwapType = "auto"     // 系统/经理指派顶班
)

// ── 规范状态 ──

// Status 换班申请规范状态
// 上游存在历史拼写（potential_assignment / assigned / manager_approved），
// 统一经 workflow.Normalize 归一后才进入下游逻辑
type Status string

const (
	StatusPending              Status = "pending"
	StatusAwaitingTarget       Status = "awaiting_target"
	StatusStaffAccepted        Status = "staff_accepted"
	StatusManagerFinalApproval Status = "manager_final_approval"
	StatusExecuted             Status = "executed"
	StatusStaffDeclined        Status = "staff_declined"
	StatusAssignmentDeclined   Status = "assignment_declined"
	StatusAssignmentFailed     Status = "assignment_failed"
	StatusDeclined             Status = "declined"
	StatusCancelled            Status = "cancelled"
)

// IsTerminal 判断是否为终态（终态后本引擎不再呈现任何可执行动作）
func (s Status) IsTerminal() bool {
	switch s {
	case StatusExecuted, StatusStaffDeclined, StatusAssignmentDeclined,
		StatusAssignmentFailed, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// ── 紧急程度 ──

// Urgency 紧急程度（有序：low < normal < high < emergency）
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyNormal    Urgency = "normal"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// Rank 返回紧急程度序数，用于排序；未知值按 normal 处理
func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyHigh:
		return 2
	case UrgencyEmergency:
		return 3
	default:
		return 1
	}
}

// ── 角色提示 ──

// Role 上游下发的调用者角色提示
// 上游可能应用委托等本地不可见的业务规则，提示存在时优先于本地身份匹配
type Role string

const (
	RoleRequester Role = "requester"
	RoleTarget    Role = "target"
	RoleAssigned  Role = "assigned"
)

// SwapRequest 换班申请（严格内部记录）
// 权威副本由上游排班服务持有；本服务只操作每个刷新周期拉取的快照
type SwapRequest struct {
	SwapRequestID     string   `json:"swap_request_id"`
	ScheduleID        string   `json:"schedule_id"`
	RequestingStaffID string   `json:"requesting_staff_id"`
	SwapType          SwapType `json:"swap_type"`

	// 二选一：specific 填 TargetStaffID，auto 选中候选人后填 AssignedStaffID
	TargetStaffID   *string `json:"target_staff_id,omitempty"`
	AssignedStaffID *string `json:"assigned_staff_id,omitempty"`

	OriginalDay   int  `json:"original_day"`
	OriginalShift int  `json:"original_shift"`
	TargetDay     *int `json:"target_day,omitempty"`   // 仅 specific：期望换回的班次坐标
	TargetShift   *int `json:"target_shift,omitempty"` // 仅 specific

	Urgency   Urgency `json:"urgency"`
	Status    Status  `json:"status"`     // 规范状态
	RawStatus string  `json:"raw_status"` // 上游原始状态（保留历史拼写）

	// 三态响应标记：nil=未响应，true/false=已响应；只会从 nil 变更一次
	TargetStaffAccepted   *bool `json:"target_staff_accepted,omitempty"`   // 仅 specific 有意义
	AssignedStaffAccepted *bool `json:"assigned_staff_accepted,omitempty"` // 仅 auto 有意义

	ManagerApproved      bool `json:"manager_approved"`
	ManagerFinalApproved bool `json:"manager_final_approved"`

	Reason       string `json:"reason,omitempty"`
	ManagerNotes string `json:"manager_notes,omitempty"`

	UserRole Role `json:"user_role,omitempty"` // 上游角色提示，可为空

	RoleMatchOverride bool   `json:"role_match_override"`
	RoleMatchReason   string `json:"role_match_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 当且仅当 status=executed
}

// CounterpartID 返回当前申请的对方员工 ID（按类型取 target/assigned），未指派返回 nil
func (r *SwapRequest) CounterpartID() *string {
	if r.SwapType == SwapTypeAuto {
		return r.AssignedStaffID
	}
	return r.TargetStaffID
}

// Acceptance 返回与类型对应的三态响应标记
func (r *SwapRequest) Acceptance() *bool {
	if r.SwapType == SwapTypeAuto {
		return r.AssignedStaffAccepted
	}
	return r.TargetStaffAccepted
}
