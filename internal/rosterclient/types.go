package rosterclient

import (
	"time"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// RawSwapRequest 上游下发的宽松记录形态
// 历史字段别名与可选字段在 ToModel 中一次性收敛，宽松类型不越过该边界
type RawSwapRequest struct {
	ID         string `json:"id"`
	ScheduleID string `json:"schedule_id"`

	RequestingStaffID string `json:"requesting_staff_id"`
	RequesterID       string `json:"requester_id,omitempty"` // 历史别名

	SwapType string `json:"swap_type"`

	TargetStaffID   *string `json:"target_staff_id,omitempty"`
	AssignedStaffID *string `json:"assigned_staff_id,omitempty"`

	OriginalDay   int  `json:"original_day"`
	OriginalShift int  `json:"original_shift"`
	TargetDay     *int `json:"target_day,omitempty"`
	TargetShift   *int `json:"target_shift,omitempty"`

	Urgency string `json:"urgency,omitempty"`
	Status  string `json:"status"`

	TargetStaffAccepted   *bool `json:"target_staff_accepted,omitempty"`
	AssignedStaffAccepted *bool `json:"assigned_staff_accepted,omitempty"`

	ManagerApproved      bool `json:"manager_approved,omitempty"`
	ManagerFinalApproved bool `json:"manager_final_approved,omitempty"`

	Reason       string `json:"reason,omitempty"`
	ManagerNotes string `json:"manager_notes,omitempty"`

	UserRole string `json:"user_role,omitempty"` // requester | target | assigned

	RoleMatchOverride bool   `json:"role_match_override,omitempty"`
	RoleMatchReason   string `json:"role_match_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TimelineEvent 单条申请的历史事件（只读透传给展示层，引擎不解读）
type TimelineEvent struct {
	EventID   string    `json:"event_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToModel 宽松记录 → 严格内部记录的全量适配
// 字段收敛 + 状态归一在此一次完成；不会失败
func (r *RawSwapRequest) ToModel() model.SwapRequest {
	requester := r.RequestingStaffID
	if requester == "" {
		requester = r.RequesterID
	}

	swapType := model.SwapType(r.SwapType)
	if swapType != model.SwapTypeAuto {
		swapType = model.SwapTypeSpecific
	}

	urgency := model.Urgency(r.Urgency)
	if r.Urgency == "" {
		urgency = model.UrgencyNormal
	}

	return model.SwapRequest{
		SwapRequestID:         r.ID,
		ScheduleID:            r.ScheduleID,
		RequestingStaffID:     requester,
		SwapType:              swapType,
		TargetStaffID:         r.TargetStaffID,
		AssignedStaffID:       r.AssignedStaffID,
		OriginalDay:           r.OriginalDay,
		OriginalShift:         r.OriginalShift,
		TargetDay:             r.TargetDay,
		TargetShift:           r.TargetShift,
		Urgency:               urgency,
		Status:                workflow.Normalize(r.Status, swapType),
		RawStatus:             r.Status,
		TargetStaffAccepted:   r.TargetStaffAccepted,
		AssignedStaffAccepted: r.AssignedStaffAccepted,
		ManagerApproved:       r.ManagerApproved,
		ManagerFinalApproved:  r.ManagerFinalApproved,
		Reason:                r.Reason,
		ManagerNotes:          r.ManagerNotes,
		UserRole:              model.Role(r.UserRole),
		RoleMatchOverride:     r.RoleMatchOverride,
		RoleMatchReason:       r.RoleMatchReason,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		ExpiresAt:             r.ExpiresAt,
		CompletedAt:           r.CompletedAt,
	}
}
