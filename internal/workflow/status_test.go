package workflow

import (
	"testing"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

// ── 历史拼写映射 ──

func TestNormalize_LegacyTokens(t *testing.T) {
	for _, raw := range []string{"potential_assignment", "assigned"} {
		for _, st := range []model.SwapType{model.SwapTypeAuto, model.SwapTypeSpecific} {
			got := Normalize(raw, st)
			if got != model.StatusAwaitingTarget {
				t.Errorf("Normalize(%q, %s) 期望 awaiting_target，实际=%s", raw, st, got)
			}
		}
	}
}

func TestNormalize_ManagerApprovedByType(t *testing.T) {
	// 同一原始值按类型归一不同
	if got := Normalize("manager_approved", model.SwapTypeAuto); got != model.StatusAwaitingTarget {
		t.Errorf("auto 期望 awaiting_target，实际=%s", got)
	}
	if got := Normalize("manager_approved", model.SwapTypeSpecific); got != model.StatusStaffAccepted {
		t.Errorf("specific 期望 staff_accepted，实际=%s", got)
	}
}

func TestNormalize_PassthroughUnknown(t *testing.T) {
	// 映射表之外的值原样放行，不报错
	if got := Normalize("some_future_status", model.SwapTypeAuto); got != "some_future_status" {
		t.Errorf("期望原样放行，实际=%s", got)
	}
	if got := Normalize("executed", model.SwapTypeSpecific); got != model.StatusExecuted {
		t.Errorf("规范状态应保持不变，实际=%s", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tokens := []string{
		"pending", "potential_assignment", "assigned", "manager_approved",
		"awaiting_target", "staff_accepted", "manager_final_approval",
		"executed", "declined", "cancelled", "garbage",
	}
	for _, raw := range tokens {
		for _, st := range []model.SwapType{model.SwapTypeAuto, model.SwapTypeSpecific} {
			once := Normalize(raw, st)
			twice := Normalize(string(once), st)
			if once != twice {
				t.Errorf("Normalize 不幂等: raw=%q type=%s 一次=%s 两次=%s", raw, st, once, twice)
			}
		}
	}
}
