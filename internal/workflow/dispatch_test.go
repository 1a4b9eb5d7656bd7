package workflow

import (
	"errors"
	"testing"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

func TestDispatch_AutoAcceptAwaitingTarget(t *testing.T) {
	for _, raw := range []string{"awaiting_target", "potential_assignment", "assigned"} {
		req := autoReq("sw-001", "staff-a", raw, strptr("staff-c"))

		call, err := Dispatch(&req, ActionAccept, "没问题", "staff-c")
		if err != nil {
			t.Fatalf("raw=%q: Dispatch 应成功: %v", raw, err)
		}
		if call.Operation != OpRespondPotentialAssignment {
			t.Errorf("raw=%q: 期望 respond_potential_assignment，实际=%s", raw, call.Operation)
		}
		if v, ok := call.Payload["availability_confirmed"].(bool); !ok || !v {
			t.Error("auto 响应载荷应携带 availability_confirmed=true")
		}
		if v, ok := call.Payload["accepted"].(bool); !ok || !v {
			t.Error("accept 动作应产生 accepted=true")
		}
	}
}

func TestDispatch_SpecificAcceptPending(t *testing.T) {
	req := specificReq("sw-002", "staff-a", "staff-b", "pending")

	call, err := Dispatch(&req, ActionAccept, "", "staff-b")
	if err != nil {
		t.Fatalf("Dispatch 应成功: %v", err)
	}
	if call.Operation != OpRespondSwap {
		t.Errorf("期望 respond_swap，实际=%s", call.Operation)
	}
	if v, ok := call.Payload["confirm_availability"].(bool); !ok || !v {
		t.Error("specific 响应载荷应携带 confirm_availability=true")
	}
	if _, present := call.Payload["availability_confirmed"]; present {
		t.Error("specific 响应不应使用 auto 的载荷字段")
	}
}

func TestDispatch_SpecificDeclineLegacyManagerApproved(t *testing.T) {
	// 经理先批的旧流程：原始 manager_approved 仍允许目标同事响应
	req := specificReq("sw-003", "staff-a", "staff-b", "manager_approved")

	call, err := Dispatch(&req, ActionDecline, "那天有事", "staff-b")
	if err != nil {
		t.Fatalf("Dispatch 应成功: %v", err)
	}
	if call.Operation != OpRespondSwap {
		t.Errorf("期望 respond_swap，实际=%s", call.Operation)
	}
	if v, ok := call.Payload["accepted"].(bool); !ok || v {
		t.Error("decline 动作应产生 accepted=false")
	}
}

func TestDispatch_ManagerApprovePending(t *testing.T) {
	for _, req := range []model.SwapRequest{
		specificReq("sw-004", "staff-a", "staff-b", "pending"),
		autoReq("sw-005", "staff-a", "pending", nil),
	} {
		call, err := Dispatch(&req, ActionApprove, "同意", "mgr-001")
		if err != nil {
			t.Fatalf("type=%s: Dispatch 应成功: %v", req.SwapType, err)
		}
		if call.Operation != OpManagerSwapDecision {
			t.Errorf("期望 manager_swap_decision，实际=%s", call.Operation)
		}
	}
}

func TestDispatch_ApproveExecutedFails(t *testing.T) {
	req := specificReq("sw-006", "staff-a", "staff-b", "executed")

	_, err := Dispatch(&req, ActionApprove, "", "mgr-001")
	var invalidErr *InvalidTransitionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("期望 InvalidTransitionError，实际: %v", err)
	}
	if invalidErr.Status != model.StatusExecuted || invalidErr.Action != ActionApprove {
		t.Errorf("错误应携带出错组合，实际: %+v", invalidErr)
	}
}

func TestDispatch_FinalApprove(t *testing.T) {
	req := autoReq("sw-007", "staff-a", "manager_final_approval", strptr("staff-c"))

	call, err := Dispatch(&req, ActionFinalApprove, "", "mgr-001")
	if err != nil {
		t.Fatalf("Dispatch 应成功: %v", err)
	}
	if call.Operation != OpManagerFinalApproval {
		t.Errorf("期望 manager_final_approval，实际=%s", call.Operation)
	}

	// 其它状态下 final_approve 非法
	req2 := autoReq("sw-008", "staff-a", "pending", nil)
	if _, err := Dispatch(&req2, ActionFinalApprove, "", "mgr-001"); err == nil {
		t.Error("pending 下 final_approve 应失败")
	}
}

func TestDispatch_CancelRules(t *testing.T) {
	// 申请人本人 + 非终态：允许
	req := specificReq("sw-009", "staff-a", "staff-b", "awaiting_target")
	call, err := Dispatch(&req, ActionCancel, "计划有变", "staff-a")
	if err != nil {
		t.Fatalf("Dispatch 应成功: %v", err)
	}
	if call.Operation != OpCancelSwapRequest {
		t.Errorf("期望 cancel_swap_request，实际=%s", call.Operation)
	}
	if call.Payload["reason"] != "计划有变" {
		t.Errorf("cancel 载荷应携带 reason，实际=%v", call.Payload)
	}

	// 非申请人：拒绝
	if _, err := Dispatch(&req, ActionCancel, "", "staff-b"); err == nil {
		t.Error("非申请人 cancel 应失败")
	}

	// 终态：拒绝
	done := specificReq("sw-010", "staff-a", "staff-b", "executed")
	if _, err := Dispatch(&done, ActionCancel, "", "staff-a"); err == nil {
		t.Error("终态下 cancel 应失败")
	}
}

func TestDispatch_NoClosestGuess(t *testing.T) {
	// specific 不允许走 auto 的指派响应端点
	req := specificReq("sw-011", "staff-a", "staff-b", "awaiting_target")
	// awaiting_target 对 specific 只能来自归一后的 assigned 类历史值，
	// 不属于 pending / manager_approved，accept 应直接报非法组合
	_, err := Dispatch(&req, ActionAccept, "", "staff-b")
	var invalidErr *InvalidTransitionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("期望 InvalidTransitionError，实际: %v", err)
	}

	// 未知动作
	req2 := specificReq("sw-012", "staff-a", "staff-b", "pending")
	if _, err := Dispatch(&req2, Action("escalate"), "", "staff-a"); err == nil {
		t.Error("未知动作应失败")
	}
}
