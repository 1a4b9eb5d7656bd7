package workflow

import (
	"testing"
	"time"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

func containsID(reqs []model.SwapRequest, id string) bool {
	for i := range reqs {
		if reqs[i].SwapRequestID == id {
			return true
		}
	}
	return false
}

func TestCategorize_MyRequestNotInForMe(t *testing.T) {
	r := NewResolver()
	reqs := []model.SwapRequest{
		specificReq("sw-001", "staff-a", "staff-b", "pending"),
	}

	b := r.Categorize(reqs, "staff-a")
	if !containsID(b.MyRequests, "sw-001") {
		t.Error("申请人视角应出现在 my_requests")
	}
	if !containsID(b.All, "sw-001") {
		t.Error("申请人视角应出现在 all")
	}
	if containsID(b.ForMe, "sw-001") {
		t.Error("申请人自己的申请不应出现在 for_me")
	}
}

func TestCategorize_ActionNeededSubsetOfForMe(t *testing.T) {
	r := NewResolver()

	responded := specificReq("sw-002", "staff-a", "staff-b", "pending")
	responded.TargetStaffAccepted = boolptr(true)

	reqs := []model.SwapRequest{
		specificReq("sw-001", "staff-a", "staff-b", "pending"),
		responded,
		autoReq("sw-003", "staff-c", "potential_assignment", strptr("staff-b")),
	}

	b := r.Categorize(reqs, "staff-b")
	for i := range b.ActionNeeded {
		if !containsID(b.ForMe, b.ActionNeeded[i].SwapRequestID) {
			t.Errorf("action_needed 必须是 for_me 的子集，越界记录=%s", b.ActionNeeded[i].SwapRequestID)
		}
	}
	if containsID(b.ActionNeeded, "sw-002") {
		t.Error("已响应的申请不应出现在 action_needed")
	}
	if !containsID(b.ActionNeeded, "sw-001") || !containsID(b.ActionNeeded, "sw-003") {
		t.Error("未响应的可响应申请应出现在 action_needed")
	}
}

func TestCategorize_HistoryIffTerminal(t *testing.T) {
	r := NewResolver()
	reqs := []model.SwapRequest{
		specificReq("sw-001", "staff-a", "staff-b", "pending"),
		specificReq("sw-002", "staff-a", "staff-b", "executed"),
		specificReq("sw-003", "staff-a", "staff-b", "staff_declined"),
		autoReq("sw-004", "staff-a", "assignment_failed", nil),
		autoReq("sw-005", "staff-a", "cancelled", nil),
		specificReq("sw-006", "staff-a", "staff-b", "declined"),
		autoReq("sw-007", "staff-a", "assignment_declined", strptr("staff-c")),
	}

	b := r.Categorize(reqs, "staff-a")
	if containsID(b.History, "sw-001") {
		t.Error("pending 不应出现在 history")
	}
	for _, id := range []string{"sw-002", "sw-003", "sw-004", "sw-005", "sw-006", "sw-007"} {
		if !containsID(b.History, id) {
			t.Errorf("终态申请 %s 应出现在 history", id)
		}
	}
}

func TestCategorize_BucketsMayOverlap(t *testing.T) {
	r := NewResolver()
	// 发给自己处理的终态申请：同时在 my_requests 与 history
	reqs := []model.SwapRequest{
		specificReq("sw-001", "staff-a", "staff-b", "executed"),
	}

	b := r.Categorize(reqs, "staff-a")
	if !containsID(b.MyRequests, "sw-001") || !containsID(b.History, "sw-001") {
		t.Error("视图允许重叠：终态申请应同时在 my_requests 与 history")
	}
}

func TestCategorize_OrderingUrgencyThenRecency(t *testing.T) {
	r := NewResolver()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	older := specificReq("sw-old", "staff-a", "staff-b", "pending")
	older.CreatedAt = base

	newer := specificReq("sw-new", "staff-a", "staff-b", "pending")
	newer.CreatedAt = base.Add(time.Hour)

	urgent := specificReq("sw-urgent", "staff-a", "staff-b", "pending")
	urgent.Urgency = model.UrgencyEmergency
	urgent.CreatedAt = base.Add(-time.Hour) // 最早创建，但最紧急

	b := r.Categorize([]model.SwapRequest{older, newer, urgent}, "staff-a")

	got := make([]string, 0, len(b.MyRequests))
	for i := range b.MyRequests {
		got = append(got, b.MyRequests[i].SwapRequestID)
	}
	want := []string{"sw-urgent", "sw-new", "sw-old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("排序错误: 期望 %v，实际 %v", want, got)
		}
	}
}
