package dto

import (
	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// ── 换班模块 DTO ──

// ActRequest 执行换班动作请求
type ActRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline approve final_approve cancel"`
	Notes  string `json:"notes"  binding:"max=500"`
}

// ── 响应 ──

// SwapRequestView 单条换班申请 + 派生能力标记 + 进度描述
type SwapRequestView struct {
	model.SwapRequest
	Permissions workflow.Permissions `json:"permissions"`
	Progress    workflow.Progress    `json:"progress"`
}

// SwapBoardResponse 用户视角的五个命名视图（允许重叠）
type SwapBoardResponse struct {
	MyRequests   []SwapRequestView `json:"my_requests"`
	ForMe        []SwapRequestView `json:"for_me"`
	ActionNeeded []SwapRequestView `json:"action_needed"`
	History      []SwapRequestView `json:"history"`
	All          []SwapRequestView `json:"all"`
	FetchedAt    string            `json:"fetched_at"`
	FromCache    bool              `json:"from_cache"`
}

// ActResponse 动作转发结果
// 转发成功只代表上游已受理；界面应重新拉取快照而非本地修补
type ActResponse struct {
	SwapRequestID string `json:"swap_request_id"`
	Operation     string `json:"operation"`
	Dispatched    bool   `json:"dispatched"`
}
