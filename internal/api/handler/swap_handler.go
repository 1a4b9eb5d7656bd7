package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/dto"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/rosterclient"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/service"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
	"github.com/berba-q/hospitality-scheduler-sub001/pkg/response"
)

// SwapHandler 换班模块 Handler
type SwapHandler struct {
	svc service.SwapService
}

// NewSwapHandler 创建 SwapHandler 实例
func NewSwapHandler(svc service.SwapService) *SwapHandler {
	return &SwapHandler{svc: svc}
}

// GetBoard 获取我的换班面板（五个视图）
// GET /api/v1/swaps/board
func (h *SwapHandler) GetBoard(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetBoard(c.Request.Context(), userID)
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetRequest 获取单条换班申请（含能力标记与进度）
// GET /api/v1/swaps/:id
func (h *SwapHandler) GetRequest(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetRequest(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetTimeline 获取单条换班申请的历史事件
// GET /api/v1/swaps/:id/timeline
func (h *SwapHandler) GetTimeline(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	events, err := h.svc.GetTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.OK(c, gin.H{"events": events})
}

// Act 执行换班动作（accept/decline/approve/final_approve/cancel）
// POST /api/v1/swaps/:id/actions
func (h *SwapHandler) Act(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16000, "请求参数无效")
		return
	}

	resp, err := h.svc.Act(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.Accepted(c, resp)
}

// ListDispatchLogs 查询某条申请的调度审计日志（仅经理）
// GET /api/v1/swaps/:id/dispatch-logs
func (h *SwapHandler) ListDispatchLogs(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	logs, err := h.svc.ListDispatchLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.OK(c, gin.H{"dispatch_logs": logs})
}

// ListMyDispatchLogs 查询我最近转发过的动作
// GET /api/v1/swaps/actions/recent
func (h *SwapHandler) ListMyDispatchLogs(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.svc.ListMyDispatchLogs(c.Request.Context(), userID, limit)
	if err != nil {
		handleSwapError(c, err)
		return
	}
	response.OK(c, gin.H{"dispatch_logs": logs})
}

// handleSwapError 换班模块统一错误映射
func handleSwapError(c *gin.Context, err error) {
	var invalidErr *workflow.InvalidTransitionError
	var remoteErr *rosterclient.RemoteError

	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 16001, "换班申请不存在")
	case errors.As(err, &invalidErr):
		// 非法组合绝不换成"最接近"的操作，直接 409 报给界面
		response.Conflict(c, 16002, invalidErr.Error())
	case errors.As(err, &remoteErr):
		// 上游错误（含并发响应冲突）原样透传
		response.ErrorWithDetails(c, http.StatusBadGateway, 16003, "排班服务返回错误", remoteErr.Body)
	default:
		response.InternalError(c)
	}
}
