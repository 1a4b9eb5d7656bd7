package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/service"
	"github.com/berba-q/hospitality-scheduler-sub001/pkg/response"
)

// ExportHandler 导出模块 Handler
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportHistory 导出我的换班历史为 Excel
// GET /api/v1/export/swaps/history
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.svc.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoHistory):
			response.NotFound(c, 17001, "暂无已完结的换班记录")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
