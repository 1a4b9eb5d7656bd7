package handler

import "github.com/berba-q/hospitality-scheduler-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Swap   *SwapHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Swap:   NewSwapHandler(svc.Swap),
		Export: NewExportHandler(svc.Export),
	}
}
