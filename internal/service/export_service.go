package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoHistory    = errors.New("暂无已完结的换班记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出用户的换班历史视图（终态记录）为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportHistory 导出换班历史为 Excel
	ExportHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	swap   SwapService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(swap SwapService, logger *zap.Logger) ExportService {
	return &exportService{swap: swap, logger: logger}
}

// 历史表列头
var historyHeaders = []string{
	"申请ID", "类型", "状态", "紧急程度", "申请人", "对方",
	"原班次(天/班)", "期望班次(天/班)", "原因", "经理备注", "创建时间", "完成时间",
}

func (e *exportService) ExportHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	reqs, err := e.swap.Snapshot(ctx, userID)
	if err != nil {
		e.logger.Error("导出前拉取快照失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	buckets := e.swap.Resolver().Categorize(reqs, userID)
	if len(buckets.History) == 0 {
		return nil, "", ErrExportNoHistory
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "换班历史"
	f.SetSheetName("Sheet1", sheet)

	// 列头
	for i, h := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// 数据行（Categorize 已按紧急程度/时间排好序）
	for row, req := range buckets.History {
		values := historyRow(&req)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		e.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("swap-history-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// historyRow 将一条终态申请铺平为表格行
func historyRow(req *model.SwapRequest) []any {
	counterpart := ""
	if cp := req.CounterpartID(); cp != nil {
		counterpart = *cp
	}

	targetShift := ""
	if req.TargetDay != nil && req.TargetShift != nil {
		targetShift = fmt.Sprintf("%d/%d", *req.TargetDay, *req.TargetShift)
	}

	completed := ""
	if req.CompletedAt != nil {
		completed = req.CompletedAt.Format("2006-01-02 15:04")
	}

	return []any{
		req.SwapRequestID,
		string(req.SwapType),
		string(workflow.Normalize(req.RawStatus, req.SwapType)),
		string(req.Urgency),
		req.RequestingStaffID,
		counterpart,
		fmt.Sprintf("%d/%d", req.OriginalDay, req.OriginalShift),
		targetShift,
		req.Reason,
		req.ManagerNotes,
		req.CreatedAt.Format("2006-01-02 15:04"),
		completed,
	}
}
