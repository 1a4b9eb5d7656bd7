package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/repository"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/rosterclient"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

func setupTestExportService() (ExportService, *mockRosterGateway) {
	roster := newMockRosterGateway()
	repo := &repository.Repository{DispatchLog: newMockDispatchLogRepo()}

	cfg := &config.Config{}
	cfg.Redis.SnapshotTTL = 30 * time.Second

	swap := NewSwapService(cfg, repo, roster, nil, workflow.NewResolver(), zap.NewNop())
	return NewExportService(swap, zap.NewNop()), roster
}

func TestExportService_ExportHistory_Success(t *testing.T) {
	svc, roster := setupTestExportService()

	done := rawSpecific("sw-001", "staff-a", "staff-b", "executed")
	completed := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)
	done.CompletedAt = &completed

	roster.raws = []rosterclient.RawSwapRequest{
		done,
		rawSpecific("sw-002", "staff-a", "staff-b", "pending"), // 非终态不导出
	}

	buf, filename, err := svc.ExportHistory(context.Background(), "staff-a")
	if err != nil {
		t.Fatalf("ExportHistory 应成功: %v", err)
	}
	if filename == "" {
		t.Error("应返回建议文件名")
	}

	// 校验生成的工作簿内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("换班历史")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 1 行列头 + 1 行终态记录
	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际=%d", len(rows))
	}
	if rows[1][0] != "sw-001" {
		t.Errorf("期望导出 sw-001，实际=%s", rows[1][0])
	}
}

func TestExportService_ExportHistory_Empty(t *testing.T) {
	svc, roster := setupTestExportService()
	roster.raws = []rosterclient.RawSwapRequest{
		rawSpecific("sw-001", "staff-a", "staff-b", "pending"),
	}

	_, _, err := svc.ExportHistory(context.Background(), "staff-a")
	if !errors.Is(err, ErrExportNoHistory) {
		t.Errorf("期望 ErrExportNoHistory，实际: %v", err)
	}
}
