package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/repository"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/rosterclient"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// RosterGateway 上游排班服务依赖（便于测试替换）
type RosterGateway interface {
	ListSwapRequests(ctx context.Context, userID string) ([]rosterclient.RawSwapRequest, error)
	GetTimeline(ctx context.Context, swapRequestID string) ([]rosterclient.TimelineEvent, error)
	Execute(ctx context.Context, call *workflow.Call) error
}

// SnapshotCache 快照缓存依赖；Redis 不可用时以 nil 注入并降级为直连上游
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, userID string) (string, error)
	SetSnapshot(ctx context.Context, userID, payload string, ttl time.Duration) error
	InvalidateSnapshot(ctx context.Context, userID string) error
}

// Service 所有 Service 的聚合入口
type Service struct {
	Swap   SwapService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	roster RosterGateway,
	cache SnapshotCache,
	logger *zap.Logger,
) *Service {
	var opts []workflow.ResolverOption
	if !cfg.Workflow.SpecificRespondFinalApproval {
		opts = append(opts, workflow.WithoutSpecificFinalApprovalRespond())
	}
	resolver := workflow.NewResolver(opts...)

	swap := NewSwapService(cfg, repo, roster, cache, resolver, logger)
	return &Service{
		Swap:   swap,
		Export: NewExportService(swap, logger),
	}
}
