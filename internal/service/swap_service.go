package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/dto"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/repository"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/rosterclient"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// ── 换班模块业务错误 ──

var (
	ErrSwapNotFound = errors.New("换班申请不存在")
)

// SwapService 换班业务接口
//
// 设计说明：
//   - 上游排班服务是唯一权威：本服务只操作快照，动作转发成功后
//     整体作废缓存并在下次读取时重新拉取，绝不做增量修补
//   - CanRespond/CanCancel 为界面建议值；并发响应等冲突只能由上游判定，
//     上游返回的错误原样透传
type SwapService interface {
	GetBoard(ctx context.Context, userID string) (*dto.SwapBoardResponse, error)
	GetRequest(ctx context.Context, id, userID string) (*dto.SwapRequestView, error)
	GetTimeline(ctx context.Context, id string) ([]rosterclient.TimelineEvent, error)
	Act(ctx context.Context, id, userID string, req *dto.ActRequest) (*dto.ActResponse, error)
	ListDispatchLogs(ctx context.Context, swapRequestID string) ([]model.DispatchLog, error)
	ListMyDispatchLogs(ctx context.Context, actorID string, limit int) ([]model.DispatchLog, error)
	Snapshot(ctx context.Context, userID string) ([]model.SwapRequest, error)
	Resolver() *workflow.Resolver
}

type swapService struct {
	repo        *repository.Repository
	roster      RosterGateway
	cache       SnapshotCache
	resolver    *workflow.Resolver
	snapshotTTL time.Duration
	logger      *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(
	cfg *config.Config,
	repo *repository.Repository,
	roster RosterGateway,
	cache SnapshotCache,
	resolver *workflow.Resolver,
	logger *zap.Logger,
) SwapService {
	ttl := cfg.Redis.SnapshotTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &swapService{
		repo:        repo,
		roster:      roster,
		cache:       cache,
		resolver:    resolver,
		snapshotTTL: ttl,
		logger:      logger,
	}
}

// Resolver 暴露权限解析器供导出等同级模块复用
func (s *swapService) Resolver() *workflow.Resolver { return s.resolver }

// ────────────────────── GetBoard ──────────────────────

func (s *swapService) GetBoard(ctx context.Context, userID string) (*dto.SwapBoardResponse, error) {
	reqs, fromCache, err := s.snapshot(ctx, userID, false)
	if err != nil {
		s.logger.Error("拉取换班快照失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	buckets := s.resolver.Categorize(reqs, userID)

	resp := &dto.SwapBoardResponse{
		MyRequests:   s.toViews(buckets.MyRequests, userID),
		ForMe:        s.toViews(buckets.ForMe, userID),
		ActionNeeded: s.toViews(buckets.ActionNeeded, userID),
		History:      s.toViews(buckets.History, userID),
		All:          s.toViews(buckets.All, userID),
		FetchedAt:    time.Now().UTC().Format(time.RFC3339),
		FromCache:    fromCache,
	}
	return resp, nil
}

// ────────────────────── GetRequest ──────────────────────

func (s *swapService) GetRequest(ctx context.Context, id, userID string) (*dto.SwapRequestView, error) {
	reqs, _, err := s.snapshot(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	for i := range reqs {
		if reqs[i].SwapRequestID == id {
			view := s.toView(&reqs[i], userID)
			return &view, nil
		}
	}
	return nil, ErrSwapNotFound
}

// ────────────────────── GetTimeline ──────────────────────

func (s *swapService) GetTimeline(ctx context.Context, id string) ([]rosterclient.TimelineEvent, error) {
	events, err := s.roster.GetTimeline(ctx, id)
	if err != nil {
		s.logger.Error("拉取换班历史失败", zap.String("swap_request_id", id), zap.Error(err))
		return nil, err
	}
	return events, nil
}

// ────────────────────── Act ──────────────────────

func (s *swapService) Act(ctx context.Context, id, userID string, req *dto.ActRequest) (*dto.ActResponse, error) {
	// 动作前绕过缓存取新快照，降低在过期记录上操作的概率
	reqs, _, err := s.snapshot(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	var target *model.SwapRequest
	for i := range reqs {
		if reqs[i].SwapRequestID == id {
			target = &reqs[i]
			break
		}
	}
	if target == nil {
		return nil, ErrSwapNotFound
	}

	call, err := workflow.Dispatch(target, workflow.Action(req.Action), req.Notes, userID)
	if err != nil {
		return nil, err
	}

	execErr := s.roster.Execute(ctx, call)
	s.audit(ctx, target, call, req, userID, execErr)
	if execErr != nil {
		s.logger.Error("转发换班动作失败",
			zap.String("swap_request_id", id),
			zap.String("operation", string(call.Operation)),
			zap.Error(execErr),
		)
		return nil, execErr
	}

	// 快照整体作废：下次读取重新拉取，不做本地状态修补
	if s.cache != nil {
		if err := s.cache.InvalidateSnapshot(ctx, userID); err != nil {
			s.logger.Warn("作废换班快照失败", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return &dto.ActResponse{
		SwapRequestID: id,
		Operation:     string(call.Operation),
		Dispatched:    true,
	}, nil
}

// ────────────────────── 调度审计查询 ──────────────────────

func (s *swapService) ListDispatchLogs(ctx context.Context, swapRequestID string) ([]model.DispatchLog, error) {
	logs, err := s.repo.DispatchLog.ListBySwapRequest(ctx, swapRequestID)
	if err != nil {
		s.logger.Error("查询调度审计日志失败", zap.String("swap_request_id", swapRequestID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}

func (s *swapService) ListMyDispatchLogs(ctx context.Context, actorID string, limit int) ([]model.DispatchLog, error) {
	logs, err := s.repo.DispatchLog.ListByActor(ctx, actorID, limit)
	if err != nil {
		s.logger.Error("查询调度审计日志失败", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}

// Snapshot 返回用户当前快照（严格记录），供导出等模块复用
func (s *swapService) Snapshot(ctx context.Context, userID string) ([]model.SwapRequest, error) {
	reqs, _, err := s.snapshot(ctx, userID, false)
	return reqs, err
}

// ── 内部辅助方法 ──

// snapshot 取用户换班快照：优先缓存命中，未命中拉上游并整体写回
func (s *swapService) snapshot(ctx context.Context, userID string, bypassCache bool) ([]model.SwapRequest, bool, error) {
	if s.cache != nil && !bypassCache {
		cached, err := s.cache.GetSnapshot(ctx, userID)
		if err != nil {
			s.logger.Warn("读取换班快照缓存失败", zap.String("user_id", userID), zap.Error(err))
		} else if cached != "" {
			var reqs []model.SwapRequest
			if err := json.Unmarshal([]byte(cached), &reqs); err == nil {
				return reqs, true, nil
			}
			// 缓存损坏当未命中处理
			s.logger.Warn("换班快照缓存损坏，重新拉取", zap.String("user_id", userID))
		}
	}

	raws, err := s.roster.ListSwapRequests(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	reqs := make([]model.SwapRequest, 0, len(raws))
	for i := range raws {
		reqs = append(reqs, raws[i].ToModel())
	}

	if s.cache != nil {
		if payload, err := json.Marshal(reqs); err == nil {
			if err := s.cache.SetSnapshot(ctx, userID, string(payload), s.snapshotTTL); err != nil {
				s.logger.Warn("写入换班快照缓存失败", zap.String("user_id", userID), zap.Error(err))
			}
		}
	}

	return reqs, false, nil
}

func (s *swapService) toView(req *model.SwapRequest, userID string) dto.SwapRequestView {
	return dto.SwapRequestView{
		SwapRequest: *req,
		Permissions: s.resolver.Resolve(req, userID),
		Progress:    workflow.MapProgress(req.RawStatus, req.SwapType),
	}
}

func (s *swapService) toViews(reqs []model.SwapRequest, userID string) []dto.SwapRequestView {
	views := make([]dto.SwapRequestView, 0, len(reqs))
	for i := range reqs {
		views = append(views, s.toView(&reqs[i], userID))
	}
	return views
}

// audit 记录调度审计日志；审计失败只告警，不影响主流程
func (s *swapService) audit(ctx context.Context, req *model.SwapRequest, call *workflow.Call, act *dto.ActRequest, actorID string, execErr error) {
	if s.repo == nil || s.repo.DispatchLog == nil {
		return
	}

	entry := &model.DispatchLog{
		SwapRequestID: req.SwapRequestID,
		ActorID:       actorID,
		Action:        act.Action,
		Operation:     string(call.Operation),
		SwapType:      string(req.SwapType),
		RawStatus:     req.RawStatus,
		Notes:         act.Notes,
		Succeeded:     execErr == nil,
	}
	if execErr != nil {
		entry.ErrorMessage = execErr.Error()
	}

	if err := s.repo.DispatchLog.Create(ctx, entry); err != nil {
		s.logger.Warn("写入调度审计日志失败",
			zap.String("swap_request_id", req.SwapRequestID),
			zap.Error(err),
		)
	}
}
