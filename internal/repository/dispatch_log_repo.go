package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

// DispatchLogRepository 调度审计日志数据访问接口
type DispatchLogRepository interface {
	Create(ctx context.Context, log *model.DispatchLog) error
	ListBySwapRequest(ctx context.Context, swapRequestID string) ([]model.DispatchLog, error)
	ListByActor(ctx context.Context, actorID string, limit int) ([]model.DispatchLog, error)
}

// dispatchLogRepo DispatchLogRepository 的 GORM 实现
type dispatchLogRepo struct {
	db *gorm.DB
}

// NewDispatchLogRepo 创建 DispatchLogRepository 实例
func NewDispatchLogRepo(db *gorm.DB) DispatchLogRepository {
	return &dispatchLogRepo{db: db}
}

func (r *dispatchLogRepo) Create(ctx context.Context, log *model.DispatchLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *dispatchLogRepo) ListBySwapRequest(ctx context.Context, swapRequestID string) ([]model.DispatchLog, error) {
	var logs []model.DispatchLog
	err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", swapRequestID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *dispatchLogRepo) ListByActor(ctx context.Context, actorID string, limit int) ([]model.DispatchLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.DispatchLog
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
