package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
)

// Client Redis 客户端封装
// 当前用于换班快照缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 换班快照缓存 ──
//
// 快照以"整体替换"方式缓存：每次上游拉取覆盖整个 JSON，
// 每次动作转发后删除，绝不做增量修补

const snapshotPrefix = "swap:snapshot:"

// GetSnapshot 读取指定用户的换班快照 JSON；未命中返回 ("", nil)
func (c *Client) GetSnapshot(ctx context.Context, userID string) (string, error) {
	val, err := c.rdb.Get(ctx, snapshotPrefix+userID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetSnapshot 整体写入指定用户的换班快照 JSON
func (c *Client) SetSnapshot(ctx context.Context, userID, payload string, ttl time.Duration) error {
	return c.rdb.Set(ctx, snapshotPrefix+userID, payload, ttl).Err()
}

// InvalidateSnapshot 删除指定用户的换班快照（动作转发后调用）
func (c *Client) InvalidateSnapshot(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, snapshotPrefix+userID).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
