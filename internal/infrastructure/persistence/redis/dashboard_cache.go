package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// dashboardKey 看板汇总的缓存Key
const dashboardKey = "dashboard:summary"

// DashboardCache 看板汇总缓存（Cache-Aside模式）
// 设计说明：
// 1. 看板要扫多张表做聚合，直查数据库代价高；结果允许短暂陈旧
// 2. 短TTL（分钟级）代替主动失效：订单写入不去碰缓存
// 3. 缓存未命中返回(nil, nil)，由调用方回源并写回
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache 创建看板缓存
func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client, ttl: time.Minute}
}

// Get 读取缓存的看板汇总
// 未命中时返回(nil, nil)而不是错误
func (c *DashboardCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "读取看板缓存失败")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// 缓存内容损坏按未命中处理，回源后会覆盖
		return false, nil
	}

	return true, nil
}

// Set 写回看板汇总
func (c *DashboardCache) Set(ctx context.Context, summary interface{}) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return apperrors.Wrap(err, "序列化看板汇总失败")
	}

	if err := c.client.Set(ctx, dashboardKey, data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入看板缓存失败")
	}

	return nil
}
