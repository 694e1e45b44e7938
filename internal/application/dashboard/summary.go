package dashboard

import (
	"context"
	"log"

	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/redis"
)

// SummaryUseCase 看板汇总用例（admin/staff）
// Cache-Aside：先查Redis，未命中回源数据库并写回（短TTL，容忍分钟级陈旧）
type SummaryUseCase struct {
	dashboardRepo *mysql.DashboardRepository
	cache         *redis.DashboardCache
}

// NewSummaryUseCase 创建看板用例
func NewSummaryUseCase(dashboardRepo *mysql.DashboardRepository, cache *redis.DashboardCache) *SummaryUseCase {
	return &SummaryUseCase{
		dashboardRepo: dashboardRepo,
		cache:         cache,
	}
}

// Summary 看板汇总响应
type Summary struct {
	Users          *mysql.UserOverview         `json:"users"`
	Inventory      *mysql.InventoryOverview    `json:"inventory"`
	Orders         *mysql.OrderOverview        `json:"orders"`
	RecentOutgoing []mysql.RecentOutgoingOrder `json:"recent_outgoing_orders"`
	RecentUsers    []mysql.RecentUser          `json:"recent_users"`
}

// Execute 查询看板汇总
func (uc *SummaryUseCase) Execute(ctx context.Context) (*Summary, error) {
	// 1. 查缓存
	var cached Summary
	hit, err := uc.cache.Get(ctx, &cached)
	if err != nil {
		// Redis故障降级为直查数据库
		log.Printf("读取看板缓存失败: %v", err)
	}
	if hit {
		return &cached, nil
	}

	// 2. 回源数据库
	summary := &Summary{}

	if summary.Users, err = uc.dashboardRepo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if summary.Inventory, err = uc.dashboardRepo.CountInventory(ctx); err != nil {
		return nil, err
	}
	if summary.Orders, err = uc.dashboardRepo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if summary.RecentOutgoing, err = uc.dashboardRepo.RecentOutgoingOrders(ctx, 5); err != nil {
		return nil, err
	}
	if summary.RecentUsers, err = uc.dashboardRepo.RecentUsers(ctx, 5); err != nil {
		return nil, err
	}

	// 3. 写回缓存（失败只记日志）
	if err := uc.cache.Set(ctx, summary); err != nil {
		log.Printf("写入看板缓存失败: %v", err)
	}

	return summary, nil
}
