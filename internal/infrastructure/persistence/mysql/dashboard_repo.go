package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// DashboardRepository 看板聚合查询（读模型）
// 设计说明：
// 1. 看板是纯读侧，直接在GORM模型上做聚合，不经过领域实体
// 2. 结果由应用层缓存到Redis（短TTL），这里不关心缓存
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建看板仓储
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// UserOverview 用户概况
type UserOverview struct {
	Total       int64            `json:"total"`
	NewIn30Days int64            `json:"new_in_30_days"`
	ByRole      map[string]int64 `json:"by_role"`
}

// CountUsers 用户总数、30天新增、角色分布
func (r *DashboardRepository) CountUsers(ctx context.Context) (*UserOverview, error) {
	db := getDB(ctx, r.db)
	overview := &UserOverview{ByRole: make(map[string]int64)}

	if err := db.Model(&UserModel{}).Count(&overview.Total).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计用户总数失败")
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := db.Model(&UserModel{}).Where("created_at >= ?", since).
		Count(&overview.NewIn30Days).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计新增用户失败")
	}

	var rows []struct {
		Role  string
		Count int64
	}
	if err := db.Model(&UserModel{}).Select("role, COUNT(*) AS count").
		Group("role").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计角色分布失败")
	}
	for _, row := range rows {
		overview.ByRole[row.Role] = row.Count
	}

	return overview, nil
}

// InventoryOverview 库存概况
type InventoryOverview struct {
	ProductCount  int64 `json:"product_count"`
	CategoryCount int64 `json:"category_count"`
	TotalQuantity int64 `json:"total_quantity"`
	// InventoryValue 库存价值(分) = Σ(批次余量 × 商品价格)
	InventoryValue int64 `json:"inventory_value"`
}

// CountInventory 商品/分类数量、库存总量、库存价值
func (r *DashboardRepository) CountInventory(ctx context.Context) (*InventoryOverview, error) {
	db := getDB(ctx, r.db)
	overview := &InventoryOverview{}

	if err := db.Model(&ProductModel{}).Count(&overview.ProductCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计商品数失败")
	}
	if err := db.Model(&CategoryModel{}).Count(&overview.CategoryCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计分类数失败")
	}

	if err := db.Model(&StockModel{}).
		Select("COALESCE(SUM(available_quantity), 0)").
		Scan(&overview.TotalQuantity).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计库存总量失败")
	}

	// 库存价值按商品当前价格估算
	if err := db.Model(&StockModel{}).
		Select("COALESCE(SUM(stocks.available_quantity * products.price), 0)").
		Joins("JOIN products ON products.id = stocks.product_id AND products.deleted_at IS NULL").
		Scan(&overview.InventoryValue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计库存价值失败")
	}

	return overview, nil
}

// OrderOverview 订单概况
type OrderOverview struct {
	IncomingCount int64 `json:"incoming_count"`
	OutgoingCount int64 `json:"outgoing_count"`
	IncomingValue int64 `json:"incoming_value"` // 分
	OutgoingValue int64 `json:"outgoing_value"` // 分
}

// CountOrders 出入库订单数量与金额
func (r *DashboardRepository) CountOrders(ctx context.Context) (*OrderOverview, error) {
	db := getDB(ctx, r.db)
	overview := &OrderOverview{}

	if err := db.Model(&IncomingOrderModel{}).Count(&overview.IncomingCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计入库单数失败")
	}
	if err := db.Model(&OutgoingOrderModel{}).Count(&overview.OutgoingCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计出库单数失败")
	}

	if err := db.Model(&IncomingOrderModel{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&overview.IncomingValue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计入库金额失败")
	}
	if err := db.Model(&OutgoingOrderModel{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&overview.OutgoingValue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计出库金额失败")
	}

	return overview, nil
}

// RecentOutgoingOrder 最近出库单
type RecentOutgoingOrder struct {
	ID         uint   `json:"id"`
	CustomerID uint   `json:"customer_id"`
	ProductID  uint   `json:"product_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// RecentOutgoingOrders 最近n笔出库单
func (r *DashboardRepository) RecentOutgoingOrders(ctx context.Context, n int) ([]RecentOutgoingOrder, error) {
	var models []OutgoingOrderModel
	if err := getDB(ctx, r.db).Order("id DESC").Limit(n).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询最近出库单失败")
	}

	orders := make([]RecentOutgoingOrder, len(models))
	for i, m := range models {
		orders[i] = RecentOutgoingOrder{
			ID:         m.ID,
			CustomerID: m.CustomerID,
			ProductID:  m.ProductID,
			Quantity:   m.Quantity,
			TotalPrice: m.TotalPrice,
			Status:     m.Status,
			CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return orders, nil
}

// RecentUser 最近注册用户
type RecentUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// RecentUsers 最近n个注册用户
func (r *DashboardRepository) RecentUsers(ctx context.Context, n int) ([]RecentUser, error) {
	var models []UserModel
	if err := getDB(ctx, r.db).Order("id DESC").Limit(n).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询最近注册用户失败")
	}

	users := make([]RecentUser, len(models))
	for i, m := range models {
		users[i] = RecentUser{
			ID:        m.ID,
			Username:  m.Username,
			Role:      m.Role,
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return users, nil
}
