package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/stockroom/internal/domain/order"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// incomingOrderRepository 入库单仓储实现(MySQL)
type incomingOrderRepository struct {
	db *gorm.DB
}

// NewIncomingOrderRepository 创建入库单仓储
func NewIncomingOrderRepository(db *gorm.DB) order.IncomingRepository {
	return &incomingOrderRepository{db: db}
}

// Create 创建入库单
// 教学要点:必须使用getDB(ctx)——订单和批次在同一事务内创建
func (r *incomingOrderRepository) Create(ctx context.Context, o *order.IncomingOrder) error {
	model := &IncomingOrderModel{
		SupplierID:  o.SupplierID,
		ProductID:   o.ProductID,
		BatchNumber: o.BatchNumber,
		Quantity:    o.Quantity,
		UnitCost:    o.UnitCost,
		TotalCost:   o.TotalCost,
		SupplyDate:  o.SupplyDate,
		Status:      string(o.Status),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建入库单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找入库单
func (r *incomingOrderRepository) FindByID(ctx context.Context, id uint) (*order.IncomingOrder, error) {
	var model IncomingOrderModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询入库单失败")
	}

	return toIncomingOrderEntity(&model), nil
}

// List 游标分页查询入库单
// supplierID非0时只返回该供应商的订单
func (r *incomingOrderRepository) List(ctx context.Context, supplierID uint, params pagination.Params) (*pagination.Page[*order.IncomingOrder], error) {
	query := getDB(ctx, r.db).Model(&IncomingOrderModel{})
	if supplierID != 0 {
		query = query.Where("supplier_id = ?", supplierID)
	}

	page, err := pagination.Paginate(query, "id", params, func(m *IncomingOrderModel) int64 {
		return int64(m.ID)
	})
	if err != nil {
		return nil, err
	}

	items := make([]*order.IncomingOrder, len(page.Items))
	for i, m := range page.Items {
		items[i] = toIncomingOrderEntity(m)
	}

	return &pagination.Page[*order.IncomingOrder]{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// UpdateStatus 条件更新订单状态
// 教学要点:WHERE带上当前状态，和DecrementQuantity同一套路——
// 并发的两次迁移在数据库层只有一个生效，避免先读后写的竞态
func (r *incomingOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to order.Status) error {
	result := getDB(ctx, r.db).Model(&IncomingOrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新入库单状态失败")
	}

	if result.RowsAffected == 0 {
		// 没更新到行：区分订单不存在和状态已被并发修改
		var model IncomingOrderModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrOrderNotFound
			}
			return apperrors.Wrap(err, "查询入库单失败")
		}
		return order.ErrInvalidStatusTransition
	}

	return nil
}

// toIncomingOrderEntity GORM模型 → 领域实体
func toIncomingOrderEntity(model *IncomingOrderModel) *order.IncomingOrder {
	return &order.IncomingOrder{
		ID:          model.ID,
		SupplierID:  model.SupplierID,
		ProductID:   model.ProductID,
		BatchNumber: model.BatchNumber,
		Quantity:    model.Quantity,
		UnitCost:    model.UnitCost,
		TotalCost:   model.TotalCost,
		SupplyDate:  model.SupplyDate,
		Status:      order.Status(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
