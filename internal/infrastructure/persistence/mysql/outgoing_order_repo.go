package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/stockroom/internal/domain/order"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// outgoingOrderRepository 出库单仓储实现(MySQL)
type outgoingOrderRepository struct {
	db *gorm.DB
}

// NewOutgoingOrderRepository 创建出库单仓储
func NewOutgoingOrderRepository(db *gorm.DB) order.OutgoingRepository {
	return &outgoingOrderRepository{db: db}
}

// Create 创建出库单
// 教学要点:必须使用getDB(ctx)——订单创建和批次扣减在同一事务
func (r *outgoingOrderRepository) Create(ctx context.Context, o *order.OutgoingOrder) error {
	model := &OutgoingOrderModel{
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		StockID:    o.StockID,
		Quantity:   o.Quantity,
		UnitPrice:  o.UnitPrice,
		TotalPrice: o.TotalPrice,
		OrderDate:  o.OrderDate,
		Status:     string(o.Status),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出库单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找出库单
func (r *outgoingOrderRepository) FindByID(ctx context.Context, id uint) (*order.OutgoingOrder, error) {
	var model OutgoingOrderModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询出库单失败")
	}

	return toOutgoingOrderEntity(&model), nil
}

// List 游标分页查询出库单
// customerID非0时只返回该客户的订单
func (r *outgoingOrderRepository) List(ctx context.Context, customerID uint, params pagination.Params) (*pagination.Page[*order.OutgoingOrder], error) {
	query := getDB(ctx, r.db).Model(&OutgoingOrderModel{})
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	page, err := pagination.Paginate(query, "id", params, func(m *OutgoingOrderModel) int64 {
		return int64(m.ID)
	})
	if err != nil {
		return nil, err
	}

	items := make([]*order.OutgoingOrder, len(page.Items))
	for i, m := range page.Items {
		items[i] = toOutgoingOrderEntity(m)
	}

	return &pagination.Page[*order.OutgoingOrder]{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// toOutgoingOrderEntity GORM模型 → 领域实体
func toOutgoingOrderEntity(model *OutgoingOrderModel) *order.OutgoingOrder {
	return &order.OutgoingOrder{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		ProductID:  model.ProductID,
		StockID:    model.StockID,
		Quantity:   model.Quantity,
		UnitPrice:  model.UnitPrice,
		TotalPrice: model.TotalPrice,
		OrderDate:  model.OrderDate,
		Status:     order.Status(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
