package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/stockroom/internal/domain/stock"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// stockRepository 库存批次仓储实现(MySQL)
// 设计说明:
// 1. 可用数量的非负不变式由DecrementQuantity的条件UPDATE保证
// 2. 所有写操作通过getDB(ctx)参与订单事务
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储
func NewStockRepository(db *gorm.DB) stock.Repository {
	return &stockRepository{db: db}
}

// Create 创建批次（入库单创建时在同一事务内调用）
func (r *stockRepository) Create(ctx context.Context, b *stock.Batch) error {
	model := &StockModel{
		ProductID:         b.ProductID,
		IncomingOrderID:   b.IncomingOrderID,
		BatchNumber:       b.BatchNumber,
		ExpiryDate:        b.ExpiryDate,
		AvailableQuantity: b.AvailableQuantity,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建库存批次失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找批次
func (r *stockRepository) FindByID(ctx context.Context, id uint) (*stock.Batch, error) {
	var model StockModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存批次失败")
	}

	return toStockEntity(&model), nil
}

// FindByIncomingOrderID 根据入库单查找它产生的批次
func (r *stockRepository) FindByIncomingOrderID(ctx context.Context, incomingOrderID uint) (*stock.Batch, error) {
	var model StockModel
	err := getDB(ctx, r.db).Where("incoming_order_id = ?", incomingOrderID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存批次失败")
	}

	return toStockEntity(&model), nil
}

// List 游标分页查询批次列表
func (r *stockRepository) List(ctx context.Context, params pagination.Params) (*pagination.Page[*stock.Batch], error) {
	query := getDB(ctx, r.db).Model(&StockModel{})

	page, err := pagination.Paginate(query, "id", params, func(m *StockModel) int64 {
		return int64(m.ID)
	})
	if err != nil {
		return nil, err
	}

	items := make([]*stock.Batch, len(page.Items))
	for i, m := range page.Items {
		items[i] = toStockEntity(m)
	}

	return &pagination.Page[*stock.Batch]{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// DecrementQuantity 原子扣减批次数量
// 使用条件UPDATE原子性扣减，防止并发超卖:
// UPDATE stocks SET available_quantity = available_quantity - ?
// WHERE id = ? AND available_quantity >= ?
// 两个并发请求争同一批次时，数据库行锁保证只有余量足够的那个能成功。
// 教学要点:必须使用getDB(ctx)参与订单事务
func (r *stockRepository) DecrementQuantity(ctx context.Context, id uint, quantity int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&StockModel{}).
		Where("id = ?", id).
		Where("available_quantity >= ?", quantity). // 防止数量为负
		Update("available_quantity", gorm.Expr("available_quantity - ?", quantity))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是批次不存在，或者库存不足
		// 再查一次确定原因
		var model StockModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stock.ErrStockNotFound
			}
			return apperrors.Wrap(err, "查询库存批次失败")
		}
		// 批次存在，说明是库存不足
		return stock.ErrInsufficientStock
	}

	return nil
}

// Update 更新批次（手工调整数量）
func (r *stockRepository) Update(ctx context.Context, b *stock.Batch) error {
	model := &StockModel{
		ID:                b.ID,
		ProductID:         b.ProductID,
		IncomingOrderID:   b.IncomingOrderID,
		BatchNumber:       b.BatchNumber,
		ExpiryDate:        b.ExpiryDate,
		AvailableQuantity: b.AvailableQuantity,
		CreatedAt:         b.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新库存批次失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// toStockEntity GORM模型 → 领域实体
func toStockEntity(model *StockModel) *stock.Batch {
	return &stock.Batch{
		ID:                model.ID,
		ProductID:         model.ProductID,
		IncomingOrderID:   model.IncomingOrderID,
		BatchNumber:       model.BatchNumber,
		ExpiryDate:        model.ExpiryDate,
		AvailableQuantity: model.AvailableQuantity,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
