package stock

import (
	"context"

	"github.com/xiebiao/stockroom/pkg/pagination"
)

// Repository 库存仓储接口
// 台账的写入口只有三个：入库建批次（Create）、出库扣减（DecrementQuantity）、
// 手工修正（Update）。全部在订单事务内执行（通过context传递事务）
type Repository interface {
	// Create 创建批次（入库单创建时，同一事务）
	Create(ctx context.Context, b *Batch) error

	// FindByID 根据ID查找批次
	// 如果不存在，返回errors.ErrStockNotFound
	FindByID(ctx context.Context, id uint) (*Batch, error)

	// FindByIncomingOrderID 查找入库单产生的批次（订单详情回填stock_id）
	FindByIncomingOrderID(ctx context.Context, incomingOrderID uint) (*Batch, error)

	// List 游标分页查询批次列表（按ID升序）
	List(ctx context.Context, params pagination.Params) (*pagination.Page[*Batch], error)

	// DecrementQuantity 原子扣减批次数量（防并发超卖的关键）
	// 执行：UPDATE stocks SET available_quantity = available_quantity - ?
	//       WHERE id = ? AND available_quantity >= ?
	// 影响行数为0时区分返回ErrStockNotFound / ErrInsufficientStock
	DecrementQuantity(ctx context.Context, id uint, quantity int) error

	// Update 更新批次（手工调整数量）
	Update(ctx context.Context, b *Batch) error
}
