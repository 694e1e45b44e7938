package order

import (
	"context"

	"github.com/xiebiao/stockroom/pkg/pagination"
)

// IncomingRepository 入库单仓储接口
// 所有写操作都支持事务传递（通过context）
type IncomingRepository interface {
	// Create 创建入库单（批次在同一事务内由stock.Repository创建）
	Create(ctx context.Context, o *IncomingOrder) error

	// FindByID 根据ID查找入库单
	FindByID(ctx context.Context, id uint) (*IncomingOrder, error)

	// List 游标分页查询入库单（按ID升序）
	// supplierID非0时只返回该供应商的订单（/incoming-orders/me）
	List(ctx context.Context, supplierID uint, params pagination.Params) (*pagination.Page[*IncomingOrder], error)

	// UpdateStatus 条件更新订单状态（唯一允许的更新）
	// 执行：UPDATE ... SET status = to WHERE id = ? AND status = from
	// 并发的两次迁移只有一个生效；输掉的一方收到ErrInvalidStatusTransition
	UpdateStatus(ctx context.Context, id uint, from, to Status) error
}

// OutgoingRepository 出库单仓储接口
type OutgoingRepository interface {
	// Create 创建出库单（批次扣减在同一事务内由stock.Repository执行）
	Create(ctx context.Context, o *OutgoingOrder) error

	// FindByID 根据ID查找出库单
	FindByID(ctx context.Context, id uint) (*OutgoingOrder, error)

	// List 游标分页查询出库单（按ID升序）
	// customerID非0时只返回该客户的订单（customer角色的所有权过滤）
	// 出库单创建后不可变（没有状态更新接口），所以仓储只有读操作和Create
	List(ctx context.Context, customerID uint, params pagination.Params) (*pagination.Page[*OutgoingOrder], error)
}
