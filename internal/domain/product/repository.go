package product

import (
	"context"

	"github.com/xiebiao/stockroom/pkg/pagination"
)

// Repository 商品仓储接口
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品
	// 如果不存在，返回errors.ErrProductNotFound
	FindByID(ctx context.Context, id uint) (*Product, error)

	// List 游标分页查询商品列表（按ID升序）
	List(ctx context.Context, params pagination.Params) (*pagination.Page[*Product], error)

	// Update 更新商品
	Update(ctx context.Context, p *Product) error

	// Delete 删除商品（软删除）
	Delete(ctx context.Context, id uint) error
}
