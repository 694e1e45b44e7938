package product

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// ListProductsUseCase 商品列表用例（游标分页）
type ListProductsUseCase struct {
	productRepo product.Repository
}

// NewListProductsUseCase 创建商品列表用例
func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// ProductPage 商品分页结果
type ProductPage struct {
	Items []*ProductDTO
	Next  *string
	Prev  *string
}

// Execute 执行列表查询
func (uc *ListProductsUseCase) Execute(ctx context.Context, params pagination.Params) (*ProductPage, error) {
	page, err := uc.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]*ProductDTO, len(page.Items))
	for i, p := range page.Items {
		items[i] = toProductDTO(p)
	}

	return &ProductPage{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}
