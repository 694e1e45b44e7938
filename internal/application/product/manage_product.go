package product

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/category"
	"github.com/xiebiao/stockroom/internal/domain/product"
)

// GetProductUseCase 商品详情用例
type GetProductUseCase struct {
	productRepo product.Repository
}

// NewGetProductUseCase 创建商品详情用例
func NewGetProductUseCase(productRepo product.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

// Execute 执行查询
func (uc *GetProductUseCase) Execute(ctx context.Context, id uint) (*ProductDTO, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDTO(p), nil
}

// UpdateProductUseCase 商品更新用例（部分更新）
type UpdateProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

// NewUpdateProductUseCase 创建商品更新用例
func NewUpdateProductUseCase(productRepo product.Repository, categoryRepo category.Repository) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// UpdateProductRequest 商品更新请求（nil字段不修改）
type UpdateProductRequest struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *uint
}

// Execute 执行更新
// 先读后写：补丁应用在领域实体上，实体校验非法取值
func (uc *UpdateProductUseCase) Execute(ctx context.Context, id uint, req UpdateProductRequest) (*ProductDTO, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 改分类时校验新分类存在
	if req.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	patch := product.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := p.Apply(patch); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return toProductDTO(p), nil
}

// DeleteProductUseCase 商品删除用例
type DeleteProductUseCase struct {
	productRepo product.Repository
}

// NewDeleteProductUseCase 创建商品删除用例
func NewDeleteProductUseCase(productRepo product.Repository) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo}
}

// Execute 执行删除（软删除）
// 历史订单里的商品引用保持完整：软删除只是不再出现在列表里
func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uint) error {
	return uc.productRepo.Delete(ctx, id)
}
