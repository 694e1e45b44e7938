package product

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/category"
	"github.com/xiebiao/stockroom/internal/domain/product"
)

// CreateProductUseCase 创建商品用例
type CreateProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

// NewCreateProductUseCase 创建商品用例
func NewCreateProductUseCase(productRepo product.Repository, categoryRepo category.Repository) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute 执行创建
// 业务规则：分类必须存在；价格>=0（0表示未定价）
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	if req.Name == "" {
		return nil, product.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, product.ErrInvalidPrice
	}

	// 校验分类存在
	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p := product.NewProduct(req.Name, req.Description, req.Price, req.CategoryID)
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return toProductDTO(p), nil
}

// =========================================
// 应用层DTO
// =========================================

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string
	Description string
	Price       int64 // 分
	CategoryID  uint
}

// ProductDTO 商品响应
type ProductDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // 分
	CategoryID  uint   `json:"category_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// toProductDTO 领域实体 → DTO
func toProductDTO(p *product.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
