package category

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/category"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// ManageCategoryUseCase 分类管理用例
// 分类的CRUD都很薄，合并到一个用例结构里（不像订单那样每个操作一个用例）
type ManageCategoryUseCase struct {
	categoryRepo category.Repository
}

// NewManageCategoryUseCase 创建分类管理用例
func NewManageCategoryUseCase(categoryRepo category.Repository) *ManageCategoryUseCase {
	return &ManageCategoryUseCase{categoryRepo: categoryRepo}
}

// CategoryDTO 分类响应
type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Create 创建分类
func (uc *ManageCategoryUseCase) Create(ctx context.Context, name, description string) (*CategoryDTO, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空")
	}

	c := category.NewCategory(name, description)
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return toCategoryDTO(c), nil
}

// Get 分类详情
func (uc *ManageCategoryUseCase) Get(ctx context.Context, id uint) (*CategoryDTO, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

// List 全部分类
func (uc *ManageCategoryUseCase) List(ctx context.Context) ([]*CategoryDTO, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	return dtos, nil
}

// Update 更新分类（空字段不修改）
func (uc *ManageCategoryUseCase) Update(ctx context.Context, id uint, name, description string) (*CategoryDTO, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Rename(name, description)
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return toCategoryDTO(c), nil
}

// Delete 删除分类
func (uc *ManageCategoryUseCase) Delete(ctx context.Context, id uint) error {
	return uc.categoryRepo.Delete(ctx, id)
}

// toCategoryDTO 领域实体 → DTO
func toCategoryDTO(c *category.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
