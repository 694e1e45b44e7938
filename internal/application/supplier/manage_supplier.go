package supplier

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/supplier"
	"github.com/xiebiao/stockroom/internal/domain/user"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// ManageSupplierUseCase 供应商档案管理用例
// 管理员建档和维护；供应商本人通过Me读取自己的档案
type ManageSupplierUseCase struct {
	supplierRepo supplier.Repository
	userRepo     user.Repository
}

// NewManageSupplierUseCase 创建供应商管理用例
func NewManageSupplierUseCase(supplierRepo supplier.Repository, userRepo user.Repository) *ManageSupplierUseCase {
	return &ManageSupplierUseCase{
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
	}
}

// SupplierDTO 供应商响应
type SupplierDTO struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateSupplierRequest 建档请求
type CreateSupplierRequest struct {
	UserID      uint
	Name        string
	PhoneNumber string
	Email       string
	Address     string
}

// Create 创建供应商档案
// 业务规则：关联账号必须存在且角色为supplier
func (uc *ManageSupplierUseCase) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierDTO, error) {
	if req.Name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "供应商名称不能为空")
	}

	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleSupplier {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "关联账号的角色不是supplier")
	}

	s := supplier.NewSupplier(req.UserID, req.Name, req.PhoneNumber, req.Email, req.Address)
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}

	return toSupplierDTO(s), nil
}

// Get 供应商详情
func (uc *ManageSupplierUseCase) Get(ctx context.Context, id uint) (*SupplierDTO, error) {
	s, err := uc.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierDTO(s), nil
}

// Me 当前登录供应商的档案（/suppliers/me）
func (uc *ManageSupplierUseCase) Me(ctx context.Context, userID uint) (*SupplierDTO, error) {
	s, err := uc.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSupplierDTO(s), nil
}

// SupplierPage 供应商分页结果
type SupplierPage struct {
	Items []*SupplierDTO
	Next  *string
	Prev  *string
}

// List 供应商列表（游标分页）
func (uc *ManageSupplierUseCase) List(ctx context.Context, params pagination.Params) (*SupplierPage, error) {
	page, err := uc.supplierRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	dtos := make([]*SupplierDTO, len(page.Items))
	for i, s := range page.Items {
		dtos[i] = toSupplierDTO(s)
	}

	return &SupplierPage{
		Items: dtos,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// UpdateSupplierRequest 更新请求（nil字段不修改）
type UpdateSupplierRequest struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	Address     *string
}

// Update 更新供应商档案
func (uc *ManageSupplierUseCase) Update(ctx context.Context, id uint, req UpdateSupplierRequest) (*SupplierDTO, error) {
	s, err := uc.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Apply(supplier.Patch{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	})

	if err := uc.supplierRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	return toSupplierDTO(s), nil
}

// Delete 删除供应商档案（软删除）
func (uc *ManageSupplierUseCase) Delete(ctx context.Context, id uint) error {
	return uc.supplierRepo.Delete(ctx, id)
}

// toSupplierDTO 领域实体 → DTO
func toSupplierDTO(s *supplier.Supplier) *SupplierDTO {
	return &SupplierDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
