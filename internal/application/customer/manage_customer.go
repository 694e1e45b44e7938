package customer

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/customer"
	"github.com/xiebiao/stockroom/internal/domain/user"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// ManageCustomerUseCase 客户档案管理用例
type ManageCustomerUseCase struct {
	customerRepo customer.Repository
	userRepo     user.Repository
}

// NewManageCustomerUseCase 创建客户管理用例
func NewManageCustomerUseCase(customerRepo customer.Repository, userRepo user.Repository) *ManageCustomerUseCase {
	return &ManageCustomerUseCase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// CustomerDTO 客户响应
type CustomerDTO struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateCustomerRequest 建档请求
type CreateCustomerRequest struct {
	UserID      uint
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// Create 创建客户档案
// 业务规则：关联账号必须存在且角色为customer
func (uc *ManageCustomerUseCase) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error) {
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleCustomer {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "关联账号的角色不是customer")
	}

	c := customer.NewCustomer(req.UserID, req.FirstName, req.LastName, req.PhoneNumber, req.Address)
	if err := uc.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return toCustomerDTO(c), nil
}

// Get 客户详情
func (uc *ManageCustomerUseCase) Get(ctx context.Context, id uint) (*CustomerDTO, error) {
	c, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerDTO(c), nil
}

// Me 当前登录客户的档案（/customers/me）
func (uc *ManageCustomerUseCase) Me(ctx context.Context, userID uint) (*CustomerDTO, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCustomerDTO(c), nil
}

// List 全部客户
func (uc *ManageCustomerUseCase) List(ctx context.Context) ([]*CustomerDTO, error) {
	customers, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = toCustomerDTO(c)
	}
	return dtos, nil
}

// UpdateCustomerRequest 更新请求（nil字段不修改）
type UpdateCustomerRequest struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

// Update 更新客户档案
func (uc *ManageCustomerUseCase) Update(ctx context.Context, id uint, req UpdateCustomerRequest) (*CustomerDTO, error) {
	c, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Apply(customer.Patch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})

	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return toCustomerDTO(c), nil
}

// Delete 删除客户档案（软删除）
func (uc *ManageCustomerUseCase) Delete(ctx context.Context, id uint) error {
	return uc.customerRepo.Delete(ctx, id)
}

// toCustomerDTO 领域实体 → DTO
func toCustomerDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
