package supplier

import (
	"context"
	"time"

	"github.com/xiebiao/stockroom/pkg/pagination"
)

// Supplier 供应商实体
// 设计说明：
// 1. UserID关联登录账号（role=supplier）；一个账号对应一个供应商档案
// 2. 入库单通过SupplierID归属供应商，"本供应商的订单"鉴权走UserID
type Supplier struct {
	ID          uint
	UserID      uint
	Name        string
	PhoneNumber string
	Email       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSupplier 创建供应商档案（工厂方法）
func NewSupplier(userID uint, name, phoneNumber, email, address string) *Supplier {
	now := time.Now()
	return &Supplier{
		UserID:      userID,
		Name:        name,
		PhoneNumber: phoneNumber,
		Email:       email,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch 供应商部分更新（nil表示不修改）
type Patch struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	Address     *string
}

// Apply 将补丁应用到供应商档案
func (s *Supplier) Apply(patch Patch) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		s.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	s.UpdatedAt = time.Now()
}

// Repository 供应商仓储接口
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	FindByID(ctx context.Context, id uint) (*Supplier, error)
	// FindByUserID 根据登录账号查找供应商档案（/suppliers/me）
	FindByUserID(ctx context.Context, userID uint) (*Supplier, error)
	// List 游标分页查询供应商（按ID升序）
	List(ctx context.Context, params pagination.Params) (*pagination.Page[*Supplier], error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uint) error
}
