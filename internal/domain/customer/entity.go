package customer

import (
	"context"
	"time"
)

// Customer 客户实体
// UserID关联登录账号（role=customer）；出库单的归属鉴权走UserID
type Customer struct {
	ID          uint
	UserID      uint
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCustomer 创建客户档案（工厂方法）
func NewCustomer(userID uint, firstName, lastName, phoneNumber, address string) *Customer {
	now := time.Now()
	return &Customer{
		UserID:      userID,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch 客户部分更新（nil表示不修改）
type Patch struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

// Apply 将补丁应用到客户档案
func (c *Customer) Apply(patch Patch) {
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		c.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	c.UpdatedAt = time.Now()
}

// Repository 客户仓储接口
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	// FindByUserID 根据登录账号查找客户档案（/customers/me）
	FindByUserID(ctx context.Context, userID uint) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}
