package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/stockroom/internal/domain/customer"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// customerRepository 客户仓储实现(MySQL)
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建客户档案
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "该账号已有客户档案")
		}
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找客户
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}

	return toCustomerEntity(&model), nil
}

// FindByUserID 根据登录账号查找客户档案
func (r *customerRepository) FindByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}

	return toCustomerEntity(&model), nil
}

// List 查询全部客户
func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var models []CustomerModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询客户列表失败")
	}

	customers := make([]*customer.Customer, len(models))
	for i := range models {
		customers[i] = toCustomerEntity(&models[i])
	}
	return customers, nil
}

// Update 更新客户
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		ID:          c.ID,
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新客户失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除客户(软删除)
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CustomerModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除客户失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.ErrCustomerNotFound
	}

	return nil
}

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:          model.ID,
		UserID:      model.UserID,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		PhoneNumber: model.PhoneNumber,
		Address:     model.Address,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
