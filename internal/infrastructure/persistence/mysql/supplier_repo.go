package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/stockroom/internal/domain/supplier"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// supplierRepository 供应商仓储实现(MySQL)
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓储
func NewSupplierRepository(db *gorm.DB) supplier.Repository {
	return &supplierRepository{db: db}
}

// Create 创建供应商档案
// 一个登录账号只能有一份档案（user_id唯一索引）
func (r *supplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	model := &SupplierModel{
		UserID:      s.UserID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "该账号已有供应商档案")
		}
		return apperrors.Wrap(err, "创建供应商失败")
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找供应商
func (r *supplierRepository) FindByID(ctx context.Context, id uint) (*supplier.Supplier, error) {
	var model SupplierModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, apperrors.Wrap(err, "查询供应商失败")
	}

	return toSupplierEntity(&model), nil
}

// FindByUserID 根据登录账号查找供应商档案
func (r *supplierRepository) FindByUserID(ctx context.Context, userID uint) (*supplier.Supplier, error) {
	var model SupplierModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, apperrors.Wrap(err, "查询供应商失败")
	}

	return toSupplierEntity(&model), nil
}

// List 游标分页查询供应商
func (r *supplierRepository) List(ctx context.Context, params pagination.Params) (*pagination.Page[*supplier.Supplier], error) {
	query := getDB(ctx, r.db).Model(&SupplierModel{})

	page, err := pagination.Paginate(query, "id", params, func(m *SupplierModel) int64 {
		return int64(m.ID)
	})
	if err != nil {
		return nil, err
	}

	items := make([]*supplier.Supplier, len(page.Items))
	for i, m := range page.Items {
		items[i] = toSupplierEntity(m)
	}

	return &pagination.Page[*supplier.Supplier]{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// Update 更新供应商
func (r *supplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	model := &SupplierModel{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新供应商失败")
	}

	s.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除供应商(软删除)
func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&SupplierModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除供应商失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.ErrSupplierNotFound
	}

	return nil
}

// toSupplierEntity GORM模型 → 领域实体
func toSupplierEntity(model *SupplierModel) *supplier.Supplier {
	return &supplier.Supplier{
		ID:          model.ID,
		UserID:      model.UserID,
		Name:        model.Name,
		PhoneNumber: model.PhoneNumber,
		Email:       model.Email,
		Address:     model.Address,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
