package product

import (
	"time"
)

// Product 商品实体（聚合根）
// 设计说明:
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. Price为0表示未定价（出库时按0计价）
// 3. 库存不在商品上：库存以批次（stock.Batch）为粒度单独跟踪
type Product struct {
	ID          uint
	Name        string
	Description string
	Price       int64 // 价格(分)
	CategoryID  uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct 创建新商品（工厂方法）
func NewProduct(name, description string, price int64, categoryID uint) *Product {
	now := time.Now()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch 商品部分更新
// 设计说明：只列出允许修改的字段，nil表示不修改该字段。
// 显式字段优于反射式的"把请求里有的字段全拷过去"：可修改集合在类型里一目了然
type Patch struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *uint
}

// Apply 将补丁应用到商品实体
func (p *Product) Apply(patch Patch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrInvalidName
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return ErrInvalidPrice
		}
		p.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	p.UpdatedAt = time.Now()
	return nil
}
