package dto

// CreateProductRequest HTTP创建商品请求
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"螺纹钢M8"`
	Description string `json:"description" binding:"max=5000" example:"8mm镀锌螺纹钢"`
	Price       int64  `json:"price" binding:"min=0" example:"1250"` // 价格(分)，0表示未定价
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
}

// UpdateProductRequest HTTP更新商品请求
// 指针字段：缺省表示不修改该字段
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	CategoryID  *uint   `json:"category_id" binding:"omitempty"`
}

// CreateCategoryRequest HTTP创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"紧固件"`
	Description string `json:"description" binding:"max=5000"`
}

// UpdateCategoryRequest HTTP更新分类请求（空字段不修改）
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}
