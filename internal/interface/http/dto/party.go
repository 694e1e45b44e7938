package dto

// CreateSupplierRequest HTTP供应商建档请求
type CreateSupplierRequest struct {
	UserID      uint   `json:"user_id" binding:"required" example:"3"`
	Name        string `json:"name" binding:"required,max=200" example:"华东金属制品厂"`
	PhoneNumber string `json:"phone_number" binding:"max=30" example:"021-88886666"`
	Email       string `json:"email" binding:"omitempty,email" example:"sales@example.com"`
	Address     string `json:"address" binding:"max=500"`
}

// UpdateSupplierRequest HTTP供应商更新请求（缺省字段不修改）
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// CreateCustomerRequest HTTP客户建档请求
type CreateCustomerRequest struct {
	UserID      uint   `json:"user_id" binding:"required" example:"5"`
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	PhoneNumber string `json:"phone_number" binding:"max=30"`
	Address     string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest HTTP客户更新请求（缺省字段不修改）
type UpdateCustomerRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}
