package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=2,max=50" example:"zhangsan"`
	FirstName string `json:"first_name" binding:"max=50" example:"三"`
	LastName  string `json:"last_name" binding:"max=50" example:"张"`
	Email     string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=20" example:"pass1234"`
	Role      string `json:"role" binding:"required,oneof=admin staff customer supplier" example:"customer"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required" example:"pass1234"`
}
