package user

import (
	"time"
)

// Role 用户角色
// 角色集合是封闭的：admin/staff管理后台，supplier对应入库方，customer对应出库方
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer, RoleSupplier:
		return true
	}
	return false
}

// IsStaff admin和staff视为后台人员（可以管理订单、查看全量数据）
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码只保存bcrypt哈希值，实体不暴露明文相关方法
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现时处理映射）
// 3. supplier/customer角色的用户会关联一条Supplier/Customer档案记录
type User struct {
	ID        uint
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string // bcrypt哈希值
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, firstName, lastName, email, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
