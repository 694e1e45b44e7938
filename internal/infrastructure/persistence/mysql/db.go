package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/stockroom/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&StockModel{},
		&SupplierModel{},
		&CustomerModel{},
		&IncomingOrderModel{},
		&OutgoingOrderModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	FirstName string         `gorm:"size:50;comment:名"`
	LastName  string         `gorm:"size:50;comment:姓"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string         `gorm:"index;size:20;not null;comment:角色(admin/staff/customer/supplier)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	Description string         `gorm:"type:text;comment:分类描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. 商品不直接记库存，库存在stocks表按批次跟踪
type ProductModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index;size:200;not null;comment:商品名"`
	Description string         `gorm:"type:text;comment:商品描述"`
	Price       int64          `gorm:"not null;default:0;comment:价格(分)"`
	CategoryID  uint           `gorm:"index;not null;comment:分类ID"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// StockModel GORM库存批次模型
// 教学要点:
// 1. AvailableQuantity>=0由订单处理的原子条件UPDATE保证，不靠数据库CHECK
// 2. IncomingOrderID为0表示手工建的批次（非入库单产生）
type StockModel struct {
	ID                uint       `gorm:"primaryKey"`
	ProductID         uint       `gorm:"index;not null;comment:商品ID"`
	IncomingOrderID   uint       `gorm:"index;default:0;comment:产生批次的入库单ID(0为手工)"`
	BatchNumber       string     `gorm:"index;size:100;comment:批号"`
	ExpiryDate        *time.Time `gorm:"comment:效期(NULL为无效期)"`
	AvailableQuantity int        `gorm:"not null;default:0;comment:可用数量"`
	CreatedAt         time.Time  `gorm:"comment:创建时间"`
	UpdatedAt         time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (StockModel) TableName() string {
	return "stocks"
}

// SupplierModel GORM供应商模型
type SupplierModel struct {
	ID          uint           `gorm:"primaryKey"`
	UserID      uint           `gorm:"uniqueIndex;not null;comment:关联登录账号"`
	Name        string         `gorm:"size:200;not null;comment:供应商名称"`
	PhoneNumber string         `gorm:"size:30;comment:电话"`
	Email       string         `gorm:"size:100;comment:邮箱"`
	Address     string         `gorm:"size:500;comment:地址"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (SupplierModel) TableName() string {
	return "suppliers"
}

// CustomerModel GORM客户模型
type CustomerModel struct {
	ID          uint           `gorm:"primaryKey"`
	UserID      uint           `gorm:"uniqueIndex;not null;comment:关联登录账号"`
	FirstName   string         `gorm:"size:50;comment:名"`
	LastName    string         `gorm:"size:50;comment:姓"`
	PhoneNumber string         `gorm:"size:30;comment:电话"`
	Address     string         `gorm:"size:500;comment:地址"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// IncomingOrderModel GORM入库单模型
// 教学要点:
// 1. 记录下单时的成本快照（UnitCost/TotalCost冗余存储）
// 2. Status用字符串存储（pending/completed/cancelled），带索引
type IncomingOrderModel struct {
	ID          uint      `gorm:"primaryKey"`
	SupplierID  uint      `gorm:"index;not null;comment:供应商ID"`
	ProductID   uint      `gorm:"index;not null;comment:商品ID"`
	BatchNumber string    `gorm:"size:100;comment:批号"`
	Quantity    int       `gorm:"not null;comment:入库数量"`
	UnitCost    int64     `gorm:"not null;comment:单价(分)"`
	TotalCost   int64     `gorm:"not null;comment:总价(分)"`
	SupplyDate  time.Time `gorm:"comment:供货日期"`
	Status      string    `gorm:"index;size:20;not null;default:pending;comment:状态"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (IncomingOrderModel) TableName() string {
	return "incoming_orders"
}

// OutgoingOrderModel GORM出库单模型
// UnitPrice记录下单时的商品价格快照
type OutgoingOrderModel struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID uint      `gorm:"index;not null;comment:客户ID"`
	ProductID  uint      `gorm:"index;not null;comment:商品ID"`
	StockID    uint      `gorm:"index;not null;comment:扣减的批次ID"`
	Quantity   int       `gorm:"not null;comment:出库数量"`
	UnitPrice  int64     `gorm:"not null;comment:单价快照(分)"`
	TotalPrice int64     `gorm:"not null;comment:总价(分)"`
	OrderDate  time.Time `gorm:"comment:下单日期"`
	Status     string    `gorm:"index;size:20;not null;default:pending;comment:状态"`
	CreatedAt  time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OutgoingOrderModel) TableName() string {
	return "outgoing_orders"
}
