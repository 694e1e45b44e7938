package order

import (
	"time"
)

// IncomingOrder 入库单实体（聚合根）
// 设计说明：
// 1. 与库存批次一对一：创建入库单时在同一事务内产生等量的新批次
// 2. TotalCost在创建时计算并冗余存储（= UnitCost × Quantity），读取时不重算
// 3. 除Status外全部字段创建后不可变
type IncomingOrder struct {
	ID          uint
	SupplierID  uint
	ProductID   uint
	BatchNumber string
	Quantity    int
	UnitCost    int64 // 单价(分)
	TotalCost   int64 // 总价(分)，创建时冗余计算
	SupplyDate  time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIncomingOrder 创建入库单（工厂方法）
// 业务规则：数量>0，单价>=0，总价在此处一次性算定
func NewIncomingOrder(supplierID, productID uint, batchNumber string, quantity int, unitCost int64, supplyDate time.Time) (*IncomingOrder, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitCost < 0 {
		return nil, ErrInvalidUnitPrice
	}

	now := time.Now()
	return &IncomingOrder{
		SupplierID:  supplierID,
		ProductID:   productID,
		BatchNumber: batchNumber,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   unitCost * int64(quantity),
		SupplyDate:  supplyDate,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TransitionTo 状态转换（唯一允许的变更）
func (o *IncomingOrder) TransitionTo(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBySupplier 检查入库单是否属于指定供应商
func (o *IncomingOrder) IsOwnedBySupplier(supplierID uint) bool {
	return o.SupplierID == supplierID
}
