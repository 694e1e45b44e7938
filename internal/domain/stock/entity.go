package stock

import (
	"time"
)

// Batch 库存批次实体（台账条目）
// 设计说明：
// 1. 库存以批次为粒度：一次入库产生一个批次，独立跟踪效期/批号
// 2. AvailableQuantity不变式：永远>=0。数据库不做CHECK约束，
//    由订单处理器的原子条件扣减保证（见mysql.stockRepository.DecrementQuantity）
// 3. IncomingOrderID关联产生该批次的入库单；手工建的批次可以为0
// 4. 批次一旦被出库单引用就不再删除（订单追溯需要）
type Batch struct {
	ID                uint
	ProductID         uint
	IncomingOrderID   uint       // 0表示非入库单产生
	BatchNumber       string
	ExpiryDate        *time.Time // nil表示无效期
	AvailableQuantity int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewBatch 创建新批次（工厂方法，入库单创建时调用）
func NewBatch(productID, incomingOrderID uint, batchNumber string, quantity int, expiryDate *time.Time) (*Batch, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Batch{
		ProductID:         productID,
		IncomingOrderID:   incomingOrderID,
		BatchNumber:       batchNumber,
		ExpiryDate:        expiryDate,
		AvailableQuantity: quantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// CanFulfill 检查批次能否满足出库数量
func (b *Batch) CanFulfill(quantity int) bool {
	return quantity > 0 && b.AvailableQuantity >= quantity
}

// Decrease 扣减数量（领域行为）
// 注意：这是实体层的前置校验。并发安全由仓储层的原子条件UPDATE保证，
// 这里的检查只用于尽早返回友好错误
func (b *Batch) Decrease(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.AvailableQuantity < quantity {
		return ErrInsufficientStock
	}
	b.AvailableQuantity -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Adjust 手工调整数量（管理员修正，绕过订单流程）
func (b *Batch) Adjust(newQuantity int) error {
	if newQuantity < 0 {
		return ErrInvalidQuantity
	}
	b.AvailableQuantity = newQuantity
	b.UpdatedAt = time.Now()
	return nil
}
