package order

import (
	"time"
)

// OutgoingOrder 出库单实体（聚合根）
// 设计说明：
// 1. StockID指向扣减的批次；创建出库单与扣减批次在同一事务
// 2. UnitPrice取下单时的商品价格快照（商品未定价按0），防止后续改价影响历史订单
// 3. TotalPrice = UnitPrice × Quantity，创建时算定
type OutgoingOrder struct {
	ID         uint
	CustomerID uint
	ProductID  uint
	StockID    uint
	Quantity   int
	UnitPrice  int64 // 单价(分)，下单时的价格快照
	TotalPrice int64 // 总价(分)
	OrderDate  time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOutgoingOrder 创建出库单（工厂方法）
func NewOutgoingOrder(customerID, productID, stockID uint, quantity int, unitPrice int64, orderDate time.Time) (*OutgoingOrder, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return nil, ErrInvalidUnitPrice
	}

	now := time.Now()
	return &OutgoingOrder{
		CustomerID: customerID,
		ProductID:  productID,
		StockID:    stockID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * int64(quantity),
		OrderDate:  orderDate,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsOwnedByCustomer 检查出库单是否属于指定客户
func (o *OutgoingOrder) IsOwnedByCustomer(customerID uint) bool {
	return o.CustomerID == customerID
}
