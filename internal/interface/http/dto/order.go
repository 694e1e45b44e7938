package dto

// CreateIncomingOrderRequest HTTP创建入库单请求
// supply_date/expiry_date使用YYYY-MM-DD格式
// supplier角色调用时supplier_id被忽略（强制使用调用者自己的档案）
type CreateIncomingOrderRequest struct {
	SupplierID  uint   `json:"supplier_id" binding:"omitempty" example:"1"`
	ProductID   uint   `json:"product_id" binding:"required" example:"2"`
	BatchNumber string `json:"batch_number" binding:"required,max=100" example:"BN-2026-001"`
	Quantity    int    `json:"quantity" binding:"required,min=1" example:"100"`
	UnitCost    int64  `json:"unit_cost" binding:"min=0" example:"1250"` // 分
	SupplyDate  string `json:"supply_date" binding:"required" example:"2026-08-01"`
	ExpiryDate  string `json:"expiry_date" binding:"omitempty" example:"2027-08-01"`
}

// CreateOutgoingOrderRequest HTTP创建出库单请求
// customer角色调用时customer_id被忽略
type CreateOutgoingOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"omitempty" example:"1"`
	StockID    uint   `json:"stock_id" binding:"required" example:"3"`
	Quantity   int    `json:"quantity" binding:"required,min=1" example:"5"`
	OrderDate  string `json:"order_date" binding:"omitempty" example:"2026-08-29"`
}

// UpdateOrderStatusRequest HTTP订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled" example:"completed"`
}

// AdjustStockRequest HTTP批次数量调整请求
// 直接设置新数量（盘点修正），不是增量
type AdjustStockRequest struct {
	AvailableQuantity *int `json:"available_quantity" binding:"required,min=0" example:"42"`
}
