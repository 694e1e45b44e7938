package order

import (
	"context"
	"time"

	"github.com/xiebiao/stockroom/internal/domain/order"
	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/internal/domain/stock"
	"github.com/xiebiao/stockroom/internal/domain/supplier"
	"github.com/xiebiao/stockroom/internal/domain/user"
	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/metrics"
	"github.com/xiebiao/stockroom/pkg/mq"
)

// CreateIncomingUseCase 创建入库单用例
// 教学要点:这是写侧的核心流程之一
// 入库单和它产生的库存批次必须同生共死：任何一步失败，整个事务回滚，
// 不会出现"有订单无批次"或"有批次无订单"的中间状态
type CreateIncomingUseCase struct {
	incomingRepo order.IncomingRepository
	productRepo  product.Repository
	supplierRepo supplier.Repository
	stockRepo    stock.Repository
	txManager    *mysql.TxManager
	publisher    *mq.Publisher
}

// NewCreateIncomingUseCase 创建入库单用例
func NewCreateIncomingUseCase(
	incomingRepo order.IncomingRepository,
	productRepo product.Repository,
	supplierRepo supplier.Repository,
	stockRepo stock.Repository,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
) *CreateIncomingUseCase {
	return &CreateIncomingUseCase{
		incomingRepo: incomingRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		stockRepo:    stockRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// CreateIncomingRequest 创建入库单请求
// CallerUserID/CallerRole来自JWT：supplier角色只能为自己的档案建单
type CreateIncomingRequest struct {
	CallerUserID uint
	CallerRole   user.Role

	SupplierID  uint
	ProductID   uint
	BatchNumber string
	Quantity    int
	UnitCost    int64 // 分
	SupplyDate  time.Time
	ExpiryDate  *time.Time
}

// SupplierSummary 订单响应里内嵌的供应商摘要
type SupplierSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductSummary 订单响应里内嵌的商品摘要
type ProductSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IncomingOrderDTO 入库单响应
// 除了外键ID还内嵌供应商/商品摘要，客户端不用再发两次请求
type IncomingOrderDTO struct {
	ID          uint             `json:"id"`
	SupplierID  uint             `json:"supplier_id"`
	ProductID   uint             `json:"product_id"`
	StockID     uint             `json:"stock_id,omitempty"` // 产生的批次ID（列表接口不回填）
	Supplier    *SupplierSummary `json:"supplier,omitempty"`
	Product     *ProductSummary  `json:"product,omitempty"`
	BatchNumber string           `json:"batch_number"`
	Quantity    int              `json:"quantity"`
	UnitCost    int64            `json:"unit_cost"`
	TotalCost   int64            `json:"total_cost"`
	SupplyDate  string           `json:"supply_date"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"created_at"`
}

// Execute 执行创建入库单
// 流程（全部在同一事务内）:
// 1. 校验商品、供应商存在
// 2. 创建入库单（status=pending，总价算定）
// 3. 创建等量的库存批次，用incoming_order_id关联
func (uc *CreateIncomingUseCase) Execute(ctx context.Context, req CreateIncomingRequest) (*IncomingOrderDTO, error) {
	start := time.Now()

	// supplier角色只能用自己的档案建单（以档案为准，忽略请求里的supplier_id）
	if req.CallerRole == user.RoleSupplier {
		s, err := uc.supplierRepo.FindByUserID(ctx, req.CallerUserID)
		if err != nil {
			return nil, err
		}
		req.SupplierID = s.ID
	}

	var createdOrder *order.IncomingOrder
	var createdBatch *stock.Batch
	var orderProduct *product.Product
	var orderSupplier *supplier.Supplier

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 校验商品存在（响应要内嵌摘要，顺便留住实体）
		p, err := uc.productRepo.FindByID(txCtx, req.ProductID)
		if err != nil {
			return err
		}

		// 2. 校验供应商存在
		s, err := uc.supplierRepo.FindByID(txCtx, req.SupplierID)
		if err != nil {
			return err
		}
		orderProduct = p
		orderSupplier = s

		// 3. 创建入库单（工厂方法校验数量/单价，算定总价）
		o, err := order.NewIncomingOrder(req.SupplierID, req.ProductID, req.BatchNumber,
			req.Quantity, req.UnitCost, req.SupplyDate)
		if err != nil {
			return err
		}
		if err := uc.incomingRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 4. 创建等量的库存批次（与订单同一事务）
		b, err := stock.NewBatch(req.ProductID, o.ID, req.BatchNumber, req.Quantity, req.ExpiryDate)
		if err != nil {
			return err
		}
		if err := uc.stockRepo.Create(txCtx, b); err != nil {
			return err
		}

		createdOrder = o
		createdBatch = b
		return nil
	})

	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("incoming", failureReason(err)).Inc()
		return nil, err
	}

	metrics.IncomingOrdersCreatedTotal.Inc()
	metrics.OrderCreationDuration.WithLabelValues("incoming").Observe(time.Since(start).Seconds())

	// 事件发布尽力而为：订单已提交，MQ故障不回滚
	_ = uc.publisher.Publish(ctx, "stock.incoming", map[string]interface{}{
		"order_id":   createdOrder.ID,
		"stock_id":   createdBatch.ID,
		"product_id": createdOrder.ProductID,
		"quantity":   createdOrder.Quantity,
		"created_at": createdOrder.CreatedAt.Unix(),
	})

	return toIncomingDTO(createdOrder, createdBatch.ID, orderSupplier, orderProduct), nil
}

// failureReason 把业务错误映射成低基数的指标标签
func failureReason(err error) string {
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	case apperrors.ErrCodeProductNotFound, apperrors.ErrCodeSupplierNotFound,
		apperrors.ErrCodeCustomerNotFound, apperrors.ErrCodeStockNotFound:
		return "not_found"
	case apperrors.ErrCodeInvalidParams:
		return "invalid_params"
	default:
		return "internal"
	}
}

// toIncomingDTO 领域实体 → DTO
// supplier/product为nil时摘要字段省略，只返回外键ID
func toIncomingDTO(o *order.IncomingOrder, stockID uint, s *supplier.Supplier, p *product.Product) *IncomingOrderDTO {
	dto := &IncomingOrderDTO{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		ProductID:   o.ProductID,
		StockID:     stockID,
		BatchNumber: o.BatchNumber,
		Quantity:    o.Quantity,
		UnitCost:    o.UnitCost,
		TotalCost:   o.TotalCost,
		SupplyDate:  o.SupplyDate.Format("2006-01-02"),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if s != nil {
		dto.Supplier = &SupplierSummary{ID: s.ID, Name: s.Name}
	}
	if p != nil {
		dto.Product = &ProductSummary{ID: p.ID, Name: p.Name}
	}
	return dto
}
