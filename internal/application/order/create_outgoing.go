package order

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/stockroom/internal/domain/customer"
	"github.com/xiebiao/stockroom/internal/domain/order"
	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/internal/domain/stock"
	"github.com/xiebiao/stockroom/internal/domain/user"
	"github.com/xiebiao/stockroom/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/metrics"
	"github.com/xiebiao/stockroom/pkg/mq"
)

// CreateOutgoingUseCase 创建出库单用例
// 教学重点:防止超卖的完整流程
//
// 核心问题:批次剩10件，两个并发请求各要6件
// 错误实现:
//  1. 查询余量 → 10件
//  2. 判断够不够 → 够
//  3. 扣减 → available_quantity = available_quantity - 6
//     结果:两个请求都通过了步骤2，最后余量-2（超卖!）
//
// 正确实现:原子条件扣减
//  1. UPDATE ... SET available_quantity = available_quantity - 6
//     WHERE id = ? AND available_quantity >= 6
//  2. 影响行数为0 → 库存不足，事务回滚，订单不创建
//  3. 两个并发请求争同一行时由数据库行锁串行化，只有一个能成功
type CreateOutgoingUseCase struct {
	outgoingRepo order.OutgoingRepository
	productRepo  product.Repository
	customerRepo customer.Repository
	stockRepo    stock.Repository
	txManager    *mysql.TxManager
	publisher    *mq.Publisher
}

// NewCreateOutgoingUseCase 创建出库单用例
func NewCreateOutgoingUseCase(
	outgoingRepo order.OutgoingRepository,
	productRepo product.Repository,
	customerRepo customer.Repository,
	stockRepo stock.Repository,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
) *CreateOutgoingUseCase {
	return &CreateOutgoingUseCase{
		outgoingRepo: outgoingRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		stockRepo:    stockRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// CreateOutgoingRequest 创建出库单请求
// customer角色忽略请求里的customer_id，强制使用自己的档案
type CreateOutgoingRequest struct {
	CallerUserID uint
	CallerRole   user.Role

	CustomerID uint
	StockID    uint
	Quantity   int
	OrderDate  time.Time
}

// CustomerSummary 订单响应里内嵌的客户摘要
type CustomerSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OutgoingOrderDTO 出库单响应
// 除了外键ID还内嵌客户/商品摘要
type OutgoingOrderDTO struct {
	ID         uint             `json:"id"`
	CustomerID uint             `json:"customer_id"`
	ProductID  uint             `json:"product_id"`
	StockID    uint             `json:"stock_id"`
	Customer   *CustomerSummary `json:"customer,omitempty"`
	Product    *ProductSummary  `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
	UnitPrice  int64            `json:"unit_price"`
	TotalPrice int64            `json:"total_price"`
	OrderDate  string           `json:"order_date"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at"`
}

// Execute 执行创建出库单
// 流程（全部在同一事务内）:
// 1. 查批次 → 前置余量检查（尽早返回友好错误，含requested/available）
// 2. 查商品取价格快照（未定价按0计价）→ 查客户
// 3. 创建出库单 → 原子条件扣减批次
func (uc *CreateOutgoingUseCase) Execute(ctx context.Context, req CreateOutgoingRequest) (*OutgoingOrderDTO, error) {
	start := time.Now()

	if req.Quantity <= 0 {
		return nil, order.ErrInvalidQuantity
	}

	// customer角色强制使用自己的档案
	if req.CallerRole == user.RoleCustomer {
		c, err := uc.customerRepo.FindByUserID(ctx, req.CallerUserID)
		if err != nil {
			return nil, err
		}
		req.CustomerID = c.ID
	}

	var createdOrder *order.OutgoingOrder
	var orderProduct *product.Product
	var orderCustomer *customer.Customer

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查批次并做前置余量检查
		// 注意:这里的检查只为给出友好错误信息（请求量 vs 余量）。
		// 真正防超卖的是步骤5的原子条件扣减——并发窗口里余量可能已经变了
		batch, err := uc.stockRepo.FindByID(txCtx, req.StockID)
		if err != nil {
			return err
		}
		if !batch.CanFulfill(req.Quantity) {
			return apperrors.New(apperrors.ErrCodeInsufficientStock,
				fmt.Sprintf("批次%d库存不足: 需要%d, 可用%d", batch.ID, req.Quantity, batch.AvailableQuantity))
		}

		// 2. 查商品取价格快照
		// 教学要点:使用数据库里的当前价格而非前端传递的价格，防止改价攻击
		p, err := uc.productRepo.FindByID(txCtx, batch.ProductID)
		if err != nil {
			return err
		}

		// 3. 校验客户存在
		c, err := uc.customerRepo.FindByID(txCtx, req.CustomerID)
		if err != nil {
			return err
		}
		orderProduct = p
		orderCustomer = c

		// 4. 创建出库单（价格快照算定总价）
		o, err := order.NewOutgoingOrder(req.CustomerID, batch.ProductID, batch.ID,
			req.Quantity, p.Price, req.OrderDate)
		if err != nil {
			return err
		}
		if err := uc.outgoingRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 5. 原子条件扣减（防超卖的关键；失败则整个事务回滚，订单不会创建）
		if err := uc.stockRepo.DecrementQuantity(txCtx, batch.ID, req.Quantity); err != nil {
			return err
		}

		createdOrder = o
		return nil
	})

	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("outgoing", failureReason(err)).Inc()
		return nil, err
	}

	metrics.OutgoingOrdersCreatedTotal.Inc()
	metrics.OrderCreationDuration.WithLabelValues("outgoing").Observe(time.Since(start).Seconds())

	_ = uc.publisher.Publish(ctx, "stock.outgoing", map[string]interface{}{
		"order_id":   createdOrder.ID,
		"stock_id":   createdOrder.StockID,
		"product_id": createdOrder.ProductID,
		"quantity":   createdOrder.Quantity,
		"created_at": createdOrder.CreatedAt.Unix(),
	})

	return toOutgoingDTO(createdOrder, orderCustomer, orderProduct), nil
}

// toOutgoingDTO 领域实体 → DTO
// customer/product为nil时摘要字段省略，只返回外键ID
func toOutgoingDTO(o *order.OutgoingOrder, c *customer.Customer, p *product.Product) *OutgoingOrderDTO {
	dto := &OutgoingOrderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		StockID:    o.StockID,
		Quantity:   o.Quantity,
		UnitPrice:  o.UnitPrice,
		TotalPrice: o.TotalPrice,
		OrderDate:  o.OrderDate.Format("2006-01-02"),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if c != nil {
		dto.Customer = &CustomerSummary{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
	}
	if p != nil {
		dto.Product = &ProductSummary{ID: p.ID, Name: p.Name}
	}
	return dto
}
