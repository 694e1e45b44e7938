package order

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/customer"
	"github.com/xiebiao/stockroom/internal/domain/order"
	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/internal/domain/supplier"
	"github.com/xiebiao/stockroom/internal/domain/user"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// ListIncomingUseCase 入库单列表用例（游标分页）
type ListIncomingUseCase struct {
	incomingRepo order.IncomingRepository
	supplierRepo supplier.Repository
	productRepo  product.Repository
}

// NewListIncomingUseCase 创建入库单列表用例
func NewListIncomingUseCase(
	incomingRepo order.IncomingRepository,
	supplierRepo supplier.Repository,
	productRepo product.Repository,
) *ListIncomingUseCase {
	return &ListIncomingUseCase{
		incomingRepo: incomingRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// IncomingOrderPage 入库单分页结果
type IncomingOrderPage struct {
	Items []*IncomingOrderDTO
	Next  *string
	Prev  *string
}

// Execute 查询全量入库单（admin/staff）
func (uc *ListIncomingUseCase) Execute(ctx context.Context, params pagination.Params) (*IncomingOrderPage, error) {
	return uc.list(ctx, 0, params)
}

// ExecuteMine 查询当前供应商自己的入库单（/incoming-orders/me）
func (uc *ListIncomingUseCase) ExecuteMine(ctx context.Context, callerUserID uint, params pagination.Params) (*IncomingOrderPage, error) {
	s, err := uc.supplierRepo.FindByUserID(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, s.ID, params)
}

func (uc *ListIncomingUseCase) list(ctx context.Context, supplierID uint, params pagination.Params) (*IncomingOrderPage, error) {
	page, err := uc.incomingRepo.List(ctx, supplierID, params)
	if err != nil {
		return nil, err
	}

	// 同一页内按ID缓存，重复的供应商/商品只查一次
	suppliers := make(map[uint]*supplier.Supplier)
	products := make(map[uint]*product.Product)

	items := make([]*IncomingOrderDTO, len(page.Items))
	for i, o := range page.Items {
		s, ok := suppliers[o.SupplierID]
		if !ok {
			if s, err = lookupSupplier(ctx, uc.supplierRepo, o.SupplierID); err != nil {
				return nil, err
			}
			suppliers[o.SupplierID] = s
		}
		p, ok := products[o.ProductID]
		if !ok {
			if p, err = lookupProduct(ctx, uc.productRepo, o.ProductID); err != nil {
				return nil, err
			}
			products[o.ProductID] = p
		}
		items[i] = toIncomingDTO(o, 0, s, p)
	}

	return &IncomingOrderPage{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// ListOutgoingUseCase 出库单列表用例
// customer角色自动过滤为自己的订单；admin/staff看全量
type ListOutgoingUseCase struct {
	outgoingRepo order.OutgoingRepository
	customerRepo customer.Repository
	productRepo  product.Repository
}

// NewListOutgoingUseCase 创建出库单列表用例
func NewListOutgoingUseCase(
	outgoingRepo order.OutgoingRepository,
	customerRepo customer.Repository,
	productRepo product.Repository,
) *ListOutgoingUseCase {
	return &ListOutgoingUseCase{
		outgoingRepo: outgoingRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// OutgoingOrderPage 出库单分页结果
type OutgoingOrderPage struct {
	Items []*OutgoingOrderDTO
	Next  *string
	Prev  *string
}

// Execute 查询出库单列表
func (uc *ListOutgoingUseCase) Execute(ctx context.Context, callerUserID uint, callerRole user.Role, params pagination.Params) (*OutgoingOrderPage, error) {
	var customerID uint
	if callerRole == user.RoleCustomer {
		c, err := uc.customerRepo.FindByUserID(ctx, callerUserID)
		if err != nil {
			return nil, err
		}
		customerID = c.ID
	}

	page, err := uc.outgoingRepo.List(ctx, customerID, params)
	if err != nil {
		return nil, err
	}

	customers := make(map[uint]*customer.Customer)
	products := make(map[uint]*product.Product)

	items := make([]*OutgoingOrderDTO, len(page.Items))
	for i, o := range page.Items {
		c, ok := customers[o.CustomerID]
		if !ok {
			if c, err = lookupCustomer(ctx, uc.customerRepo, o.CustomerID); err != nil {
				return nil, err
			}
			customers[o.CustomerID] = c
		}
		p, ok := products[o.ProductID]
		if !ok {
			if p, err = lookupProduct(ctx, uc.productRepo, o.ProductID); err != nil {
				return nil, err
			}
			products[o.ProductID] = p
		}
		items[i] = toOutgoingDTO(o, c, p)
	}

	return &OutgoingOrderPage{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}
