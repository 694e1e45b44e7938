package order

import (
	"context"
	"errors"

	"github.com/xiebiao/stockroom/internal/domain/customer"
	"github.com/xiebiao/stockroom/internal/domain/order"
	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/internal/domain/stock"
	"github.com/xiebiao/stockroom/internal/domain/supplier"
	"github.com/xiebiao/stockroom/internal/domain/user"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// GetIncomingUseCase 入库单详情用例
type GetIncomingUseCase struct {
	incomingRepo order.IncomingRepository
	supplierRepo supplier.Repository
	productRepo  product.Repository
	stockRepo    stock.Repository
}

// NewGetIncomingUseCase 创建入库单详情用例
func NewGetIncomingUseCase(
	incomingRepo order.IncomingRepository,
	supplierRepo supplier.Repository,
	productRepo product.Repository,
	stockRepo stock.Repository,
) *GetIncomingUseCase {
	return &GetIncomingUseCase{
		incomingRepo: incomingRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
	}
}

// Execute 查询入库单详情
// supplier角色只能看自己的订单；响应内嵌供应商/商品摘要和批次ID
func (uc *GetIncomingUseCase) Execute(ctx context.Context, callerUserID uint, callerRole user.Role, orderID uint) (*IncomingOrderDTO, error) {
	o, err := uc.incomingRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !callerRole.IsStaff() {
		s, err := uc.supplierRepo.FindByUserID(ctx, callerUserID)
		if err != nil {
			return nil, apperrors.ErrForbidden
		}
		if !o.IsOwnedBySupplier(s.ID) {
			return nil, apperrors.ErrForbidden
		}
	}

	return resolveIncomingDTO(ctx, uc.supplierRepo, uc.productRepo, uc.stockRepo, o)
}

// resolveIncomingDTO 补齐入库单详情响应：供应商/商品摘要 + 产生的批次ID
func resolveIncomingDTO(
	ctx context.Context,
	supplierRepo supplier.Repository,
	productRepo product.Repository,
	stockRepo stock.Repository,
	o *order.IncomingOrder,
) (*IncomingOrderDTO, error) {
	s, err := lookupSupplier(ctx, supplierRepo, o.SupplierID)
	if err != nil {
		return nil, err
	}
	p, err := lookupProduct(ctx, productRepo, o.ProductID)
	if err != nil {
		return nil, err
	}

	// 批次查不到按0返回（omitempty省略），不影响订单本身的读取
	var stockID uint
	if b, err := stockRepo.FindByIncomingOrderID(ctx, o.ID); err == nil {
		stockID = b.ID
	} else if !errors.Is(err, stock.ErrStockNotFound) {
		return nil, err
	}

	return toIncomingDTO(o, stockID, s, p), nil
}

// 历史订单可能引用已删除(软删除)的商品或档案：
// 摘要查不到时按nil省略，订单本身仍然可读
func lookupSupplier(ctx context.Context, repo supplier.Repository, id uint) (*supplier.Supplier, error) {
	s, err := repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrSupplierNotFound) {
		return nil, nil
	}
	return s, err
}

func lookupProduct(ctx context.Context, repo product.Repository, id uint) (*product.Product, error) {
	p, err := repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrProductNotFound) {
		return nil, nil
	}
	return p, err
}

func lookupCustomer(ctx context.Context, repo customer.Repository, id uint) (*customer.Customer, error) {
	c, err := repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrCustomerNotFound) {
		return nil, nil
	}
	return c, err
}

// GetOutgoingUseCase 出库单详情用例
type GetOutgoingUseCase struct {
	outgoingRepo order.OutgoingRepository
	customerRepo customer.Repository
	productRepo  product.Repository
}

// NewGetOutgoingUseCase 创建出库单详情用例
func NewGetOutgoingUseCase(
	outgoingRepo order.OutgoingRepository,
	customerRepo customer.Repository,
	productRepo product.Repository,
) *GetOutgoingUseCase {
	return &GetOutgoingUseCase{
		outgoingRepo: outgoingRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Execute 查询出库单详情
// customer角色只能看自己的订单（order.customer.user_id == caller.id）
func (uc *GetOutgoingUseCase) Execute(ctx context.Context, callerUserID uint, callerRole user.Role, orderID uint) (*OutgoingOrderDTO, error) {
	o, err := uc.outgoingRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !callerRole.IsStaff() {
		c, err := uc.customerRepo.FindByUserID(ctx, callerUserID)
		if err != nil {
			return nil, apperrors.ErrForbidden
		}
		if !o.IsOwnedByCustomer(c.ID) {
			return nil, apperrors.ErrForbidden
		}
	}

	c, err := lookupCustomer(ctx, uc.customerRepo, o.CustomerID)
	if err != nil {
		return nil, err
	}
	p, err := lookupProduct(ctx, uc.productRepo, o.ProductID)
	if err != nil {
		return nil, err
	}

	return toOutgoingDTO(o, c, p), nil
}
