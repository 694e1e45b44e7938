package order

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/order"
	"github.com/xiebiao/stockroom/internal/domain/product"
	"github.com/xiebiao/stockroom/internal/domain/stock"
	"github.com/xiebiao/stockroom/internal/domain/supplier"
	"github.com/xiebiao/stockroom/internal/domain/user"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// UpdateIncomingStatusUseCase 入库单状态更新用例
// 状态是入库单唯一可变的字段；状态机由领域实体强制
type UpdateIncomingStatusUseCase struct {
	incomingRepo order.IncomingRepository
	supplierRepo supplier.Repository
	productRepo  product.Repository
	stockRepo    stock.Repository
}

// NewUpdateIncomingStatusUseCase 创建状态更新用例
func NewUpdateIncomingStatusUseCase(
	incomingRepo order.IncomingRepository,
	supplierRepo supplier.Repository,
	productRepo product.Repository,
	stockRepo stock.Repository,
) *UpdateIncomingStatusUseCase {
	return &UpdateIncomingStatusUseCase{
		incomingRepo: incomingRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
	}
}

// UpdateStatusRequest 状态更新请求
type UpdateStatusRequest struct {
	CallerUserID uint
	CallerRole   user.Role

	OrderID uint
	Status  string
}

// Execute 执行状态更新
// 鉴权规则：admin/staff可以改任何订单；supplier只能改自己的订单
func (uc *UpdateIncomingStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*IncomingOrderDTO, error) {
	target := order.Status(req.Status)
	if !target.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "非法的订单状态")
	}

	o, err := uc.incomingRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// 所有权检查
	if !req.CallerRole.IsStaff() {
		s, err := uc.supplierRepo.FindByUserID(ctx, req.CallerUserID)
		if err != nil {
			return nil, apperrors.ErrForbidden
		}
		if !o.IsOwnedBySupplier(s.ID) {
			return nil, apperrors.ErrForbidden
		}
	}

	// 状态机校验（pending→completed|cancelled，终态不可变）
	from := o.Status
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	// 条件更新：并发的两次迁移只有一个生效，输的一方拿到状态冲突错误
	if err := uc.incomingRepo.UpdateStatus(ctx, o.ID, from, target); err != nil {
		return nil, err
	}

	return resolveIncomingDTO(ctx, uc.supplierRepo, uc.productRepo, uc.stockRepo, o)
}
