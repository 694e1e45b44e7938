package stock

import (
	"context"
	"time"

	"github.com/xiebiao/stockroom/internal/domain/stock"
	"github.com/xiebiao/stockroom/pkg/metrics"
	"github.com/xiebiao/stockroom/pkg/mq"
	"github.com/xiebiao/stockroom/pkg/pagination"
)

// ManageStockUseCase 库存批次查询与手工调整用例
// 批次的常规产生/扣减走订单流程；这里只覆盖查询和管理员修正
type ManageStockUseCase struct {
	stockRepo stock.Repository
	publisher *mq.Publisher
}

// NewManageStockUseCase 创建库存管理用例
func NewManageStockUseCase(stockRepo stock.Repository, publisher *mq.Publisher) *ManageStockUseCase {
	return &ManageStockUseCase{
		stockRepo: stockRepo,
		publisher: publisher,
	}
}

// StockDTO 批次响应
type StockDTO struct {
	ID                uint   `json:"id"`
	ProductID         uint   `json:"product_id"`
	IncomingOrderID   uint   `json:"incoming_order_id,omitempty"`
	BatchNumber       string `json:"batch_number"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
	AvailableQuantity int    `json:"available_quantity"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// StockPage 批次分页结果
type StockPage struct {
	Items []*StockDTO
	Next  *string
	Prev  *string
}

// List 游标分页查询批次
func (uc *ManageStockUseCase) List(ctx context.Context, params pagination.Params) (*StockPage, error) {
	page, err := uc.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]*StockDTO, len(page.Items))
	for i, b := range page.Items {
		items[i] = toStockDTO(b)
	}

	return &StockPage{
		Items: items,
		Next:  page.Next,
		Prev:  page.Prev,
	}, nil
}

// Get 批次详情
func (uc *ManageStockUseCase) Get(ctx context.Context, id uint) (*StockDTO, error) {
	b, err := uc.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStockDTO(b), nil
}

// Adjust 手工调整批次数量（管理员修正盘点差异）
// 绕过订单流程直接设置数量；调整事件发出去供下游对账
func (uc *ManageStockUseCase) Adjust(ctx context.Context, id uint, newQuantity int) (*StockDTO, error) {
	b, err := uc.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldQuantity := b.AvailableQuantity
	if err := b.Adjust(newQuantity); err != nil {
		return nil, err
	}

	if err := uc.stockRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	metrics.StockAdjustmentsTotal.Inc()

	// 事件发布尽力而为：失败不影响调整结果
	_ = uc.publisher.Publish(ctx, "stock.adjusted", map[string]interface{}{
		"stock_id":     b.ID,
		"product_id":   b.ProductID,
		"old_quantity": oldQuantity,
		"new_quantity": b.AvailableQuantity,
		"adjusted_at":  time.Now().Unix(),
	})

	return toStockDTO(b), nil
}

// toStockDTO 领域实体 → DTO
func toStockDTO(b *stock.Batch) *StockDTO {
	dto := &StockDTO{
		ID:                b.ID,
		ProductID:         b.ProductID,
		IncomingOrderID:   b.IncomingOrderID,
		BatchNumber:       b.BatchNumber,
		AvailableQuantity: b.AvailableQuantity,
		CreatedAt:         b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if b.ExpiryDate != nil {
		dto.ExpiryDate = b.ExpiryDate.Format("2006-01-02")
	}
	return dto
}
