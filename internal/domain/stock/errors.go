package stock

import (
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrStockNotFound 库存批次不存在
	ErrStockNotFound = apperrors.ErrStockNotFound

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
