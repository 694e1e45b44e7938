package order

import (
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.ErrInvalidOrderStatus

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidUnitPrice 单价不合法
	ErrInvalidUnitPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")
)
