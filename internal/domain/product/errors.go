package product

import (
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.ErrProductNotFound

	// ErrInvalidName 商品名不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名不能为空")

	// ErrInvalidPrice 价格不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
)
