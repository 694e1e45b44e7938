package dto

import "github.com/xiebiao/stockroom/pkg/pagination"

// ListRequest 游标分页查询参数
// after/before是不透明游标，客户端原样回传，不解读内容
type ListRequest struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	After  string `form:"after" binding:"omitempty" example:"MTA="`
	Before string `form:"before" binding:"omitempty" example:"MjA="`
}

// Params 转换为分页参数
func (r ListRequest) Params() pagination.Params {
	return pagination.Params{
		Limit:  r.Limit,
		After:  r.After,
		Before: r.Before,
	}
}
