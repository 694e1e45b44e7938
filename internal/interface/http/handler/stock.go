package handler

import (
	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/stockroom/internal/application/stock"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// StockHandler 库存批次HTTP处理器
// 批次的产生/扣减走订单接口；这里只提供查询和管理员手工调整
type StockHandler struct {
	useCase *appstock.ManageStockUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(useCase *appstock.ManageStockUseCase) *StockHandler {
	return &StockHandler{useCase: useCase}
}

// List 批次列表（游标分页）
// @Summary      库存批次列表
// @Tags         库存
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Router       /api/v1/stocks [get]
func (h *StockHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	page, err := h.useCase.List(c.Request.Context(), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, page.Items, page.Next, page.Prev)
}

// Get 批次详情
// @Summary      批次详情
// @Tags         库存
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "批次ID"
// @Success      200 {object} response.Response{data=appstock.StockDTO}
// @Failure      404 {object} response.Response "批次不存在"
// @Router       /api/v1/stocks/{id} [get]
func (h *StockHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Adjust 手工调整批次数量
// @Summary      手工调整批次数量
// @Description  管理员盘点修正，直接设置新数量（不是增量）
// @Tags         库存
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "批次ID"
// @Param        request body dto.AdjustStockRequest true "新数量"
// @Success      200 {object} response.Response{data=appstock.StockDTO}
// @Failure      400 {object} response.Response "数量非法"
// @Router       /api/v1/stocks/{id} [patch]
func (h *StockHandler) Adjust(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Adjust(c.Request.Context(), id, *req.AvailableQuantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
