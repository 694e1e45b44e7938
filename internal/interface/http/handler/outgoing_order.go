package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/stockroom/internal/application/order"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	"github.com/xiebiao/stockroom/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// OutgoingOrderHandler 出库单HTTP处理器
type OutgoingOrderHandler struct {
	createUseCase *apporder.CreateOutgoingUseCase
	listUseCase   *apporder.ListOutgoingUseCase
	getUseCase    *apporder.GetOutgoingUseCase
}

// NewOutgoingOrderHandler 创建出库单处理器
func NewOutgoingOrderHandler(
	createUseCase *apporder.CreateOutgoingUseCase,
	listUseCase *apporder.ListOutgoingUseCase,
	getUseCase *apporder.GetOutgoingUseCase,
) *OutgoingOrderHandler {
	return &OutgoingOrderHandler{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
	}
}

// Create 创建出库单
// @Summary      创建出库单
// @Description  创建出库单并原子扣减批次余量；库存不足时订单不创建
// @Tags         出库单
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOutgoingOrderRequest true "出库单信息"
// @Success      201 {object} response.Response{data=apporder.OutgoingOrderDTO}
// @Failure      400 {object} response.Response "库存不足或参数错误"
// @Failure      404 {object} response.Response "批次或客户不存在"
// @Router       /api/v1/outgoing-orders [post]
func (h *OutgoingOrderHandler) Create(c *gin.Context) {
	var req dto.CreateOutgoingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	orderDate := time.Now()
	if req.OrderDate != "" {
		t, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "order_date格式应为YYYY-MM-DD")
			return
		}
		orderDate = t
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOutgoingRequest{
		CallerUserID: middleware.MustGetUserID(c),
		CallerRole:   middleware.GetRole(c),
		CustomerID:   req.CustomerID,
		StockID:      req.StockID,
		Quantity:     req.Quantity,
		OrderDate:    orderDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 出库单列表（customer角色自动只看自己的）
// @Summary      出库单列表
// @Tags         出库单
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Router       /api/v1/outgoing-orders [get]
func (h *OutgoingOrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(),
		middleware.MustGetUserID(c), middleware.GetRole(c), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, page.Items, page.Next, page.Prev)
}

// Get 出库单详情
// @Summary      出库单详情
// @Tags         出库单
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OutgoingOrderDTO}
// @Failure      403 {object} response.Response "无权查看他人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/outgoing-orders/{id} [get]
func (h *OutgoingOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(),
		middleware.MustGetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
