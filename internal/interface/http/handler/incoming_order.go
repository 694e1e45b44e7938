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

// IncomingOrderHandler 入库单HTTP处理器
type IncomingOrderHandler struct {
	createUseCase *apporder.CreateIncomingUseCase
	listUseCase   *apporder.ListIncomingUseCase
	getUseCase    *apporder.GetIncomingUseCase
	statusUseCase *apporder.UpdateIncomingStatusUseCase
}

// NewIncomingOrderHandler 创建入库单处理器
func NewIncomingOrderHandler(
	createUseCase *apporder.CreateIncomingUseCase,
	listUseCase *apporder.ListIncomingUseCase,
	getUseCase *apporder.GetIncomingUseCase,
	statusUseCase *apporder.UpdateIncomingStatusUseCase,
) *IncomingOrderHandler {
	return &IncomingOrderHandler{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		statusUseCase: statusUseCase,
	}
}

// Create 创建入库单
// @Summary      创建入库单
// @Description  创建入库单并在同一事务内产生等量库存批次
// @Tags         入库单
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateIncomingOrderRequest true "入库单信息"
// @Success      201 {object} response.Response{data=apporder.IncomingOrderDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品或供应商不存在"
// @Router       /api/v1/incoming-orders [post]
func (h *IncomingOrderHandler) Create(c *gin.Context) {
	var req dto.CreateIncomingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	supplyDate, err := time.Parse("2006-01-02", req.SupplyDate)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "supply_date格式应为YYYY-MM-DD")
		return
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "expiry_date格式应为YYYY-MM-DD")
			return
		}
		expiryDate = &t
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateIncomingRequest{
		CallerUserID: middleware.MustGetUserID(c),
		CallerRole:   middleware.GetRole(c),
		SupplierID:   req.SupplierID,
		ProductID:    req.ProductID,
		BatchNumber:  req.BatchNumber,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		SupplyDate:   supplyDate,
		ExpiryDate:   expiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 入库单列表（admin/staff，游标分页）
// @Summary      入库单列表
// @Tags         入库单
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Router       /api/v1/incoming-orders [get]
func (h *IncomingOrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, page.Items, page.Next, page.Prev)
}

// ListMine 当前供应商的入库单
// @Summary      当前供应商的入库单
// @Tags         入库单
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Router       /api/v1/incoming-orders/me [get]
func (h *IncomingOrderHandler) ListMine(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	page, err := h.listUseCase.ExecuteMine(c.Request.Context(), middleware.MustGetUserID(c), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, page.Items, page.Next, page.Prev)
}

// Get 入库单详情
// @Summary      入库单详情
// @Tags         入库单
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.IncomingOrderDTO}
// @Failure      403 {object} response.Response "无权查看他人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/incoming-orders/{id} [get]
func (h *IncomingOrderHandler) Get(c *gin.Context) {
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

// UpdateStatus 更新入库单状态
// @Summary      更新入库单状态
// @Description  pending→completed|cancelled，终态不可再变
// @Tags         入库单
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.IncomingOrderDTO}
// @Failure      400 {object} response.Response "非法状态转换"
// @Router       /api/v1/incoming-orders/{id} [patch]
func (h *IncomingOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.statusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		CallerUserID: middleware.MustGetUserID(c),
		CallerRole:   middleware.GetRole(c),
		OrderID:      id,
		Status:       req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
