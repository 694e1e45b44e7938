package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/stockroom/internal/application/customer"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	"github.com/xiebiao/stockroom/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	useCase *appcustomer.ManageCustomerUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(useCase *appcustomer.ManageCustomerUseCase) *CustomerHandler {
	return &CustomerHandler{useCase: useCase}
}

// Create 客户建档
// @Summary      客户建档
// @Tags         客户
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCustomerRequest true "客户信息"
// @Success      201 {object} response.Response{data=appcustomer.CustomerDTO}
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Create(c.Request.Context(), appcustomer.CreateCustomerRequest{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 客户列表
// @Summary      客户列表
// @Tags         客户
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcustomer.CustomerDTO}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.useCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Me 当前客户档案
// @Summary      当前客户档案
// @Tags         客户
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Failure      404 {object} response.Response "档案不存在"
// @Router       /api/v1/customers/me [get]
func (h *CustomerHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.useCase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 客户详情
// @Summary      客户详情
// @Tags         客户
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
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

// Update 更新客户档案
// @Summary      更新客户档案
// @Tags         客户
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "客户ID"
// @Param        request body dto.UpdateCustomerRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appcustomer.CustomerDTO}
// @Router       /api/v1/customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Update(c.Request.Context(), id, appcustomer.UpdateCustomerRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除客户档案
// @Summary      删除客户档案
// @Tags         客户
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
