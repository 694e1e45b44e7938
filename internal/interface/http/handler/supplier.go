package handler

import (
	"github.com/gin-gonic/gin"

	appsupplier "github.com/xiebiao/stockroom/internal/application/supplier"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	"github.com/xiebiao/stockroom/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// SupplierHandler 供应商HTTP处理器
type SupplierHandler struct {
	useCase *appsupplier.ManageSupplierUseCase
}

// NewSupplierHandler 创建供应商处理器
func NewSupplierHandler(useCase *appsupplier.ManageSupplierUseCase) *SupplierHandler {
	return &SupplierHandler{useCase: useCase}
}

// Create 供应商建档
// @Summary      供应商建档
// @Description  管理员为supplier角色的账号建立供应商档案
// @Tags         供应商
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateSupplierRequest true "供应商信息"
// @Success      201 {object} response.Response{data=appsupplier.SupplierDTO}
// @Router       /api/v1/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Create(c.Request.Context(), appsupplier.CreateSupplierRequest{
		UserID:      req.UserID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 供应商列表（游标分页）
// @Summary      供应商列表
// @Tags         供应商
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Failure      400 {object} response.Response "游标非法"
// @Router       /api/v1/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
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

// Me 当前供应商档案
// @Summary      当前供应商档案
// @Description  supplier角色查看与自己账号关联的档案
// @Tags         供应商
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=appsupplier.SupplierDTO}
// @Failure      404 {object} response.Response "档案不存在"
// @Router       /api/v1/suppliers/me [get]
func (h *SupplierHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.useCase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 供应商详情
// @Summary      供应商详情
// @Tags         供应商
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response{data=appsupplier.SupplierDTO}
// @Router       /api/v1/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
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

// Update 更新供应商档案
// @Summary      更新供应商档案
// @Tags         供应商
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "供应商ID"
// @Param        request body dto.UpdateSupplierRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appsupplier.SupplierDTO}
// @Router       /api/v1/suppliers/{id} [patch]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Update(c.Request.Context(), id, appsupplier.UpdateSupplierRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除供应商档案
// @Summary      删除供应商档案
// @Tags         供应商
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
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
