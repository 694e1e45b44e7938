package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/stockroom/internal/application/category"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	useCase *appcategory.ManageCategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(useCase *appcategory.ManageCategoryUseCase) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcategory.CategoryDTO}
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcategory.CategoryDTO}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.useCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
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

// Update 更新分类
// @Summary      更新分类
// @Tags         分类
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Router       /api/v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.useCase.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除分类
// @Summary      删除分类
// @Tags         分类
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
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
