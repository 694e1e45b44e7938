package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/stockroom/internal/application/product"
	"github.com/xiebiao/stockroom/internal/interface/http/dto"
	apperrors "github.com/xiebiao/stockroom/pkg/errors"
	"github.com/xiebiao/stockroom/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createUseCase *appproduct.CreateProductUseCase
	listUseCase   *appproduct.ListProductsUseCase
	getUseCase    *appproduct.GetProductUseCase
	updateUseCase *appproduct.UpdateProductUseCase
	deleteUseCase *appproduct.DeleteProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createUseCase *appproduct.CreateProductUseCase,
	listUseCase *appproduct.ListProductsUseCase,
	getUseCase *appproduct.GetProductUseCase,
	updateUseCase *appproduct.UpdateProductUseCase,
	deleteUseCase *appproduct.DeleteProductUseCase,
) *ProductHandler {
	return &ProductHandler{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create 创建商品
// @Summary      创建商品
// @Tags         商品
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=appproduct.ProductDTO}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 商品列表（游标分页）
// @Summary      商品列表
// @Description  游标分页：after向后翻页，before向前翻页，游标不透明原样回传
// @Tags         商品
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "每页条数(1-100，默认10)"
// @Param        after query string false "向后翻页游标"
// @Param        before query string false "向前翻页游标"
// @Success      200 {object} response.Response{data=response.CursorPage}
// @Failure      400 {object} response.Response "游标非法"
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
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

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appproduct.ProductDTO}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新商品（部分更新）
// @Summary      更新商品
// @Tags         商品
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appproduct.ProductDTO}
// @Router       /api/v1/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, appproduct.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除商品
// @Summary      删除商品
// @Tags         商品
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
