package handler

import (
	"net/http"

	v1 "prodhub/api/v1"
	"prodhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	*Handler
	productService service.ProductService
}

func NewProductHandler(
	handler *Handler,
	productService service.ProductService,
) *ProductHandler {
	return &ProductHandler{
		Handler:        handler,
		productService: productService,
	}
}

// ListProducts 商品列表
// @Summary 商品列表
// @Description 分页查询商品，支持 sku/name/description 模糊过滤和 active 过滤
// @Tags 商品管理
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数（最大100）"
// @Param sku query string false "sku 模糊匹配（大小写不敏感）"
// @Param name query string false "名称模糊匹配"
// @Param active query bool false "按启用状态过滤"
// @Success 200 {object} v1.ListProductResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(ctx *gin.Context) {
	var req v1.ListProductRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.productService.ListProducts(ctx.Request.Context(), &req)
	if err != nil {
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// CreateProduct 创建商品
// @Summary 创建商品
// @Description sku 大小写不敏感唯一，存储前会 trim + 小写
// @Tags 商品管理
// @Accept json
// @Produce json
// @Param request body v1.CreateProductRequest true "创建商品请求"
// @Success 200 {object} v1.GetProductResponse
// @Router /api/v1/products [post]
func (h *ProductHandler) CreateProduct(ctx *gin.Context) {
	var req v1.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.WithContext(ctx).Error("CreateProduct bind json error", zap.Error(err))
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.productService.CreateProduct(ctx.Request.Context(), &req)
	if err != nil {
		if err == v1.ErrSkuAlreadyExists || err == v1.ErrBadRequest {
			v1.HandleError(ctx, http.StatusBadRequest, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags 商品管理
// @Produce json
// @Param id path string true "商品 ID"
// @Success 200 {object} v1.GetProductResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	data, err := h.productService.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		if err == v1.ErrProductNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Description 只允许更新 name/description/active，sku 不可变更
// @Tags 商品管理
// @Accept json
// @Produce json
// @Param id path string true "商品 ID"
// @Param request body v1.UpdateProductRequest true "更新商品请求"
// @Success 200 {object} v1.GetProductResponse
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) UpdateProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	var req v1.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.WithContext(ctx).Error("UpdateProduct bind json error", zap.Error(err))
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.productService.UpdateProduct(ctx.Request.Context(), id, &req)
	if err != nil {
		if err == v1.ErrProductNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags 商品管理
// @Produce json
// @Param id path string true "商品 ID"
// @Success 200 {object} v1.Response
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	if err := h.productService.DeleteProduct(ctx.Request.Context(), id); err != nil {
		if err == v1.ErrProductNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, nil)
}

// DeleteAllProducts 清空商品
// @Summary 清空商品
// @Description 删除全部商品，必须带 confirm=true 显式确认
// @Tags 商品管理
// @Produce json
// @Param confirm query bool true "确认标记，必须为 true"
// @Success 200 {object} v1.Response
// @Router /api/v1/products [delete]
func (h *ProductHandler) DeleteAllProducts(ctx *gin.Context) {
	if ctx.Query("confirm") != "true" {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrConfirmRequired, nil)
		return
	}

	data, err := h.productService.DeleteAllProducts(ctx.Request.Context())
	if err != nil {
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}
