package handler

import (
	"net/http"

	v1 "prodhub/api/v1"
	"prodhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	*Handler
	webhookService service.WebhookService
}

func NewWebhookHandler(
	handler *Handler,
	webhookService service.WebhookService,
) *WebhookHandler {
	return &WebhookHandler{
		Handler:        handler,
		webhookService: webhookService,
	}
}

// ListWebhooks Webhook 列表
// @Summary Webhook 列表
// @Tags Webhook管理
// @Produce json
// @Success 200 {object} v1.ListWebhooksResponse
// @Router /api/v1/webhooks [get]
func (h *WebhookHandler) ListWebhooks(ctx *gin.Context) {
	data, err := h.webhookService.ListWebhooks(ctx.Request.Context())
	if err != nil {
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// CreateWebhook 创建 Webhook
// @Summary 创建 Webhook
// @Tags Webhook管理
// @Accept json
// @Produce json
// @Param request body v1.CreateWebhookRequest true "创建 Webhook 请求"
// @Success 200 {object} v1.GetWebhookResponse
// @Router /api/v1/webhooks [post]
func (h *WebhookHandler) CreateWebhook(ctx *gin.Context) {
	var req v1.CreateWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.WithContext(ctx).Error("CreateWebhook bind json error", zap.Error(err))
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.webhookService.CreateWebhook(ctx.Request.Context(), &req)
	if err != nil {
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// GetWebhook Webhook 详情
// @Summary Webhook 详情
// @Tags Webhook管理
// @Produce json
// @Param id path string true "Webhook ID"
// @Success 200 {object} v1.GetWebhookResponse
// @Router /api/v1/webhooks/{id} [get]
func (h *WebhookHandler) GetWebhook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	data, err := h.webhookService.GetWebhook(ctx.Request.Context(), id)
	if err != nil {
		if err == v1.ErrWebhookNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// UpdateWebhook 更新 Webhook
// @Summary 更新 Webhook
// @Tags Webhook管理
// @Accept json
// @Produce json
// @Param id path string true "Webhook ID"
// @Param request body v1.UpdateWebhookRequest true "更新 Webhook 请求"
// @Success 200 {object} v1.GetWebhookResponse
// @Router /api/v1/webhooks/{id} [put]
func (h *WebhookHandler) UpdateWebhook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	var req v1.UpdateWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.WithContext(ctx).Error("UpdateWebhook bind json error", zap.Error(err))
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.webhookService.UpdateWebhook(ctx.Request.Context(), id, &req)
	if err != nil {
		if err == v1.ErrWebhookNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// DeleteWebhook 删除 Webhook
// @Summary 删除 Webhook
// @Tags Webhook管理
// @Produce json
// @Param id path string true "Webhook ID"
// @Success 200 {object} v1.Response
// @Router /api/v1/webhooks/{id} [delete]
func (h *WebhookHandler) DeleteWebhook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	if err := h.webhookService.DeleteWebhook(ctx.Request.Context(), id); err != nil {
		if err == v1.ErrWebhookNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, nil)
}

// TestWebhook 测试 Webhook
// @Summary 测试 Webhook
// @Description 向目标地址发送一条测试消息并返回投递结果
// @Tags Webhook管理
// @Produce json
// @Param id path string true "Webhook ID"
// @Success 200 {object} v1.Response
// @Router /api/v1/webhooks/{id}/test [post]
func (h *WebhookHandler) TestWebhook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	data, err := h.webhookService.TestWebhook(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case v1.ErrWebhookNotFound:
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
		case v1.ErrWebhookDisabled:
			v1.HandleError(ctx, http.StatusBadRequest, err, nil)
		default:
			v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		}
		return
	}
	v1.HandleSuccess(ctx, data)
}
