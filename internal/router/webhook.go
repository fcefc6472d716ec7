package router

import (
	"github.com/gin-gonic/gin"
)

func InitWebhookRouter(
	deps RouterDeps,
	r *gin.RouterGroup,
) {
	webhookRouter := r.Group("/webhooks")
	{
		webhookRouter.GET("", deps.WebhookHandler.ListWebhooks)
		webhookRouter.POST("", deps.WebhookHandler.CreateWebhook)
		webhookRouter.GET("/:id", deps.WebhookHandler.GetWebhook)
		webhookRouter.PUT("/:id", deps.WebhookHandler.UpdateWebhook)
		webhookRouter.DELETE("/:id", deps.WebhookHandler.DeleteWebhook)
		webhookRouter.POST("/:id/test", deps.WebhookHandler.TestWebhook)
	}
}
