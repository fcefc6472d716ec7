package router

import (
	"github.com/gin-gonic/gin"
)

func InitProductRouter(
	deps RouterDeps,
	r *gin.RouterGroup,
) {
	productRouter := r.Group("/products")
	{
		productRouter.GET("", deps.ProductHandler.ListProducts)
		productRouter.POST("", deps.ProductHandler.CreateProduct)
		// 全量删除必须带 confirm=true，注册在 /:id 之前避免路由冲突
		productRouter.DELETE("", deps.ProductHandler.DeleteAllProducts)
		productRouter.GET("/:id", deps.ProductHandler.GetProduct)
		productRouter.PUT("/:id", deps.ProductHandler.UpdateProduct)
		productRouter.DELETE("/:id", deps.ProductHandler.DeleteProduct)
	}
}
