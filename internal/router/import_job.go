package router

import (
	"github.com/gin-gonic/gin"
)

func InitImportJobRouter(
	deps RouterDeps,
	r *gin.RouterGroup,
) {
	importRouter := r.Group("/imports")
	{
		importRouter.POST("", deps.ImportJobHandler.UploadCSV)
		importRouter.GET("/jobs", deps.ImportJobHandler.ListJobs)
		importRouter.GET("/jobs/:id", deps.ImportJobHandler.GetJobStatus)
		importRouter.DELETE("/jobs/:id", deps.ImportJobHandler.DeleteJob)
		importRouter.POST("/jobs/:id/cancel", deps.ImportJobHandler.CancelJob)
		// 进度订阅：SSE 和 WebSocket 两种通道
		importRouter.GET("/jobs/:id/events", deps.ImportJobHandler.StreamJobEvents)
		importRouter.GET("/jobs/:id/ws", deps.ImportJobHandler.StreamJobWS)
	}
}
