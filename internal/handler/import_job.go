package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	v1 "prodhub/api/v1"
	"prodhub/internal/model"
	"prodhub/internal/service"
	"prodhub/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// statusPollInterval 进度推送的轮询间隔
const statusPollInterval = time.Second

type ImportJobHandler struct {
	*Handler
	importService service.ImportService
}

func NewImportJobHandler(
	handler *Handler,
	importService service.ImportService,
) *ImportJobHandler {
	return &ImportJobHandler{
		Handler:       handler,
		importService: importService,
	}
}

// UploadCSV 上传 CSV 发起导入
// @Summary 上传 CSV 发起导入
// @Description 校验 CSV 表头（必须包含 sku、name）后入队异步导入，立即返回任务 ID
// @Tags 商品导入
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV 文件"
// @Success 200 {object} v1.UploadCSVResponse
// @Router /api/v1/imports [post]
func (h *ImportJobHandler) UploadCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrFileNameRequired, nil)
		return
	}
	if fileHeader.Filename == "" {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrFileNameRequired, nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.WithContext(ctx).Error("UploadCSV open form file error", zap.Error(err))
		v1.HandleError(ctx, http.StatusInternalServerError, v1.ErrFileSaveFailed, nil)
		return
	}
	defer src.Close()

	data, err := h.importService.UploadCSV(ctx.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		switch {
		case err == v1.ErrFileNameRequired:
			v1.HandleError(ctx, http.StatusBadRequest, err, nil)
		case isInvalidCSVError(err):
			v1.HandleError(ctx, http.StatusBadRequest, v1.ErrInvalidCSVFormat, map[string]string{
				"detail":   err.Error(),
				"required": strings.Join(task.RequiredColumns(), ", "),
			})
		default:
			v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		}
		return
	}
	v1.HandleSuccess(ctx, data)
}

// GetJobStatus 查询任务状态
// @Summary 查询任务状态
// @Description 优先读缓存，缓存失效时回落数据库；id 可以是任务记录 UUID 或队列任务 ID
// @Tags 商品导入
// @Produce json
// @Param id path string true "任务 ID"
// @Success 200 {object} v1.GetImportJobResponse
// @Router /api/v1/imports/jobs/{id} [get]
func (h *ImportJobHandler) GetJobStatus(ctx *gin.Context) {
	data, err := h.importService.GetJobStatus(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if err == v1.ErrJobNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// ListJobs 任务列表
// @Summary 任务列表
// @Description 按创建时间倒序返回最近的导入任务
// @Tags 商品导入
// @Produce json
// @Param limit query int false "返回条数（默认20，最大100）"
// @Success 200 {object} v1.ListImportJobsResponse
// @Router /api/v1/imports/jobs [get]
func (h *ImportJobHandler) ListJobs(ctx *gin.Context) {
	var req v1.ListImportJobsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	data, err := h.importService.ListJobs(ctx.Request.Context(), req.Limit)
	if err != nil {
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// CancelJob 取消任务
// @Summary 取消任务
// @Description 对运行中的任务设置取消标记，worker 在批次边界停止；已结束的任务返回错误
// @Tags 商品导入
// @Produce json
// @Param id path string true "任务 ID"
// @Success 200 {object} v1.Response
// @Router /api/v1/imports/jobs/{id}/cancel [post]
func (h *ImportJobHandler) CancelJob(ctx *gin.Context) {
	if err := h.importService.CancelJob(ctx.Request.Context(), ctx.Param("id")); err != nil {
		switch err {
		case v1.ErrJobNotFound:
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
		case v1.ErrJobFinished:
			v1.HandleError(ctx, http.StatusBadRequest, err, nil)
		default:
			v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		}
		return
	}
	v1.HandleSuccess(ctx, nil)
}

// DeleteJob 删除任务记录
// @Summary 删除任务记录
// @Tags 商品导入
// @Produce json
// @Param id path string true "任务 ID"
// @Success 200 {object} v1.Response
// @Router /api/v1/imports/jobs/{id} [delete]
func (h *ImportJobHandler) DeleteJob(ctx *gin.Context) {
	if err := h.importService.DeleteJob(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if err == v1.ErrJobNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, nil)
}

// StreamJobEvents SSE 进度推送
// @Summary SSE 进度推送
// @Description 每秒轮询一次任务状态，仅在状态变化时推送，任务结束后发送 close 事件并断开
// @Tags 商品导入
// @Produce text/event-stream
// @Param id path string true "任务 ID"
// @Router /api/v1/imports/jobs/{id}/events [get]
func (h *ImportJobHandler) StreamJobEvents(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := h.importService.GetJobStatus(ctx.Request.Context(), id); err != nil {
		if err == v1.ErrJobNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	flusher, ok := ctx.Writer.(http.Flusher)
	if !ok {
		v1.HandleError(ctx, http.StatusInternalServerError, v1.ErrInternalServerError, nil)
		return
	}

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	var last statusSnapshot
	for {
		status, err := h.importService.GetJobStatus(ctx.Request.Context(), id)
		if err != nil {
			// 任务记录在订阅期间被删除，直接结束流
			fmt.Fprint(ctx.Writer, "event: close\ndata: {}\n\n")
			flusher.Flush()
			return
		}

		cur := snapshotOf(status)
		if cur != last {
			payload, err := json.Marshal(status)
			if err != nil {
				h.logger.WithContext(ctx).Error("StreamJobEvents marshal status error", zap.Error(err))
				return
			}
			fmt.Fprintf(ctx.Writer, "data: %s\n\n", payload)
			flusher.Flush()
			last = cur
		}

		if model.IsTerminalStatus(status.Status) {
			fmt.Fprint(ctx.Writer, "event: close\ndata: {}\n\n")
			flusher.Flush()
			return
		}

		select {
		case <-ctx.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// StreamJobWS WebSocket 进度推送
// @Summary WebSocket 进度推送
// @Description 与 SSE 相同的推送语义，任务结束后正常关闭连接
// @Tags 商品导入
// @Param id path string true "任务 ID"
// @Router /api/v1/imports/jobs/{id}/ws [get]
func (h *ImportJobHandler) StreamJobWS(ctx *gin.Context) {
	id := ctx.Param("id")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.WithContext(ctx).Error("StreamJobWS: failed to upgrade websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	var last statusSnapshot
	for {
		status, err := h.importService.GetJobStatus(ctx.Request.Context(), id)
		if err != nil {
			closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, err.Error())
			_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
			return
		}

		cur := snapshotOf(status)
		if cur != last {
			if err := conn.WriteJSON(status); err != nil {
				return
			}
			last = cur
		}

		if model.IsTerminalStatus(status.Status) {
			closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, status.Status)
			_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
			return
		}

		select {
		case <-ctx.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// statusSnapshot 用于判断推送内容是否发生变化
type statusSnapshot struct {
	Status        string
	Progress      int
	ProcessedRows int
}

func snapshotOf(s *v1.ImportJobStatus) statusSnapshot {
	return statusSnapshot{
		Status:        s.Status,
		Progress:      s.Progress,
		ProcessedRows: s.ProcessedRows,
	}
}

func isInvalidCSVError(err error) bool {
	if err == nil {
		return false
	}
	if err == v1.ErrInvalidCSVFormat {
		return true
	}
	return strings.HasPrefix(err.Error(), v1.ErrInvalidCSVFormat.Error())
}
