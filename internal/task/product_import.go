package task

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"prodhub/internal/model"
	"prodhub/internal/queue"
	"prodhub/internal/repository"
	"prodhub/pkg/log"
	"prodhub/pkg/webhook"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CancelMessage 取消的固定对外文案，与底层检测机制无关
const CancelMessage = "job cancelled by user"

// errCancelled 取消是预期内的终态，不走重试，区别于意外失败
var errCancelled = errors.New(CancelMessage)

// ProductImportTask 商品 CSV 导入管道
// 单任务单 worker 串行执行：预扫描总行数，然后流式地 规范化 -> 批内去重 -> 批量 upsert，
// 批次边界轮询取消标记并双写进度（数据库为准、缓存尽力而为）
type ProductImportTask struct {
	jobRepo     repository.ImportJobRepository
	productRepo repository.ProductRepository
	cacheRepo   repository.JobCacheRepository
	webhookRepo repository.WebhookRepository
	notifier    *webhook.Client
	logger      *log.Logger
	batchSize   int
}

func NewProductImportTask(
	conf *viper.Viper,
	logger *log.Logger,
	jobRepo repository.ImportJobRepository,
	productRepo repository.ProductRepository,
	cacheRepo repository.JobCacheRepository,
	webhookRepo repository.WebhookRepository,
	notifier *webhook.Client,
) *ProductImportTask {
	batchSize := conf.GetInt("import.batch_size")
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ProductImportTask{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		webhookRepo: webhookRepo,
		notifier:    notifier,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Handle asynq 任务入口
// 意外失败原样返回交给队列退避重试（上限见入队配置）；取消跳过重试直接归档
func (t *ProductImportTask) Handle(ctx context.Context, task *asynq.Task) error {
	var payload queue.ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid import task payload: %v: %w", err, asynq.SkipRetry)
	}

	err := t.run(ctx, payload.TaskID, payload.FilePath)
	if err != nil {
		if errors.Is(err, errCancelled) {
			t.logger.WithContext(ctx).Info("import task cancelled",
				zap.String("task_id", payload.TaskID))
			return fmt.Errorf("%s: %w", CancelMessage, asynq.SkipRetry)
		}
		t.logger.WithContext(ctx).Error("import task failed",
			zap.String("task_id", payload.TaskID),
			zap.String("file_path", payload.FilePath),
			zap.Error(err))
		return err
	}
	return nil
}

func (t *ProductImportTask) run(ctx context.Context, taskID, filePath string) error {
	start := time.Now()

	// 1. 预扫描统计总行数，保证进度分母精确
	totalRows, err := countRows(filePath)
	if err != nil {
		t.finishFailed(ctx, taskID, err.Error())
		return err
	}

	// 2. 进入 processing 状态（首次进度写入，total_rows 在此定格）
	processed := 0
	if err := t.publish(ctx, taskID, model.ImportJobStatusProcessing, 0, &totalRows, &processed, nil, nil); err != nil {
		return err
	}

	// 3. 第二遍流式读取，不把整个文件读进内存
	f, err := os.Open(filePath)
	if err != nil {
		err = fmt.Errorf("csv file not found: %s", filePath)
		t.finishFailed(ctx, taskID, err.Error())
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		err = fmt.Errorf("failed to read csv header: %w", err)
		t.finishFailed(ctx, taskID, err.Error())
		return err
	}
	cols := resolveColumns(header)

	batch := make([]productRow, 0, t.batchSize)

	// applyBatch 批次边界：先轮询取消标记，再去重、单语句 upsert、双写进度
	applyBatch := func() error {
		if len(batch) == 0 {
			return nil
		}
		cancelled, cerr := t.cacheRepo.IsCancelled(ctx, taskID)
		if cerr != nil {
			// 取消标记读不到不致命，按未取消继续
			t.logger.WithContext(ctx).Warn("failed to poll cancellation flag",
				zap.String("task_id", taskID), zap.Error(cerr))
		}
		if cancelled {
			return errCancelled
		}

		deduped := dedupBatch(batch)
		batch = batch[:0]
		if len(deduped) == 0 {
			return nil
		}

		products := make([]*model.Product, 0, len(deduped))
		for _, row := range deduped {
			products = append(products, &model.Product{
				Id:          uuid.New(),
				Sku:         row.Sku,
				Name:        row.Name,
				Description: row.Description,
				Active:      true,
			})
		}
		if err := t.productRepo.UpsertBatch(ctx, products); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}

		processed += len(deduped)
		progress := computeProgress(processed, totalRows)
		eta := computeETA(processed, totalRows, time.Since(start))
		return t.publish(ctx, taskID, model.ImportJobStatusProcessing, progress, &totalRows, &processed, nil, eta)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 行结构损坏属于致命的输入错误，不是跳过行
			err = fmt.Errorf("failed to read csv row: %w", err)
			t.finishFailed(ctx, taskID, err.Error())
			return err
		}
		batch = append(batch, normalizeRow(cols, record))
		if len(batch) >= t.batchSize {
			if err := applyBatch(); err != nil {
				t.finishFailed(ctx, taskID, err.Error())
				return err
			}
		}
	}
	if err := applyBatch(); err != nil {
		t.finishFailed(ctx, taskID, err.Error())
		return err
	}

	// 4. 全部批次落库后进入 completed 终态，进度强制置 100
	if err := t.publish(ctx, taskID, model.ImportJobStatusCompleted, 100, &totalRows, &processed, nil, nil); err != nil {
		return err
	}
	t.logger.WithContext(ctx).Info("import task completed",
		zap.String("task_id", taskID),
		zap.Int("total_rows", totalRows),
		zap.Int("processed_rows", processed),
		zap.Duration("elapsed", time.Since(start)))

	t.notify(ctx, taskID, model.WebhookEventImportCompleted)
	return nil
}

// publish 进度双写：数据库是 source of truth，缓存写失败只记日志不中断管道
func (t *ProductImportTask) publish(ctx context.Context, taskID, status string, progress int, totalRows, processedRows *int, errorMessage *string, etaSeconds *int) error {
	if err := t.jobRepo.UpdateProgress(ctx, taskID, status, progress, totalRows, processedRows, errorMessage); err != nil {
		return fmt.Errorf("failed to update import job: %w", err)
	}

	entry := &repository.JobStatusEntry{
		Status:    status,
		Progress:  progress,
		TotalRows: totalRows,
	}
	if processedRows != nil {
		entry.ProcessedRows = *processedRows
	}
	if errorMessage != nil {
		entry.ErrorMessage = *errorMessage
	}
	// ETA 只在 processing 期间发布，且只进缓存条目
	if status == model.ImportJobStatusProcessing {
		entry.ETASeconds = etaSeconds
	}
	if err := t.cacheRepo.CacheStatus(ctx, taskID, entry); err != nil {
		t.logger.WithContext(ctx).Warn("failed to cache job status",
			zap.String("task_id", taskID), zap.Error(err))
	}
	return nil
}

// finishFailed 写 failed 终态（取消和意外失败共用），尽力而为
func (t *ProductImportTask) finishFailed(ctx context.Context, taskID, errorMessage string) {
	if err := t.publish(ctx, taskID, model.ImportJobStatusFailed, 0, nil, nil, &errorMessage, nil); err != nil {
		t.logger.WithContext(ctx).Error("failed to persist terminal failure",
			zap.String("task_id", taskID), zap.Error(err))
	}
	t.notify(ctx, taskID, model.WebhookEventImportFailed)
}

// notify 终态 webhook 通知，投递失败只记日志，绝不影响任务终态
func (t *ProductImportTask) notify(ctx context.Context, taskID, eventType string) {
	webhooks, err := t.webhookRepo.ListEnabledByEventType(ctx, eventType)
	if err != nil {
		t.logger.WithContext(ctx).Warn("failed to list webhooks",
			zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if len(webhooks) == 0 {
		return
	}

	job, err := t.jobRepo.GetByTaskID(ctx, taskID)
	if err != nil || job == nil {
		t.logger.WithContext(ctx).Warn("failed to load job for webhook payload",
			zap.String("task_id", taskID), zap.Error(err))
		return
	}

	payload := map[string]interface{}{
		"event_type":     eventType,
		"job_id":         job.Id.String(),
		"task_id":        taskID,
		"status":         job.Status,
		"total_rows":     job.TotalRows,
		"processed_rows": job.ProcessedRows,
		"error_message":  job.ErrorMessage,
		"file_name":      job.FileName,
		"timestamp":      time.Now().Unix(),
	}
	for _, wh := range webhooks {
		result := t.notifier.Post(ctx, wh.URL, payload)
		if !result.Success {
			t.logger.WithContext(ctx).Warn("webhook delivery failed",
				zap.String("url", wh.URL),
				zap.String("event_type", eventType),
				zap.Int("status_code", result.StatusCode),
				zap.String("error", result.ErrorMessage))
		}
	}
}
