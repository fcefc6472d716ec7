package queue

import (
	"context"
	"encoding/json"
	"errors"

	"prodhub/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// TypeProductImport 商品 CSV 导入任务类型
const TypeProductImport = "product:import"

// ImportTaskPayload 导入任务载荷，task_id 同时作为队列任务 ID 和缓存键
type ImportTaskPayload struct {
	TaskID   string `json:"task_id"`
	FilePath string `json:"file_path"`
}

// TaskQueue 任务队列协作方：入队 + 尽力而为的撤销
// 队列自身提供 at-least-once 投递和有上限的退避重试
type TaskQueue interface {
	EnqueueImport(ctx context.Context, taskID, filePath string) error
	Revoke(ctx context.Context, taskID string) error
}

func NewRedisClientOpt(conf *viper.Viper) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     conf.GetString("data.redis.addr"),
		Password: conf.GetString("data.redis.password"),
		DB:       conf.GetInt("data.redis.db"),
	}
}

func NewTaskQueue(conf *viper.Viper, logger *log.Logger) TaskQueue {
	opt := NewRedisClientOpt(conf)
	queue := conf.GetString("import.queue")
	if queue == "" {
		queue = "imports"
	}
	maxRetry := conf.GetInt("import.max_retry")
	if maxRetry <= 0 {
		maxRetry = 3
	}
	return &asynqTaskQueue{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     queue,
		maxRetry:  maxRetry,
		logger:    logger,
	}
}

type asynqTaskQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
	maxRetry  int
	logger    *log.Logger
}

func (q *asynqTaskQueue) EnqueueImport(ctx context.Context, taskID, filePath string) error {
	payload, err := json.Marshal(ImportTaskPayload{TaskID: taskID, FilePath: filePath})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeProductImport, payload)
	info, err := q.client.EnqueueContext(ctx, task,
		asynq.TaskID(taskID),
		asynq.Queue(q.queue),
		asynq.MaxRetry(q.maxRetry),
	)
	if err != nil {
		return err
	}
	q.logger.WithContext(ctx).Info("import task enqueued",
		zap.String("task_id", info.ID),
		zap.String("queue", info.Queue),
		zap.String("file_path", filePath))
	return nil
}

// Revoke 尽力撤销：运行中的任务发取消信号，排队中的任务直接删除
// 任务不存在不算错误（可能已经跑完或被重试机制收走）
func (q *asynqTaskQueue) Revoke(ctx context.Context, taskID string) error {
	if err := q.inspector.CancelProcessing(taskID); err != nil {
		q.logger.WithContext(ctx).Debug("cancel processing task", zap.String("task_id", taskID), zap.Error(err))
	}
	err := q.inspector.DeleteTask(q.queue, taskID)
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}
