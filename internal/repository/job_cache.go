package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// JobStatusEntry 任务状态的缓存投影，读路径优先命中这里，miss 时回落数据库
type JobStatusEntry struct {
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	TotalRows     *int   `json:"total_rows"`
	ProcessedRows int    `json:"processed_rows"`
	ErrorMessage  string `json:"error_message,omitempty"`
	ETASeconds    *int   `json:"eta_seconds,omitempty"`
}

type JobCacheRepository interface {
	// CacheStatus 写入状态投影，每次写入重置 TTL
	CacheStatus(ctx context.Context, taskID string, entry *JobStatusEntry) error
	// GetStatus 读取状态投影，miss 返回 (nil, nil)
	GetStatus(ctx context.Context, taskID string) (*JobStatusEntry, error)
	// DeleteStatus 清理状态投影和取消标记
	DeleteStatus(ctx context.Context, taskID string) error
	// MarkCancelled 打取消标记（只由外部取消请求写入）
	MarkCancelled(ctx context.Context, taskID string) error
	// IsCancelled 轮询取消标记（只在批次边界调用）
	IsCancelled(ctx context.Context, taskID string) (bool, error)
}

func NewJobCacheRepository(
	repository *Repository,
	conf *viper.Viper,
) JobCacheRepository {
	ttl := conf.GetInt("import.cache_ttl")
	if ttl <= 0 {
		ttl = 3600
	}
	return &jobCacheRepository{
		Repository: repository,
		ttl:        time.Duration(ttl) * time.Second,
	}
}

type jobCacheRepository struct {
	*Repository
	ttl time.Duration
}

func jobStatusKey(taskID string) string {
	return fmt.Sprintf("job:%s", taskID)
}

func jobCancelKey(taskID string) string {
	return fmt.Sprintf("job:%s:cancelled", taskID)
}

func (r *jobCacheRepository) CacheStatus(ctx context.Context, taskID string, entry *JobStatusEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, jobStatusKey(taskID), data, r.ttl).Err()
}

func (r *jobCacheRepository) GetStatus(ctx context.Context, taskID string) (*JobStatusEntry, error) {
	data, err := r.rdb.Get(ctx, jobStatusKey(taskID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry JobStatusEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *jobCacheRepository) DeleteStatus(ctx context.Context, taskID string) error {
	return r.rdb.Del(ctx, jobStatusKey(taskID), jobCancelKey(taskID)).Err()
}

// 取消标记和状态条目同寿命，管道不负责清理，靠 TTL 过期
func (r *jobCacheRepository) MarkCancelled(ctx context.Context, taskID string) error {
	return r.rdb.Set(ctx, jobCancelKey(taskID), "1", r.ttl).Err()
}

func (r *jobCacheRepository) IsCancelled(ctx context.Context, taskID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, jobCancelKey(taskID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
