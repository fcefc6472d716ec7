package job

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"prodhub/pkg/log"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// UploadCleanupJob 定期清理上传目录里过期的 CSV 文件
// 导入成功与否都不删除源文件（失败任务可以重新入队），只按时间兜底回收
type UploadCleanupJob struct {
	*Job
	dir    string
	maxAge time.Duration
}

func NewUploadCleanupJob(job *Job, conf *viper.Viper) *UploadCleanupJob {
	dir := conf.GetString("upload.dir")
	if dir == "" {
		dir = "uploads"
	}
	maxAgeHours := conf.GetInt("upload.max_age_hours")
	if maxAgeHours <= 0 {
		maxAgeHours = 24
	}
	return &UploadCleanupJob{
		Job:    job,
		dir:    dir,
		maxAge: time.Duration(maxAgeHours) * time.Hour,
	}
}

func (j *UploadCleanupJob) Run(ctx context.Context) error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		j.logger.WithContext(ctx).Error("read upload dir error", zap.Error(err))
		return err
	}

	deadline := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(deadline) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.WithContext(ctx).Warn("remove stale upload error",
				zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		j.logger.WithContext(ctx).Info("stale uploads removed", zap.Int("count", removed))
	}
	return nil
}
