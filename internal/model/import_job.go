package model

import (
	"time"

	"github.com/google/uuid"
)

// ImportJob CSV 导入任务（一次上传对应一行）
type ImportJob struct {
	Id uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`

	// 队列任务 ID，关联后台任务和缓存中的状态条目
	TaskID string `json:"task_id" gorm:"column:task_id;size:255;not null;uniqueIndex"`

	// 状态机：pending -> processing -> completed/failed，只允许前向迁移
	Status   string `json:"status" gorm:"column:status;size:50;not null;default:'pending';index"`
	Progress int    `json:"progress" gorm:"column:progress;not null;default:0"`

	// total_rows 预扫描后才有值；processed_rows 统计实际写入的行数
	TotalRows     *int `json:"total_rows" gorm:"column:total_rows"`
	ProcessedRows int  `json:"processed_rows" gorm:"column:processed_rows;not null;default:0"`

	// 只在 failed 终态写入
	ErrorMessage string `json:"error_message" gorm:"column:error_message;type:text"`

	// 展示用元信息，不参与算法
	FileName string `json:"file_name" gorm:"column:file_name;size:255"`
	FilePath string `json:"file_path" gorm:"column:file_path;size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

// ImportJobStatus 任务状态常量
const (
	ImportJobStatusPending    = "pending"
	ImportJobStatusProcessing = "processing"
	ImportJobStatusCompleted  = "completed"
	ImportJobStatusFailed     = "failed"
)

// IsTerminalStatus 终态后不再发生状态迁移
func IsTerminalStatus(status string) bool {
	return status == ImportJobStatusCompleted || status == ImportJobStatusFailed
}
