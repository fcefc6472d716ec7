package repository

import (
	"context"

	"prodhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportJobRepository interface {
	Create(ctx context.Context, job *model.ImportJob) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ImportJob, error)
	GetByTaskID(ctx context.Context, taskID string) (*model.ImportJob, error)
	List(ctx context.Context, limit int) ([]*model.ImportJob, error)
	UpdateProgress(ctx context.Context, taskID string, status string, progress int, totalRows *int, processedRows *int, errorMessage *string) error
}

func NewImportJobRepository(
	repository *Repository,
) ImportJobRepository {
	return &importJobRepository{
		Repository: repository,
	}
}

type importJobRepository struct {
	*Repository
}

func (r *importJobRepository) Create(ctx context.Context, job *model.ImportJob) error {
	return r.DB(ctx).Create(job).Error
}

func (r *importJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&model.ImportJob{}, "id = ?", id).Error
}

func (r *importJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ImportJob, error) {
	var job model.ImportJob
	err := r.DB(ctx).Where("id = ?", id).First(&job).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepository) GetByTaskID(ctx context.Context, taskID string) (*model.ImportJob, error) {
	var job model.ImportJob
	err := r.DB(ctx).Where("task_id = ?", taskID).First(&job).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepository) List(ctx context.Context, limit int) ([]*model.ImportJob, error) {
	var jobs []*model.ImportJob
	err := r.DB(ctx).Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateProgress 按 task_id 原子更新任务进度，可选字段为 nil 时不覆盖
func (r *importJobRepository) UpdateProgress(ctx context.Context, taskID string, status string, progress int, totalRows *int, processedRows *int, errorMessage *string) error {
	updates := map[string]interface{}{
		"status":   status,
		"progress": progress,
	}
	if totalRows != nil {
		updates["total_rows"] = *totalRows
	}
	if processedRows != nil {
		updates["processed_rows"] = *processedRows
	}
	if errorMessage != nil {
		updates["error_message"] = *errorMessage
	}
	return r.DB(ctx).Model(&model.ImportJob{}).
		Where("task_id = ?", taskID).
		Updates(updates).Error
}
