package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	v1 "prodhub/api/v1"
	"prodhub/internal/model"
	"prodhub/internal/queue"
	"prodhub/internal/repository"
	"prodhub/internal/task"
	"prodhub/pkg/log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type ImportService interface {
	// UploadCSV 落盘 + 表头校验 + 建任务记录 + 入队，校验不过不入队
	UploadCSV(ctx context.Context, fileName string, src io.Reader) (*v1.UploadCSVResponseData, error)
	// GetJobStatus 状态读取：缓存优先，miss 回落数据库
	GetJobStatus(ctx context.Context, id string) (*v1.ImportJobStatus, error)
	ListJobs(ctx context.Context, limit int) (*v1.ListImportJobsResponseData, error)
	// CancelJob 打取消标记并尽力撤销排队中的任务
	CancelJob(ctx context.Context, id string) error
	// DeleteJob 删除任务记录并清理其缓存条目
	DeleteJob(ctx context.Context, id string) error
}

func NewImportService(
	service *Service,
	conf *viper.Viper,
	jobRepo repository.ImportJobRepository,
	cacheRepo repository.JobCacheRepository,
	taskQueue queue.TaskQueue,
	logger *log.Logger,
) ImportService {
	uploadDir := conf.GetString("upload.dir")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &importService{
		Service:   service,
		jobRepo:   jobRepo,
		cacheRepo: cacheRepo,
		taskQueue: taskQueue,
		logger:    logger,
		uploadDir: uploadDir,
	}
}

type importService struct {
	*Service
	jobRepo   repository.ImportJobRepository
	cacheRepo repository.JobCacheRepository
	taskQueue queue.TaskQueue
	logger    *log.Logger
	uploadDir string
}

func (s *importService) UploadCSV(ctx context.Context, fileName string, src io.Reader) (*v1.UploadCSVResponseData, error) {
	if fileName == "" {
		return nil, v1.ErrFileNameRequired
	}

	// 1. 流式落盘，1MiB 分块，避免整个文件进内存
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.WithContext(ctx).Error("failed to create upload dir", zap.Error(err))
		return nil, v1.ErrFileSaveFailed
	}
	safeName := strings.ReplaceAll(fileName, " ", "_")
	filePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), safeName))

	dst, err := os.Create(filePath)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to create upload file", zap.Error(err))
		return nil, v1.ErrFileSaveFailed
	}
	_, err = io.CopyBuffer(dst, src, make([]byte, 1<<20))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filePath)
		s.logger.WithContext(ctx).Error("failed to save upload file", zap.Error(err))
		return nil, v1.ErrFileSaveFailed
	}

	// 2. 入队前校验表头，不合法的文件不启动后台任务
	missing, err := task.ValidateCSVHeader(filePath)
	if err != nil || len(missing) > 0 {
		_ = os.Remove(filePath)
		if err != nil {
			s.logger.WithContext(ctx).Warn("unreadable csv upload", zap.String("file_name", fileName), zap.Error(err))
			return nil, fmt.Errorf("%s: unreadable file", v1.ErrInvalidCSVFormat.Error())
		}
		return nil, fmt.Errorf("%s: missing required columns: %s", v1.ErrInvalidCSVFormat.Error(), strings.Join(missing, ", "))
	}

	// 3. 生成队列任务 ID，先建 pending 任务记录再入队
	taskID, err := s.sid.GenString()
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to generate task id", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	job := &model.ImportJob{
		Id:       uuid.New(),
		TaskID:   taskID,
		Status:   model.ImportJobStatusPending,
		Progress: 0,
		FileName: fileName,
		FilePath: filePath,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		_ = os.Remove(filePath)
		s.logger.WithContext(ctx).Error("failed to create import job", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}

	// 4. 预热缓存里的初始状态，读路径立刻可见
	if err := s.cacheRepo.CacheStatus(ctx, taskID, &repository.JobStatusEntry{
		Status:   model.ImportJobStatusPending,
		Progress: 0,
	}); err != nil {
		s.logger.WithContext(ctx).Warn("failed to seed job status cache", zap.Error(err))
	}

	// 5. 入队失败回滚任务记录，避免留下永远 pending 的僵尸行
	if err := s.taskQueue.EnqueueImport(ctx, taskID, filePath); err != nil {
		s.logger.WithContext(ctx).Error("failed to enqueue import task", zap.Error(err))
		_ = s.jobRepo.Delete(ctx, job.Id)
		_ = s.cacheRepo.DeleteStatus(ctx, taskID)
		_ = os.Remove(filePath)
		return nil, v1.ErrEnqueueFailed
	}

	return &v1.UploadCSVResponseData{
		JobID:  job.Id.String(),
		TaskID: taskID,
	}, nil
}

// resolveJob id 可以是任务记录 UUID，也可以是队列任务 ID
func (s *importService) resolveJob(ctx context.Context, id string) (*model.ImportJob, error) {
	if jobID, err := uuid.Parse(id); err == nil {
		return s.jobRepo.GetByID(ctx, jobID)
	}
	return s.jobRepo.GetByTaskID(ctx, id)
}

func (s *importService) GetJobStatus(ctx context.Context, id string) (*v1.ImportJobStatus, error) {
	// 快路径：缓存投影（按队列任务 ID 键入）
	entry, err := s.cacheRepo.GetStatus(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Warn("job status cache read failed", zap.String("id", id), zap.Error(err))
	}
	if entry != nil {
		return &v1.ImportJobStatus{
			JobID:         id,
			TaskID:        id,
			Status:        entry.Status,
			Progress:      entry.Progress,
			TotalRows:     entry.TotalRows,
			ProcessedRows: entry.ProcessedRows,
			ErrorMessage:  entry.ErrorMessage,
			ETASeconds:    entry.ETASeconds,
		}, nil
	}

	// 慢路径：数据库记录（source of truth）
	job, err := s.resolveJob(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get import job", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if job == nil {
		return nil, v1.ErrJobNotFound
	}
	return jobToStatus(job), nil
}

func (s *importService) ListJobs(ctx context.Context, limit int) (*v1.ListImportJobsResponseData, error) {
	if limit < 1 {
		limit = 20
	}
	jobs, err := s.jobRepo.List(ctx, limit)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to list import jobs", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	list := make([]v1.ImportJobStatus, 0, len(jobs))
	for _, job := range jobs {
		list = append(list, *jobToStatus(job))
	}
	return &v1.ListImportJobsResponseData{
		Total: len(list),
		List:  list,
	}, nil
}

func (s *importService) CancelJob(ctx context.Context, id string) error {
	job, err := s.resolveJob(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get import job", zap.Error(err))
		return v1.ErrInternalServerError
	}
	if job == nil {
		return v1.ErrJobNotFound
	}
	if model.IsTerminalStatus(job.Status) {
		return v1.ErrJobFinished
	}

	// 取消标记是运行中管道观察到的唯一取消信号
	if err := s.cacheRepo.MarkCancelled(ctx, job.TaskID); err != nil {
		s.logger.WithContext(ctx).Error("failed to mark job cancelled", zap.Error(err))
		return v1.ErrInternalServerError
	}
	// 排队中的任务尽力撤销，运行中的任务靠批次边界轮询收敛
	if err := s.taskQueue.Revoke(ctx, job.TaskID); err != nil {
		s.logger.WithContext(ctx).Warn("failed to revoke queued task", zap.String("task_id", job.TaskID), zap.Error(err))
	}

	// 还没开跑的任务直接落 failed 终态，不用等 worker
	if job.Status == model.ImportJobStatusPending {
		msg := task.CancelMessage
		if err := s.jobRepo.UpdateProgress(ctx, job.TaskID, model.ImportJobStatusFailed, 0, nil, nil, &msg); err != nil {
			s.logger.WithContext(ctx).Error("failed to mark pending job failed", zap.Error(err))
			return v1.ErrInternalServerError
		}
		if err := s.cacheRepo.CacheStatus(ctx, job.TaskID, &repository.JobStatusEntry{
			Status:       model.ImportJobStatusFailed,
			Progress:     0,
			ErrorMessage: msg,
		}); err != nil {
			s.logger.WithContext(ctx).Warn("failed to cache cancelled status", zap.Error(err))
		}
	}

	s.logger.WithContext(ctx).Info("import job cancellation requested",
		zap.String("job_id", job.Id.String()),
		zap.String("task_id", job.TaskID),
		zap.String("status", job.Status))
	return nil
}

func (s *importService) DeleteJob(ctx context.Context, id string) error {
	job, err := s.resolveJob(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get import job", zap.Error(err))
		return v1.ErrInternalServerError
	}
	if job == nil {
		return v1.ErrJobNotFound
	}

	if err := s.jobRepo.Delete(ctx, job.Id); err != nil {
		s.logger.WithContext(ctx).Error("failed to delete import job", zap.Error(err))
		return v1.ErrInternalServerError
	}
	// 缓存条目（状态投影 + 取消标记）一并清掉
	if err := s.cacheRepo.DeleteStatus(ctx, job.TaskID); err != nil {
		s.logger.WithContext(ctx).Warn("failed to delete cached job status", zap.Error(err))
	}
	return nil
}

func jobToStatus(job *model.ImportJob) *v1.ImportJobStatus {
	return &v1.ImportJobStatus{
		JobID:         job.Id.String(),
		TaskID:        job.TaskID,
		Status:        job.Status,
		Progress:      job.Progress,
		TotalRows:     job.TotalRows,
		ProcessedRows: job.ProcessedRows,
		ErrorMessage:  job.ErrorMessage,
		FileName:      job.FileName,
		CreatedAt:     job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     job.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
