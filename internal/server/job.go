package server

import (
	"context"
	"time"

	"prodhub/internal/job"
	"prodhub/pkg/log"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// JobServer 托管周期性后台任务
type JobServer struct {
	log       *log.Logger
	scheduler *gocron.Scheduler
	cleanup   *job.UploadCleanupJob
}

func NewJobServer(
	logger *log.Logger,
	cleanup *job.UploadCleanupJob,
) *JobServer {
	return &JobServer{
		log:       logger,
		scheduler: gocron.NewScheduler(time.UTC),
		cleanup:   cleanup,
	}
}

func (j *JobServer) Start(ctx context.Context) error {
	j.log.Info("starting job server")
	_, err := j.scheduler.Every(1).Hour().Do(func() {
		if err := j.cleanup.Run(ctx); err != nil {
			j.log.Error("upload cleanup job error", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	j.scheduler.StartBlocking()
	return nil
}

func (j *JobServer) Stop(ctx context.Context) error {
	j.log.Info("stopping job server")
	j.scheduler.Stop()
	return nil
}
