//go:build wireinject
// +build wireinject

package wire

import (
	"prodhub/internal/job"
	"prodhub/internal/repository"
	"prodhub/internal/server"
	"prodhub/internal/task"
	"prodhub/pkg/app"
	"prodhub/pkg/log"
	"prodhub/pkg/webhook"

	"github.com/google/wire"
	"github.com/spf13/viper"
)

var repositorySet = wire.NewSet(
	repository.NewDB,
	repository.NewRedis,
	repository.NewRepository,
	repository.NewProductRepository,
	repository.NewImportJobRepository,
	repository.NewJobCacheRepository,
	repository.NewWebhookRepository,
)

var taskSet = wire.NewSet(
	task.NewProductImportTask,
)

var jobSet = wire.NewSet(
	job.NewJob,
	job.NewUploadCleanupJob,
)

var serverSet = wire.NewSet(
	server.NewWorkerServer,
	server.NewJobServer,
)

// build App
func newApp(
	workerServer *server.WorkerServer,
	jobServer *server.JobServer,
) *app.App {
	return app.NewApp(
		app.WithServer(workerServer, jobServer),
		app.WithName("prodhub-worker"),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		repositorySet,
		taskSet,
		jobSet,
		serverSet,
		webhook.NewClient,
		newApp,
	))
}
