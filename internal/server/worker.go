package server

import (
	"context"

	"prodhub/internal/queue"
	"prodhub/internal/task"
	"prodhub/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// WorkerServer 消费导入队列的后台 worker
type WorkerServer struct {
	srv        *asynq.Server
	mux        *asynq.ServeMux
	log        *log.Logger
	importTask *task.ProductImportTask
}

func NewWorkerServer(
	conf *viper.Viper,
	logger *log.Logger,
	importTask *task.ProductImportTask,
) *WorkerServer {
	queueName := conf.GetString("import.queue")
	if queueName == "" {
		queueName = "imports"
	}
	concurrency := conf.GetInt("import.concurrency")
	if concurrency <= 0 {
		concurrency = 4
	}

	srv := asynq.NewServer(
		queue.NewRedisClientOpt(conf),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queueName: 1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeProductImport, importTask.Handle)

	return &WorkerServer{
		srv:        srv,
		mux:        mux,
		log:        logger,
		importTask: importTask,
	}
}

func (w *WorkerServer) Start(ctx context.Context) error {
	w.log.Info("starting worker server")
	return w.srv.Run(w.mux)
}

func (w *WorkerServer) Stop(ctx context.Context) error {
	w.log.Info("stopping worker server")
	w.srv.Shutdown()
	return nil
}

// asynqLogger 把 asynq 内部日志桥接到 zap
type asynqLogger struct {
	l *zap.SugaredLogger
}

func newAsynqLogger(logger *log.Logger) *asynqLogger {
	return &asynqLogger{l: logger.Sugar()}
}

func (a *asynqLogger) Debug(args ...interface{}) { a.l.Debug(args...) }
func (a *asynqLogger) Info(args ...interface{})  { a.l.Info(args...) }
func (a *asynqLogger) Warn(args ...interface{})  { a.l.Warn(args...) }
func (a *asynqLogger) Error(args ...interface{}) { a.l.Error(args...) }
func (a *asynqLogger) Fatal(args ...interface{}) { a.l.Fatal(args...) }
