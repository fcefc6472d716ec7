//go:build wireinject
// +build wireinject

package wire

import (
	"prodhub/internal/handler"
	"prodhub/internal/queue"
	"prodhub/internal/repository"
	"prodhub/internal/router"
	"prodhub/internal/server"
	"prodhub/internal/service"
	"prodhub/pkg/app"
	"prodhub/pkg/log"
	"prodhub/pkg/server/http"
	"prodhub/pkg/sid"
	"prodhub/pkg/webhook"

	"github.com/google/wire"
	"github.com/spf13/viper"
)

var repositorySet = wire.NewSet(
	repository.NewDB,
	repository.NewRedis,
	repository.NewRepository,
	repository.NewTransaction,
	repository.NewProductRepository,
	repository.NewImportJobRepository,
	repository.NewJobCacheRepository,
	repository.NewWebhookRepository,
)

var serviceSet = wire.NewSet(
	service.NewService,
	service.NewProductService,
	service.NewImportService,
	service.NewWebhookService,
)

var handlerSet = wire.NewSet(
	handler.NewHandler,
	handler.NewProductHandler,
	handler.NewImportJobHandler,
	handler.NewWebhookHandler,
)

var serverSet = wire.NewSet(
	server.NewHTTPServer,
)

// build App
func newApp(
	httpServer *http.Server,
) *app.App {
	return app.NewApp(
		app.WithServer(httpServer),
		app.WithName("prodhub-server"),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		repositorySet,
		serviceSet,
		handlerSet,
		serverSet,
		queue.NewTaskQueue,
		webhook.NewClient,
		wire.Struct(new(router.RouterDeps), "*"),
		sid.NewSid,
		newApp,
	))
}
