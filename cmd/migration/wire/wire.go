//go:build wireinject
// +build wireinject

package wire

import (
	"prodhub/internal/repository"
	"prodhub/internal/server"
	"prodhub/pkg/app"
	"prodhub/pkg/log"

	"github.com/google/wire"
	"github.com/spf13/viper"
)

var serverSet = wire.NewSet(
	server.NewMigrateServer,
)

// build App
func newApp(
	migrateServer *server.MigrateServer,
) *app.App {
	return app.NewApp(
		app.WithServer(migrateServer),
		app.WithName("prodhub-migration"),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		repository.NewDB,
		serverSet,
		newApp,
	))
}
