package router

import (
	"prodhub/internal/handler"
	"prodhub/pkg/log"

	"github.com/spf13/viper"
)

type RouterDeps struct {
	Logger           *log.Logger
	Config           *viper.Viper
	ProductHandler   *handler.ProductHandler
	ImportJobHandler *handler.ImportJobHandler
	WebhookHandler   *handler.WebhookHandler
}
