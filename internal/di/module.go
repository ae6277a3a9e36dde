package di

import (
	"github.com/kairos-ev/ordertrack/internal/adapter/notify"
	"github.com/kairos-ev/ordertrack/internal/app"
	"github.com/kairos-ev/ordertrack/internal/config"
	"github.com/kairos-ev/ordertrack/internal/logger"
	"github.com/kairos-ev/ordertrack/internal/pkg/auth"
	"github.com/kairos-ev/ordertrack/internal/server/http/router"
	"github.com/kairos-ev/ordertrack/internal/storage/postgres"
	"github.com/kairos-ev/ordertrack/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
