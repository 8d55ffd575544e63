package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tasktrack/config"
	"tasktrack/internal/delivery"
	"tasktrack/internal/delivery/api"
	"tasktrack/internal/delivery/api/middleware"
	"tasktrack/internal/delivery/api/router/handler"
	"tasktrack/internal/infra/auth"
	logs "tasktrack/internal/infra/log"
	"tasktrack/internal/infra/persistence"
	"tasktrack/internal/usecase/impl"

	"github.com/common-nighthawk/go-figure"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewTaskService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewTaskHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	if params.Config.Env.Banner {
		printBanner(params.Config.Env.ServiceName)
	}

	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

func printBanner(name string) {
	if name == "" {
		name = "tasktrack"
	}
	figure.NewFigure(name, "cybermedium", true).Print()
	fmt.Println()
}
