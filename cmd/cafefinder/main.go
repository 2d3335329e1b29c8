package main

import (
	"context"
	"log/slog"
	"os"

	"cafefinder/config"
	"cafefinder/internal/delivery"
	"cafefinder/internal/delivery/api"
	"cafefinder/internal/delivery/api/router/handler"
	"cafefinder/internal/delivery/ws"
	"cafefinder/internal/infra/dataset"
	logs "cafefinder/internal/infra/log"
	"cafefinder/internal/infra/overpass"
	"cafefinder/internal/infra/persistence"
	"cafefinder/internal/session"
	"cafefinder/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectSession(),
		injectDelivery(),
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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			overpass.NewRepository,
			dataset.New,
			persistence.NewPreferenceRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCafeService,
			impl.NewPreferenceService,
		),
	)
}

func injectSession() fx.Option {
	return fx.Options(
		fx.Provide(
			session.NewFactory,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCafeHandler,
			handler.NewPreferenceHandler,
			ws.NewHandler,
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
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
