//go:build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"cayyap-notifier/internal/adapter/logging"
	"cayyap-notifier/internal/adapter/metrics"
	"cayyap-notifier/internal/app"
	"cayyap-notifier/internal/config"
	"cayyap-notifier/internal/domain/ports"
	"cayyap-notifier/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideFirebaseApp,
		provideMessagingClient,
		provideFirestoreClient,
		provideMessenger,
		provideDirectory,
		provideRecorder,
		wire.Bind(new(ports.Observer), new(*metrics.Recorder)),
		wire.Bind(new(ports.StatsSource), new(*metrics.Recorder)),
		provideFormatter,
		providePayloadOptions,
		usecase.NewDispatcher,
		usecase.NewNotificationRelay,
		usecase.NewNewOrderFanOut,
		usecase.NewCustomerRequestRelay,
		provideCollections,
		usecase.NewRouter,
		wire.Bind(new(ports.EventHandler), new(*usecase.Router)),
		provideEventSources,
		provideReporter,
		usecase.NewDeliverySummary,
		provideHTTPServer,
		provideSchedule,
		app.New,
	)
	return nil, nil, nil
}
