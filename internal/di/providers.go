package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"cayyap-notifier/internal/adapter/cache"
	"cayyap-notifier/internal/adapter/discord"
	"cayyap-notifier/internal/adapter/fcm"
	fsadapter "cayyap-notifier/internal/adapter/firestore"
	"cayyap-notifier/internal/adapter/httpapi"
	"cayyap-notifier/internal/adapter/logging"
	"cayyap-notifier/internal/adapter/metrics"
	natsadapter "cayyap-notifier/internal/adapter/nats"
	"cayyap-notifier/internal/app"
	"cayyap-notifier/internal/config"
	"cayyap-notifier/internal/domain/ports"
	"cayyap-notifier/internal/usecase"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	fb, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase: %w", err)
	}
	return fb, nil
}

func provideMessagingClient(ctx context.Context, fb *firebase.App) (*messaging.Client, error) {
	client, err := fb.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging: %w", err)
	}
	return client, nil
}

func provideFirestoreClient(ctx context.Context, fb *firebase.App) (*gfs.Client, func(), error) {
	client, err := fb.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init firestore: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

func provideMessenger(cfg *config.Config, client *messaging.Client, logger ports.Logger) ports.Messenger {
	return fcm.New(client, cfg.RequestTimeout, logger)
}

func provideDirectory(ctx context.Context, cfg *config.Config, client *gfs.Client, logger ports.Logger) (ports.Directory, func(), error) {
	base := fsadapter.NewDirectory(client, cfg.UsersCollection, cfg.StaffRole, logger)
	if cfg.RedisAddr == "" {
		return base, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn(ctx, "redis unreachable, directory cache will miss until it recovers", "addr", cfg.RedisAddr, "error", err)
	}
	return cache.NewDirectory(base, rdb, cfg.DirectoryCacheTTL, logger), func() { _ = rdb.Close() }, nil
}

func provideRecorder() *metrics.Recorder {
	return metrics.NewRecorder(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func provideFormatter(cfg *config.Config) *usecase.Formatter {
	return usecase.NewFormatter(cfg.Locale)
}

func providePayloadOptions(cfg *config.Config) usecase.PayloadOptions {
	return usecase.PayloadOptions{ChannelID: cfg.AndroidChannelID}
}

func provideCollections(cfg *config.Config) usecase.Collections {
	return usecase.Collections{
		Notifications: cfg.NotificationsCollection,
		Orders:        cfg.OrdersCollection,
		Relations:     cfg.RelationsCollection,
	}
}

func provideEventSources(cfg *config.Config, client *gfs.Client, logger ports.Logger) ([]ports.EventSource, func(), error) {
	var sources []ports.EventSource
	cleanup := func() {}

	if cfg.FirestoreListen {
		sources = append(sources, fsadapter.NewListener(client, cfg.Collections(), logger))
	}
	if cfg.NATSURL != "" {
		sub, err := natsadapter.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix, cfg.Collections(), logger)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, sub)
		cleanup = sub.Close
	}
	return sources, cleanup, nil
}

func provideReporter(cfg *config.Config, logger ports.Logger) ports.Reporter {
	if cfg.DiscordWebhookURL == "" {
		return nil
	}
	return discord.NewWebhook(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger)
}

func provideHTTPServer(cfg *config.Config, handler ports.EventHandler, recorder *metrics.Recorder, logger ports.Logger) *http.Server {
	if cfg.HTTPAddr == "" {
		return nil
	}
	router := httpapi.NewRouter(handler, httpapi.Endpoints{
		Metrics: recorder.PromHandler(),
		Stats:   recorder.JSONHandler(),
	}, cfg.RequestTimeout, logger)
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func provideSchedule(cfg *config.Config) app.Schedule {
	return app.Schedule(cfg.SummaryCron)
}
