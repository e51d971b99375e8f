package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/config"
	"github.com/rocketscienceinc/matchsync/internal/content"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/repository"
	"github.com/rocketscienceinc/matchsync/internal/repository/storage"
	"github.com/rocketscienceinc/matchsync/internal/scheduler"
	"github.com/rocketscienceinc/matchsync/internal/service"
	"github.com/rocketscienceinc/matchsync/internal/usecase"
	"github.com/rocketscienceinc/matchsync/transport/rest"
)

const shutdownTimeout = 10 * time.Second

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrSecretNotFound = errors.New("jwt secret key is empty")
)

// RunApp - runs the reference peer.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.JWT.SecretKey == "" {
		return ErrSecretNotFound
	}

	location, err := conf.Match.Location()
	if err != nil {
		return err
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	db, err := storage.NewPostgres(ctx, conf.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err = storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("could not migrate postgres: %w", err)
	}

	contents, err := newContentProvider(ctx, logger, conf.Content)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()

	matchRepo := repository.NewMatchRepository(redisStorage)
	rewardRepo := repository.NewRewardRepository(db)
	features := feature.NewRegistry(FeatureOverrides(conf.Features))
	matchUseCase := usecase.NewMatchService(logger, matchRepo, rewardRepo, contents, features, clock, location)
	authService := service.NewAuthService(conf.JWT.SecretKey, conf.JWT.TTL, clock)

	sweeper, err := scheduler.NewSweeper(logger, matchRepo, clock, location)
	if err != nil {
		return err
	}

	if err = sweeper.Start(ctx); err != nil {
		return err
	}

	defer func() {
		if err = sweeper.Shutdown(); err != nil {
			log.Error("could not stop sweeper", "error", err)
		}
	}()

	server := rest.NewServer(logger, matchUseCase, features, authService, conf.JWT.IssueTokens)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func newContentProvider(ctx context.Context, logger *slog.Logger, conf config.Content) (content.Provider, error) {
	if conf.Bucket == "" {
		return content.NewStatic(), nil
	}

	provider, err := content.NewS3(ctx, logger, content.S3Options{
		Bucket:          conf.Bucket,
		Prefix:          conf.Prefix,
		Endpoint:        conf.Endpoint,
		Region:          conf.Region,
		AccessKeyID:     conf.AccessKeyID,
		SecretAccessKey: conf.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create content provider: %w", err)
	}

	return provider, nil
}

// FeatureOverrides converts the configured feature rules for the registry.
func FeatureOverrides(settings map[string]config.FeatureSettings) map[string]feature.Override {
	overrides := make(map[string]feature.Override, len(settings))
	for key, value := range settings {
		overrides[key] = feature.Override{
			TurnThreshold: value.TurnThreshold,
			HintBudget:    value.HintBudget,
			RewardAmount:  value.RewardAmount,
			MinPathLength: value.MinPathLength,
		}
	}

	return overrides
}
