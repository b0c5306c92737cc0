package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"artifai/internal/ai"
	"artifai/internal/config"
	"artifai/internal/platform/database"
	rabbitmqClient "artifai/internal/platform/rabbitmq"
	redisClient "artifai/internal/platform/redis"
)

type App struct {
	Config          *config.Config
	Logger          zerolog.Logger
	DB              *gorm.DB
	DatabaseBackend string
	Redis           *redis.Client
	MQConn          *amqp.Connection
	ImageClient     ai.ImageClient

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	if err := ensureSessionSecret(cfg, logger); err != nil {
		return nil, err
	}

	db, backend, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	logger.Info().Str("database", backend).Msg("database ready")

	app := &App{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		DatabaseBackend: backend,
		StartedAt:       time.Now(),
	}

	app.Redis, err = redisClient.New(ctx, cfg.Redis)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if app.Redis == nil {
		logger.Info().Msg("redis not configured, session revocation disabled")
	}

	app.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ImageEventQueue)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if app.MQConn == nil {
		logger.Info().Msg("rabbitmq not configured, image events disabled")
	}

	app.ImageClient, err = newImageClient(cfg.Image, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

// OpenDatabase connects using the configured URL and reports which backend
// it names.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, string, error) {
	url := cfg.DatabaseURL()
	db, err := database.Open(ctx, url)
	if err != nil {
		return nil, "", err
	}
	return db, database.DetectBackend(url), nil
}

// weakSessionSecrets never sign sessions: anyone reading the source or the
// sample config could forge a token with them.
var weakSessionSecrets = map[string]bool{
	"":                        true,
	"change-me-in-production": true,
	"changeme":                true,
	"secret":                  true,
}

// ensureSessionSecret refuses a missing or placeholder secret outside dev and
// test. In dev and test it substitutes a random per-process secret.
func ensureSessionSecret(cfg *config.Config, logger zerolog.Logger) error {
	if !weakSessionSecrets[strings.TrimSpace(cfg.Auth.SessionSecret)] {
		return nil
	}
	if !cfg.IsDevelopment() {
		return fmt.Errorf("SESSION_SECRET must be set when env is %q", cfg.App.Env)
	}
	cfg.Auth.SessionSecret = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	logger.Warn().Msg("SESSION_SECRET is not set, using a random secret; sessions end on restart")
	return nil
}

func newImageClient(cfg config.ImageConfig, logger zerolog.Logger) (ai.ImageClient, error) {
	switch cfg.Provider {
	case "fake":
		logger.Warn().Msg("using fake image provider")
		return ai.NewFakeImageClient(), nil
	case "", "openai":
		if cfg.APIKey == "" {
			logger.Warn().Msg("OPENAI_API_KEY is not set, image generation will fail")
		}
		return ai.NewOpenAICompatibleClient(ai.ImageConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		}, time.Duration(cfg.TimeoutSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Provider)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
