// Package cmd boots the task bot: configuration, logging, database,
// dialogue engine, metrics listener and the Telegram runtime.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/m3rciful/taskbot/internal/bot"
	"github.com/m3rciful/taskbot/internal/config"
	"github.com/m3rciful/taskbot/internal/database"
	"github.com/m3rciful/taskbot/internal/dialog"
	"github.com/m3rciful/taskbot/internal/logger"
	"github.com/m3rciful/taskbot/internal/observability"
	"github.com/m3rciful/taskbot/internal/session"
	"github.com/m3rciful/taskbot/internal/tasks"
	tg "github.com/m3rciful/taskbot/internal/telegram"
)

// Options describe where configuration comes from.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string
}

// Run loads configuration and runs the bot until SIGINT/SIGTERM.
func Run(opts Options) error {
	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		return fmt.Errorf("cmd: config path not provided via %s or DefaultConfigPath", env)
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("cmd: logger init failed: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("cmd: database initialization failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("cmd: migrations failed: %w", err)
	}

	store := tasks.NewPostgresStore(db)
	service := tasks.NewService(store)
	sessions := session.NewMemoryStore()
	engine := dialog.NewEngine(service, sessions)

	var metrics *observability.Metrics
	metricsSrv := observability.NewServer(cfg.Metrics.Listen)
	if metricsSrv != nil {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	app := bot.New(cfg, engine, sessions, metrics)
	runOpts := app.RunOptions()

	startedAt := time.Now()
	prevStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt tg.Runtime) error {
		if prevStart != nil {
			if err := prevStart(ctx, rt); err != nil {
				return err
			}
		}
		metricsSrv.Start()
		logger.L.With("component", "app").Info("app ready",
			slog.String("event", "ready"),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}
	runOpts.OnStop = func(ctx context.Context, _ tg.Runtime) error {
		logger.L.With("component", "app").Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return tg.RunTelegram(ctx, runOpts)
}
