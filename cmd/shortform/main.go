// Command shortform запускает веб-форму сокращения ссылок.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/InQaaaaGit/shorten_form.git/internal/app"
	"github.com/InQaaaaGit/shorten_form.git/internal/buildinfo"
	"github.com/InQaaaaGit/shorten_form.git/internal/config"
	"github.com/InQaaaaGit/shorten_form.git/internal/logger"
	"go.uber.org/zap"
)

// Заполняются при сборке через -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := buildinfo.NewInfo(buildVersion, buildDate, buildCommit)
	info.Print(os.Stdout)

	// Логгер для ошибок до чтения конфигурации
	bootstrap, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		bootstrap.Fatal("Error loading config", zap.Error(err))
	}

	appLogger, cleanup, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		bootstrap.Fatal("Error initializing logger", zap.Error(err))
	}
	_ = bootstrap.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	appLogger.Info("Starting shortform", info.Fields()...)
	if err := run(ctx, cfg, appLogger); err != nil {
		stop()
		cleanup()
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
	stop()
	cleanup()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	application, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
