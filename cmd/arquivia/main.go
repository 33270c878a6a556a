package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/adapters/cli"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/bootstrap"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/config"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/observability/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	logger := logging.NewJSONLogger("arquivia-cli", cfg.LogLevel, logging.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "erro de configuração:", err)
		return cli.ExitValidation
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		fmt.Fprintln(os.Stderr, "erro:", err)
		return cli.ExitFailure
	}
	defer app.Close()

	code := cli.New(app.Services, os.Stdout, os.Stderr, cfg.OutputFormat).Run(ctx, os.Args[1:])
	app.PushMetrics(context.Background())
	return code
}
