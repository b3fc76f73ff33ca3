package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := godotenv.Load()

	cfg := config.Load()
	logger := newLogger(os.Stdout)
	reportEnvError(logger, envErr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("server setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}

func newLogger(out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "scorigami-service",
		Version: appVersion,
		Output:  out,
	})
}

// reportEnvError stays quiet when there is simply no .env file.
func reportEnvError(logger *slog.Logger, err error) {
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", slog.Any("err", err))
	}
}
