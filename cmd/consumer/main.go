package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/urlnorm/internal/container"
	"github.com/serroba/urlnorm/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	injector := do.New()
	do.ProvideValue(injector, optionsFromEnv())
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	if err := run(injector, logger); err != nil {
		logger.Fatal("consumer failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

// run starts the consumer group and blocks until SIGINT or SIGTERM.
func run(injector *do.Injector, logger *zap.Logger) error {
	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := group.Start(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()

	return group.Shutdown()
}

func optionsFromEnv() *container.Options {
	return &container.Options{
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}
