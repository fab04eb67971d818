package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JMURv/club-auth/internal/auth"
	"github.com/JMURv/club-auth/internal/auth/jwt"
	"github.com/JMURv/club-auth/internal/cache/redis"
	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/ctrl"
	hdl "github.com/JMURv/club-auth/internal/hdl/http"
	"github.com/JMURv/club-auth/internal/observability/metrics/prometheus"
	"github.com/JMURv/club-auth/internal/observability/tracing/jaeger"
	"github.com/JMURv/club-auth/internal/repo/db"
	"github.com/JMURv/club-auth/internal/smtp"
	"github.com/JMURv/club-auth/internal/worker"
	"go.uber.org/zap"
)

const configPath = "configs/.env"

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad(configPath)
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	au := jwt.New(conf)
	cache := redis.New(conf.Redis)
	repo := db.New(conf)
	svc := ctrl.New(
		au,
		auth.New(),
		repo,
		cache,
		smtp.New(conf),
		conf.Auth.RotateRefresh,
	)
	h := hdl.New(au, svc)

	go worker.New(repo, conf.Cleanup).Start(ctx)
	go h.Start(conf.Server.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := h.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing handler", zap.Error(err))
	}

	if err := cache.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis: ", zap.Error(err))
	}

	if err := repo.Close(); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}

	os.Exit(0)
}
