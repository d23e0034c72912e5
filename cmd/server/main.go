package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/campus-sdk/internal/server"
	"github.com/iota-uz/campus-sdk/modules"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	publisher := eventbus.NewEventPublisher(log)
	app := application.New(pool, publisher, log)
	if err := application.Load(ctx, app, modules.BuiltInModules...); err != nil {
		log.WithError(err).Fatal("failed to load modules")
	}

	srv := server.Default(conf, app, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(app, conf.SocketAddress)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
