package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listacomparativa/internal/config"
	"listacomparativa/internal/infra"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/router"
	"listacomparativa/internal/service"
	"listacomparativa/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           Lista Comparativa API
// @version         1.0
// @description     Comparación de precios de proveedores, inventario y órdenes de compra.
// @BasePath        /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background workers: PDF rendering + supplier email for confirmed
	// purchase orders, retry cron for failed sends, suggestion rebuild.
	// Wired here (composition root) so the pool has full access to all
	// infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	ordenRepo := repository.NewOrdenRepository(db)

	handlers := worker.Handlers{
		Orden: worker.NewOrdenWorker(ordenRepo, dispatcher, smtpCB, cfg.PDFStoragePath),
		Email: worker.NewEmailWorker(mailer, smtpCB),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		OrdenRepo:  ordenRepo,
		Dispatcher: dispatcher,
		CB:         smtpCB,
		RDB:        rdb,
	})

	inventarioSvc := service.NewInventarioService(
		repository.NewInventarioRepository(db),
		repository.NewProductoRepository(db),
		repository.NewAnalisisRepository(db),
		repository.NewSugerenciaRepository(db),
	)
	worker.StartSugerenciaCron(ctx, inventarioSvc)

	r := router.New(cfg, db, rdb, dispatcher, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("lista comparativa backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
