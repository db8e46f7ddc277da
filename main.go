package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"Radiant/internal/config"
	"Radiant/internal/repo"
)

var wg sync.WaitGroup

// openRepository picks Postgres when DATABASE_URL is set and the in-memory
// store otherwise.
func openRepository(ctx context.Context, cfg config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL is not set, accounts and scenarios are kept in memory")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("connected to postgres")
	return pg, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.TokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	store, closeStore, err := openRepository(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("open repository")
	}
	defer closeStore()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: NewHandler(cfg, store),
	}

	tls := cfg.Server.CertFile != "" && cfg.Server.KeyFile != ""
	log.WithFields(log.Fields{"addr": cfg.Server.Addr, "tls": tls}).Info("starting server")

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if tls {
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	wg.Wait()
	log.Info("server stopped")
}
