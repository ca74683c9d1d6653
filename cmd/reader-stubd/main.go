package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-reader-client/internal/config"
	"github.com/pribylovaa/go-reader-client/internal/models"
	"github.com/pribylovaa/go-reader-client/internal/stubapi"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting reader-stubd", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	srv := stubapi.New(stubapi.Options{
		Logger: log,
		Token:  cfg.HTTP.Token,
	})
	seedDemo(srv)

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", srv.Router())

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("stub_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// seedDemo наполняет стаб демо-данными для локальной разработки.
func seedDemo(srv *stubapi.Server) {
	now := time.Now().UTC()

	mk := func(id int64, feedID int64, title string, age time.Duration) models.Article {
		pub := now.Add(-age)
		return models.Article{
			ID:          id,
			FeedID:      feedID,
			Title:       title,
			URL:         fmt.Sprintf("https://example.org/articles/%d", id),
			Summary:     "demo article",
			PublishedAt: &pub,
			CreatedAt:   pub,
		}
	}

	tech := make([]models.Article, 0, 45)
	for i := 0; i < 45; i++ {
		tech = append(tech, mk(int64(i+1), 1, fmt.Sprintf("Tech digest #%d", 45-i), time.Duration(i)*time.Hour))
	}

	srv.SeedCollection(models.Collection{
		ID: 1, Name: "Tech", Description: "Engineering feeds",
		CreatedAt: now, UpdatedAt: now,
	}, tech)

	srv.SeedCollection(models.Collection{
		ID: 2, Name: "World", Description: "General news",
		CreatedAt: now, UpdatedAt: now,
	}, []models.Article{
		mk(101, 2, "Morning briefing", time.Hour),
		mk(102, 2, "Evening briefing", 13*time.Hour),
	})
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
