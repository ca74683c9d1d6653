// reader-cli — демонстрационный клиент: поднимает весь стек
// (config -> TokenSource -> client -> viewstate.Store) и печатает
// списочную выдачу коллекции с применёнными локальными правками.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pribylovaa/go-reader-client/internal/client"
	"github.com/pribylovaa/go-reader-client/internal/config"
	"github.com/pribylovaa/go-reader-client/internal/models"
	"github.com/pribylovaa/go-reader-client/internal/viewstate"
	logctx "github.com/pribylovaa/go-reader-client/pkg/log"
)

func main() {
	var (
		configPath   string
		collectionID int64
		filterValue  string
		pages        int
		markReadID   int64
	)

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Int64Var(&collectionID, "collection", 0, "collection id (0 — first available)")
	flag.StringVar(&filterValue, "filter", "all", "article filter: all|unread|saved")
	flag.IntVar(&pages, "pages", 1, "number of pages to load")
	flag.Int64Var(&markReadID, "mark-read", 0, "mark the article read after listing (0 — off)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	filter, err := models.ParseFilter(filterValue)
	if err != nil {
		log.Error("bad_filter", slog.String("err", err.Error()))
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = logctx.Into(ctx, log)

	api, err := client.New(
		cfg.API.BaseURL,
		client.EnvTokenSource{Key: cfg.API.TokenEnv},
		client.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		log.Error("client_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if collectionID == 0 {
		collections, err := api.ListCollections(ctx)
		if err != nil {
			log.Error("list_collections_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		if len(collections) == 0 {
			log.Error("no_collections")
			os.Exit(1)
		}

		for _, c := range collections {
			fmt.Printf("collection %d\t%s\n", c.ID, c.Name)
		}
		collectionID = collections[0].ID
	}

	pageSize := cfg.Limits.PageSize
	if cfg.Limits.Max > 0 && pageSize > cfg.Limits.Max {
		pageSize = cfg.Limits.Max
	}

	store := viewstate.New(api, viewstate.WithPageSize(pageSize))
	store.SetFilter(filter)

	if err := store.FetchPage(ctx, collectionID, false); err != nil {
		log.Error("fetch_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	for i := 1; i < pages && store.Snapshot().HasMore; i++ {
		if err := store.LoadMore(ctx, collectionID); err != nil {
			log.Error("load_more_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	if markReadID != 0 {
		if err := store.MarkRead(ctx, markReadID); err != nil {
			log.Error("mark_read_failed", slog.String("err", err.Error()))
		}
	}

	printSnapshot(store.Snapshot(), collectionID)
}

func printSnapshot(snap viewstate.Snapshot, collectionID int64) {
	fmt.Printf("collection %d, filter %s: %d of %d loaded (has more: %v)\n",
		collectionID, snap.Filter, len(snap.Items), snap.Total, snap.HasMore)

	for _, item := range snap.Items {
		flags := ""
		if item.IsRead {
			flags += "R"
		}
		if item.IsSaved {
			flags += "S"
		}
		fmt.Printf("%6d  [%-2s] %s\n", item.ID, flags, item.Title)
	}

	if snap.Err != "" {
		fmt.Printf("error: %s\n", snap.Err)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "dev":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}
