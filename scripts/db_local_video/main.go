// Command db_local_video upgrades featured_videos to hold locally served
// files and registers the local hero video.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logger"
	"github.com/garnizeh/portfolio/internal/repository/sqldb"
	"github.com/garnizeh/portfolio/internal/seed"
)

func main() {
	var opts config.Options
	ok, err := config.ParseFlags(&opts)
	if err != nil {
		os.Exit(2)
	}
	if !ok {
		return
	}

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("config error", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	ctx := context.Background()

	pool := db.NewPool(cfg.Database, log)
	database, err := pool.Connect(ctx)
	if err != nil {
		log.Error("local video upgrade aborted", slog.Any("err", err))
		os.Exit(1)
	}

	repo := sqldb.New(sqldb.Static(database), log)
	report := db.RunSteps(ctx, database, seed.LocalVideoSteps(repo))
	report.Log(log)
	pool.Close()

	if !report.OK() {
		os.Exit(1)
	}
}
