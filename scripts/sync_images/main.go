// Command sync_images registers every image file in the public directory
// that is not in portfolio_items yet.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/imagesync"
	"github.com/garnizeh/portfolio/internal/logger"
	"github.com/garnizeh/portfolio/internal/repository/sqldb"
)

type options struct {
	config.Options
	Dir    string `long:"dir" description:"Directory to scan (default: public_dir from config)"`
	DryRun bool   `long:"dry-run" description:"Report new images without inserting them"`
}

func main() {
	var opts options
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

	dir := opts.Dir
	if dir == "" {
		dir = cfg.PublicDir
	}

	pool := db.NewPool(cfg.Database, log)
	defer pool.Close()

	repo := sqldb.New(pool, log)
	syncer := imagesync.New(repo, dir, imagesync.WithDryRun(opts.DryRun), imagesync.WithLogger(log))

	res, err := syncer.Run(context.Background())
	if err != nil {
		log.Error("image sync failed", slog.Any("err", err))
		pool.Close()
		os.Exit(1)
	}
	log.Info("image sync finished",
		slog.Int("found", res.Found),
		slog.Int("added", len(res.Added)),
		slog.Int("skipped", res.Skipped),
		slog.Bool("dry_run", res.DryRun),
	)
}
