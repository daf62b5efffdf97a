package main

import (
	"log/slog"
	"os"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logger"
)

type options struct {
	config.Options
	From string `short:"f" long:"from" description:"Backup file to restore (default: database file + .bak)"`
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

	src, err := db.RestoreFile(cfg.Database, opts.From)
	if err != nil {
		log.Error("restore failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("database restore completed", slog.String("from", src))
}
