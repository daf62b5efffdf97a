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
	Out string `short:"o" long:"out" description:"Backup file (default: database file + .bak)"`
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

	dst, err := db.BackupFile(cfg.Database, opts.Out)
	if err != nil {
		log.Error("backup failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("database backup completed", slog.String("file", dst))
}
