// Command db_setup creates the portfolio tables and seeds them when empty.
// Every step runs even if an earlier one failed; the exit code is 1 when
// any step failed.
package main

import (
	"context"
	"log/slog"
	"os"

	dbfs "github.com/garnizeh/portfolio/db"
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
	os.Exit(run(opts))
}

func run(opts config.Options) int {
	cfg, err := opts.Load()
	if err != nil {
		slog.Error("config error", slog.Any("err", err))
		return 1
	}
	log := logger.New(cfg.Env)
	ctx := context.Background()

	pool := db.NewPool(cfg.Database, log)
	defer pool.Close()

	database, err := pool.Connect(ctx)
	if err != nil {
		log.Error("database setup aborted", slog.Any("err", err))
		return 1
	}

	repo := sqldb.New(sqldb.Static(database), log)
	m := seed.NewManager(repo, repo, dbfs.SeedFiles, log)

	report := db.RunSteps(ctx, database, m.SetupSteps(dbfs.Migrations))
	report.Log(log)
	if !report.OK() {
		return 1
	}
	log.Info("database setup completed")
	return 0
}
