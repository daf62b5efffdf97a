package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
)

func TestBackupAndRestoreFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.db")
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Server: path}

	d, err := db.New(ctx, cfg.Driver, path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := d.Exec(ctx, `CREATE TABLE t (v TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO t (v) VALUES (?)`, "before"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	d.Close()

	backup, err := db.BackupFile(cfg, "")
	if err != nil {
		t.Fatalf("BackupFile: %v", err)
	}
	if backup != path+db.BackupSuffix {
		t.Fatalf("unexpected backup path %q", backup)
	}

	d, err = db.New(ctx, cfg.Driver, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := d.Exec(ctx, `UPDATE t SET v = ?`, "after"); err != nil {
		t.Fatalf("update: %v", err)
	}
	d.Close()

	if _, err := db.RestoreFile(cfg, ""); err != nil {
		t.Fatalf("RestoreFile: %v", err)
	}

	d, err = db.New(ctx, cfg.Driver, path, nil)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer d.Close()
	var v string
	if err := d.QueryRow(ctx, `SELECT v FROM t`).Scan(&v); err != nil || v != "before" {
		t.Fatalf("expected restored value, got %q, %v", v, err)
	}
}

func TestBackupFile_Unsupported(t *testing.T) {
	_, err := db.BackupFile(config.DatabaseConfig{Driver: config.DriverPostgres, Server: "db.local"}, "")
	if !errors.Is(err, db.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	_, err = db.RestoreFile(config.DatabaseConfig{Driver: config.DriverSQLite}, "")
	if !db.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
