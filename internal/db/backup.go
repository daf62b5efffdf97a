package db

import (
	"fmt"
	"io"
	"os"

	"github.com/garnizeh/portfolio/internal/config"
)

// BackupSuffix is appended to the database file name when no explicit
// backup path is given.
const BackupSuffix = ".bak"

// BackupFile copies the SQLite database file to dst (default: the file
// plus BackupSuffix) and returns the path written. Server databases are
// backed up with their own tooling.
func BackupFile(cfg config.DatabaseConfig, dst string) (string, error) {
	src, err := sqliteFile(cfg)
	if err != nil {
		return "", err
	}
	if dst == "" {
		dst = src + BackupSuffix
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("backup %s: %w", src, err)
	}
	return dst, nil
}

// RestoreFile replaces the SQLite database file with src (default: the
// file plus BackupSuffix).
func RestoreFile(cfg config.DatabaseConfig, src string) (string, error) {
	dst, err := sqliteFile(cfg)
	if err != nil {
		return "", err
	}
	if src == "" {
		src = dst + BackupSuffix
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("restore %s: %w", dst, err)
	}
	return src, nil
}

func sqliteFile(cfg config.DatabaseConfig) (string, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return "", err
	}
	if d != SQLite {
		return "", fmt.Errorf("file backup of %s databases: %w", d.Name(), ErrUnsupported)
	}
	if cfg.Server == "" {
		return "", &ConfigurationError{Key: "DB_SERVER"}
	}
	return cfg.Server, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
