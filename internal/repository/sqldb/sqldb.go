package sqldb

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logger"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// Connector hands out an open database handle; *db.Pool implements it.
type Connector interface {
	Connect(ctx context.Context) (*db.DB, error)
}

// Static adapts an already open handle to a Connector.
func Static(d *db.DB) Connector {
	return staticConn{d: d}
}

type staticConn struct{ d *db.DB }

func (s staticConn) Connect(context.Context) (*db.DB, error) { return s.d, nil }

// Repo implements repository interfaces over a SQL database. Every call
// asks the connector for a handle, so a dropped connection is reopened on
// the next request.
type Repo struct {
	conn   Connector
	logger *slog.Logger
}

// Ensure Repo implements the public interfaces.
var _ repository.PortfolioRepo = (*Repo)(nil)
var _ repository.VideoRepo = (*Repo)(nil)
var _ repository.ProbeRepo = (*Repo)(nil)

func New(conn Connector, l *slog.Logger) *Repo {
	if l == nil {
		l = logger.Discard()
	}
	return &Repo{conn: conn, logger: l}
}

func queryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &db.QueryError{Op: op, Err: err}
}

func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func val(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
