package db

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/logger"
)

// pingTimeout bounds the liveness check of the cached handle.
const pingTimeout = 5 * time.Second

type openFunc func(ctx context.Context, driver, dsn string, l *slog.Logger) (*DB, error)

// Pool owns the process-wide database handle. It hands out the same *DB
// while that handle still answers a ping and reopens it otherwise. The
// mutex guards the cached handle only; pings run without it.
type Pool struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger
	open   openFunc

	mu     sync.Mutex
	db     *DB
	opens  int
	reuses int
}

// PoolStats counts how Connect calls were served.
type PoolStats struct {
	Opens  int
	Reuses int
}

func NewPool(cfg config.DatabaseConfig, l *slog.Logger) *Pool {
	if l == nil {
		l = logger.Discard()
	}
	return &Pool{cfg: cfg, logger: l, open: New}
}

// Connect returns an open handle. A missing server fails with
// *ConfigurationError before any connection attempt; a failed open fails
// with *ConnectionError. A cancelled ctx returns ctx.Err() and leaves the
// cached handle in place for other callers.
func (p *Pool) Connect(ctx context.Context) (*DB, error) {
	if p.cfg.Server == "" {
		p.logger.Error("database configuration incomplete",
			slog.Bool("DB_USER", p.cfg.User != ""),
			slog.Bool("DB_SERVER", false),
			slog.Bool("DB_NAME", p.cfg.Name != ""),
		)
		return nil, &ConfigurationError{Key: "DB_SERVER"}
	}

	// A caller that already gave up must not judge the shared handle.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	cached := p.db
	p.mu.Unlock()

	if cached != nil {
		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pingTimeout)
		err := cached.Ping(pingCtx)
		cancel()
		if err == nil {
			p.mu.Lock()
			p.reuses++
			p.mu.Unlock()
			p.logger.Debug("reusing existing database connection")
			return cached, nil
		}
		p.logger.Warn("cached database connection is no longer usable, reconnecting", slog.Any("err", err))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		if p.db != cached {
			// replaced by a concurrent Connect while we were pinging
			p.reuses++
			return p.db, nil
		}
		_ = p.db.Close()
		p.db = nil
	}

	dsn, err := DSN(p.cfg)
	if err != nil {
		return nil, &ConnectionError{Server: p.cfg.Server, Err: err}
	}

	p.logger.Info("connecting to database", slog.String("driver", p.cfg.Driver), slog.String("server", p.cfg.Server))
	d, err := p.open(ctx, p.cfg.Driver, dsn, p.logger)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Error("database connection failed", slog.Any("err", err))
		return nil, &ConnectionError{Server: p.cfg.Server, Err: err}
	}
	if d.conn != nil {
		if p.cfg.MaxOpenConns > 0 {
			d.conn.SetMaxOpenConns(p.cfg.MaxOpenConns)
		}
		if p.cfg.ConnMaxIdleTime > 0 {
			d.conn.SetConnMaxIdleTime(p.cfg.ConnMaxIdleTime)
		}
	}

	p.db = d
	p.opens++
	p.logger.Info("connected to database")
	return d, nil
}

func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{Opens: p.opens, Reuses: p.reuses}
}

// Close releases the cached handle. A later Connect opens a new one.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// DSN builds the driver-specific data source name.
func DSN(cfg config.DatabaseConfig) (string, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return "", err
	}
	if dialect != Postgres {
		return cfg.Server, nil
	}

	host := cfg.Server
	if cfg.Port != "" {
		host = net.JoinHostPort(cfg.Server, cfg.Port)
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + cfg.Name,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", cfg.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
