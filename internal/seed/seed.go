package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logger"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

const (
	portfolioSeed = "portfolio_items"
	videoSeed     = "featured_videos"
)

// Manager inserts the baseline rows into empty tables. Seed files live in
// seedFS as seed/<name>.json and are checked against seed/<name>.schema.json.
type Manager struct {
	portfolio repository.PortfolioRepo
	videos    repository.VideoRepo
	seedFS    fs.FS
	logger    *slog.Logger
}

func NewManager(pr repository.PortfolioRepo, vr repository.VideoRepo, seedFS fs.FS, l *slog.Logger) *Manager {
	if l == nil {
		l = logger.Discard()
	}
	return &Manager{portfolio: pr, videos: vr, seedFS: seedFS, logger: l}
}

func (m *Manager) PortfolioItems(ctx context.Context) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	if err := m.load(ctx, portfolioSeed, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed %s[%d]: %w", portfolioSeed, i, err)
		}
	}
	return items, nil
}

func (m *Manager) FeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error) {
	var videos []models.FeaturedVideo
	if err := m.load(ctx, videoSeed, &videos); err != nil {
		return nil, err
	}
	for i := range videos {
		if err := videos[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed %s[%d]: %w", videoSeed, i, err)
		}
	}
	return videos, nil
}

// SeedPortfolio inserts the portfolio seed when the table is empty and
// returns the number of rows inserted.
func (m *Manager) SeedPortfolio(ctx context.Context) (int, error) {
	count, err := m.portfolio.CountPortfolioItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count portfolio items: %w", err)
	}
	if count > 0 {
		m.logger.Info("portfolio items already present, skipping seed", slog.Int64("count", count))
		return 0, nil
	}

	items, err := m.PortfolioItems(ctx)
	if err != nil {
		return 0, err
	}
	m.logger.Info("seeding portfolio items", slog.Int("items", len(items)))
	for i := range items {
		if _, err := m.portfolio.CreatePortfolioItem(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("insert portfolio item %d: %w", i, err)
		}
	}
	return len(items), nil
}

// SeedVideos inserts the featured video seed when the table is empty.
func (m *Manager) SeedVideos(ctx context.Context) (int, error) {
	count, err := m.videos.CountFeaturedVideos(ctx)
	if err != nil {
		return 0, fmt.Errorf("count featured videos: %w", err)
	}
	if count > 0 {
		m.logger.Info("featured videos already present, skipping seed", slog.Int64("count", count))
		return 0, nil
	}

	videos, err := m.FeaturedVideos(ctx)
	if err != nil {
		return 0, err
	}
	m.logger.Info("seeding featured videos", slog.Int("videos", len(videos)))
	for i := range videos {
		if _, err := m.videos.CreateFeaturedVideo(ctx, &videos[i]); err != nil {
			return i, fmt.Errorf("insert featured video %d: %w", i, err)
		}
	}
	return len(videos), nil
}

// SetupSteps creates the schema and seeds both tables.
func (m *Manager) SetupSteps(migrationFS fs.FS) []db.Step {
	return []db.Step{
		{Name: "create schema", Run: func(ctx context.Context, d *db.DB) (string, error) {
			applied, err := db.Migrate(ctx, d, migrationFS)
			if err != nil {
				return "", err
			}
			if len(applied) == 0 {
				return "tables already exist", nil
			}
			return "applied " + strings.Join(applied, ", "), nil
		}},
		{Name: "seed portfolio items", Run: func(ctx context.Context, _ *db.DB) (string, error) {
			n, err := m.SeedPortfolio(ctx)
			return fmt.Sprintf("inserted %d", n), err
		}},
		{Name: "seed featured videos", Run: func(ctx context.Context, _ *db.DB) (string, error) {
			n, err := m.SeedVideos(ctx)
			return fmt.Sprintf("inserted %d", n), err
		}},
	}
}

func (m *Manager) load(ctx context.Context, name string, dst any) error {
	data, err := fs.ReadFile(m.seedFS, path.Join("seed", name+".json"))
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	schemaBytes, err := fs.ReadFile(m.seedFS, path.Join("seed", name+".schema.json"))
	if err != nil {
		return fmt.Errorf("read seed schema %s: %w", name, err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaBytes, rs); err != nil {
		return fmt.Errorf("compile seed schema %s: %w", name, err)
	}
	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("validate seed %s: %w", name, err)
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.Error())
		}
		return fmt.Errorf("seed %s does not match its schema: %s", name, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}
