package sqldb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dbfs "github.com/garnizeh/portfolio/db"
	"github.com/garnizeh/portfolio/internal/config"
	dbpkg "github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/repository/sqldb"
	"github.com/garnizeh/portfolio/pkg/models"
)

func setupRepo(t *testing.T) (*sqldb.Repo, *dbpkg.DB) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "portfolio.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if _, err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return sqldb.New(sqldb.Static(d), nil), d
}

func TestPortfolioItems(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	items, err := repo.ListPortfolioItems(ctx)
	if err != nil {
		t.Fatalf("ListPortfolioItems on empty table: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}

	if _, err := repo.CreatePortfolioItem(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil item")
	}

	first := &models.PortfolioItem{Type: models.ItemTypeImage, Src: models.String("/b.jpg"), Alt: models.String("b")}
	second := &models.PortfolioItem{Type: models.ItemTypeVideoLink, VideoURL: models.String("https://vimeo.com/1"), Thumbnail: models.String("/t.jpg")}
	for _, p := range []*models.PortfolioItem{first, second} {
		id, err := repo.CreatePortfolioItem(ctx, p)
		if err != nil {
			t.Fatalf("CreatePortfolioItem: %v", err)
		}
		if id == 0 || p.ID != id {
			t.Fatalf("expected id to be assigned, got %d (item %d)", id, p.ID)
		}
	}

	items, err = repo.ListPortfolioItems(ctx)
	if err != nil {
		t.Fatalf("ListPortfolioItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("expected insertion order, got %d then %d", items[0].ID, items[1].ID)
	}
	if items[1].Src != nil || items[1].VideoURL == nil || *items[1].VideoURL != "https://vimeo.com/1" {
		t.Fatalf("unexpected video-link item: %#v", items[1])
	}

	cnt, err := repo.CountPortfolioItems(ctx)
	if err != nil || cnt != 2 {
		t.Fatalf("CountPortfolioItems: got %d, %v", cnt, err)
	}

	srcs, err := repo.ListImageSources(ctx)
	if err != nil {
		t.Fatalf("ListImageSources: %v", err)
	}
	if len(srcs) != 1 || srcs[0] != "/b.jpg" {
		t.Fatalf("expected only the image src, got %v", srcs)
	}
}

func TestFeaturedVideos(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	videos, err := repo.ListFeaturedVideos(ctx)
	if err != nil || videos == nil || len(videos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v, %v", videos, err)
	}

	got, err := repo.GetFeaturedVideoBySrc(ctx, "/missing.mp4")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing src, got %#v, %v", got, err)
	}

	hosted := &models.FeaturedVideo{VimeoID: models.String("1126062368"), Type: models.VideoTypeRegular}
	local := &models.FeaturedVideo{Src: models.String("/Video principal.mp4"), Type: models.VideoTypeLocal}
	for _, v := range []*models.FeaturedVideo{hosted, local} {
		if _, err := repo.CreateFeaturedVideo(ctx, v); err != nil {
			t.Fatalf("CreateFeaturedVideo: %v", err)
		}
	}

	videos, err = repo.ListFeaturedVideos(ctx)
	if err != nil {
		t.Fatalf("ListFeaturedVideos: %v", err)
	}
	if len(videos) != 2 || videos[0].VimeoID == nil || videos[1].VimeoID != nil {
		t.Fatalf("unexpected videos: %#v", videos)
	}

	got, err = repo.GetFeaturedVideoBySrc(ctx, "/Video principal.mp4")
	if err != nil || got == nil || got.ID != local.ID {
		t.Fatalf("GetFeaturedVideoBySrc: got %#v, %v", got, err)
	}

	cnt, err := repo.CountFeaturedVideos(ctx)
	if err != nil || cnt != 2 {
		t.Fatalf("CountFeaturedVideos: got %d, %v", cnt, err)
	}
}

func TestProbe(t *testing.T) {
	repo, _ := setupRepo(t)

	rows, err := repo.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if n, ok := rows[0]["number"].(int64); !ok || n != 1 {
		t.Fatalf("expected number=1, got %#v", rows[0])
	}
}

func TestQueryErrorWhenTableDropped(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, `DROP TABLE featured_videos`); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := repo.ListFeaturedVideos(ctx)
	var qe *dbpkg.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %T: %v", err, err)
	}
}

type failingConnector struct{ err error }

func (f failingConnector) Connect(context.Context) (*dbpkg.DB, error) { return nil, f.err }

func TestConnectorErrorPassesThrough(t *testing.T) {
	cfgErr := &dbpkg.ConfigurationError{Key: "DB_SERVER"}
	repo := sqldb.New(failingConnector{err: cfgErr}, nil)

	if _, err := repo.ListPortfolioItems(context.Background()); !dbpkg.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
