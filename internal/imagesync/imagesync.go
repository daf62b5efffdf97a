package imagesync

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/garnizeh/portfolio/internal/logger"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// Extensions recognised as images, matched as a case-insensitive suffix.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var (
	trailingExt = regexp.MustCompile(`\.[^/.]+$`)
	separators  = regexp.MustCompile(`[-_]`)
)

// Syncer adds a portfolio row for every image file in Dir that has no
// image row with the same src yet.
type Syncer struct {
	repo   repository.PortfolioRepo
	fs     afero.Fs
	dir    string
	dryRun bool
	logger *slog.Logger
}

type Option func(*Syncer)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Syncer) { s.fs = fs }
}

// WithDryRun reports what would be added without inserting anything.
func WithDryRun(dry bool) Option {
	return func(s *Syncer) { s.dryRun = dry }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(repo repository.PortfolioRepo, dir string, opts ...Option) *Syncer {
	s := &Syncer{repo: repo, fs: afero.NewOsFs(), dir: dir, logger: logger.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Result summarises one Run.
type Result struct {
	Found   int
	Skipped int
	Added   []string
	DryRun  bool
}

// Run lists the directory, compares "/<file>" against the existing image
// sources (exact, case-sensitive) and inserts the missing ones.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	res := Result{DryRun: s.dryRun}

	files, err := s.imageFiles()
	if err != nil {
		return res, err
	}
	res.Found = len(files)
	s.logger.Info("found images", slog.Int("count", len(files)), slog.String("dir", s.dir))

	srcs, err := s.repo.ListImageSources(ctx)
	if err != nil {
		return res, fmt.Errorf("list existing images: %w", err)
	}
	existing := make(map[string]struct{}, len(srcs))
	for _, src := range srcs {
		existing[src] = struct{}{}
	}

	for _, name := range files {
		src := "/" + name
		if _, ok := existing[src]; ok {
			res.Skipped++
			continue
		}

		item := &models.PortfolioItem{
			Type: models.ItemTypeImage,
			Src:  models.String(src),
			Alt:  models.String(AltText(name)),
		}
		if s.dryRun {
			s.logger.Info("would add image", slog.String("src", src), slog.String("alt", *item.Alt))
			res.Added = append(res.Added, src)
			continue
		}

		s.logger.Info("adding new image", slog.String("src", src), slog.String("alt", *item.Alt))
		if _, err := s.repo.CreatePortfolioItem(ctx, item); err != nil {
			return res, fmt.Errorf("insert %s: %w", src, err)
		}
		existing[src] = struct{}{}
		res.Added = append(res.Added, src)
	}

	s.logger.Info("sync complete", slog.Int("added", len(res.Added)), slog.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Syncer) imageFiles() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImage(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// IsImage reports whether name ends in one of Extensions, ignoring case.
// "photo.JPG.jpeg" counts as an image.
func IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// AltText derives a label from a file name: up to two trailing extensions
// are removed and '-' / '_' become spaces.
func AltText(name string) string {
	alt := trailingExt.ReplaceAllString(name, "")
	alt = trailingExt.ReplaceAllString(alt, "")
	return separators.ReplaceAllString(alt, " ")
}
