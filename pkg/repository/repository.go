package repository

import (
	"context"

	"github.com/garnizeh/portfolio/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type PortfolioRepo interface {
	ListPortfolioItems(ctx context.Context) ([]models.PortfolioItem, error)
	CountPortfolioItems(ctx context.Context) (int64, error)
	CreatePortfolioItem(ctx context.Context, p *models.PortfolioItem) (int64, error)
	// ListImageSources returns the src of every item of type image.
	ListImageSources(ctx context.Context) ([]string, error)
}

type VideoRepo interface {
	ListFeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error)
	CountFeaturedVideos(ctx context.Context) (int64, error)
	CreateFeaturedVideo(ctx context.Context, v *models.FeaturedVideo) (int64, error)
	GetFeaturedVideoBySrc(ctx context.Context, src string) (*models.FeaturedVideo, error)
}

// ProbeRepo runs a trivial query to prove the database answers.
type ProbeRepo interface {
	Probe(ctx context.Context) ([]map[string]any, error)
}
