package mock

import (
	"context"

	"github.com/garnizeh/portfolio/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Portfolio *PortfolioRepo
	Videos    *VideoRepo
	Probe     *ProbeRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Portfolio: &PortfolioRepo{},
		Videos:    &VideoRepo{},
		Probe:     &ProbeRepo{},
	}
}

// PortfolioRepo keeps items in memory. Err, when set, is returned by every call.
type PortfolioRepo struct {
	Items []models.PortfolioItem
	Err   error
}

func (m *PortfolioRepo) ListPortfolioItems(ctx context.Context) ([]models.PortfolioItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

func (m *PortfolioRepo) CountPortfolioItems(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Items)), nil
}

func (m *PortfolioRepo) CreatePortfolioItem(ctx context.Context, p *models.PortfolioItem) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	item := *p
	item.ID = int64(len(m.Items) + 1)
	m.Items = append(m.Items, item)
	return item.ID, nil
}

func (m *PortfolioRepo) ListImageSources(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []string
	for _, it := range m.Items {
		if it.Type == models.ItemTypeImage && it.Src != nil {
			out = append(out, *it.Src)
		}
	}
	return out, nil
}

type VideoRepo struct {
	Videos []models.FeaturedVideo
	Err    error
}

func (m *VideoRepo) ListFeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Videos, nil
}

func (m *VideoRepo) CountFeaturedVideos(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Videos)), nil
}

func (m *VideoRepo) CreateFeaturedVideo(ctx context.Context, v *models.FeaturedVideo) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	video := *v
	video.ID = int64(len(m.Videos) + 1)
	m.Videos = append(m.Videos, video)
	return video.ID, nil
}

func (m *VideoRepo) GetFeaturedVideoBySrc(ctx context.Context, src string) (*models.FeaturedVideo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Videos {
		if v := m.Videos[i]; v.Src != nil && *v.Src == src {
			return &v, nil
		}
	}
	return nil, nil
}

type ProbeRepo struct {
	Rows []map[string]any
	Err  error
}

func (m *ProbeRepo) Probe(ctx context.Context) ([]map[string]any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Rows == nil {
		return []map[string]any{{"number": 1}}, nil
	}
	return m.Rows, nil
}
