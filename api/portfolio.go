package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

type PortfolioHandler struct {
	portfolioRepo repository.PortfolioRepo
	videoRepo     repository.VideoRepo
	probeRepo     repository.ProbeRepo
}

func NewPortfolioHandler(pr repository.PortfolioRepo, vr repository.VideoRepo, probe repository.ProbeRepo) *PortfolioHandler {
	return &PortfolioHandler{portfolioRepo: pr, videoRepo: vr, probeRepo: probe}
}

type testResponse struct {
	Message string           `json:"message"`
	Result  []map[string]any `json:"result"`
}

// Test proves the API can reach the database.
func (h *PortfolioHandler) Test(w http.ResponseWriter, r *http.Request) {
	h.run(r.Context(), "test", func(ctx context.Context) (any, error) {
		rows, err := h.probeRepo.Probe(ctx)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		return testResponse{Message: "Connected to database", Result: rows}, nil
	}).Write(w)
}

func (h *PortfolioHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	h.run(r.Context(), "list portfolio", func(ctx context.Context) (any, error) {
		items, err := h.portfolioRepo.ListPortfolioItems(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.PortfolioItem{}
		}
		return items, nil
	}).Write(w)
}

func (h *PortfolioHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	h.run(r.Context(), "list videos", func(ctx context.Context) (any, error) {
		videos, err := h.videoRepo.ListFeaturedVideos(ctx)
		if err != nil {
			return nil, err
		}
		if videos == nil {
			videos = []models.FeaturedVideo{}
		}
		return videos, nil
	}).Write(w)
}

func (h *PortfolioHandler) run(ctx context.Context, op string, fn func(context.Context) (any, error)) Result {
	data, err := fn(ctx)
	if err != nil {
		res := ErrFrom(err)
		logger.Error("request failed",
			slog.String("op", op),
			slog.String("kind", string(res.Failure().Kind)),
			slog.String("request_id", RequestIDFrom(ctx)),
			slog.Any("err", err),
		)
		return res
	}
	return Ok(data)
}
