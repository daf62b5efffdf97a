package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/portfolio/pkg/models"
)

// ListPortfolioItems returns every item in insertion order.
func (r *Repo) ListPortfolioItems(ctx context.Context) ([]models.PortfolioItem, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryRows(ctx, `SELECT id, type, src, alt, video_url, thumbnail FROM portfolio_items ORDER BY id`)
	if err != nil {
		return nil, queryErr("list portfolio items", err)
	}
	defer rows.Close()

	out := []models.PortfolioItem{}
	for rows.Next() {
		var p models.PortfolioItem
		var src, alt, videoURL, thumb sql.NullString
		if err := rows.Scan(&p.ID, &p.Type, &src, &alt, &videoURL, &thumb); err != nil {
			return nil, queryErr("scan portfolio item", err)
		}
		p.Src, p.Alt, p.VideoURL, p.Thumbnail = ptr(src), ptr(alt), ptr(videoURL), ptr(thumb)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list portfolio items", err)
	}

	return out, nil
}

func (r *Repo) CountPortfolioItems(ctx context.Context) (int64, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return 0, err
	}

	var cnt int64
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM portfolio_items`).Scan(&cnt); err != nil {
		return 0, queryErr("count portfolio items", err)
	}
	return cnt, nil
}

func (r *Repo) CreatePortfolioItem(ctx context.Context, p *models.PortfolioItem) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("portfolio item is nil")
	}
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = d.QueryRow(ctx, `INSERT INTO portfolio_items (type, src, alt, video_url, thumbnail) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		p.Type, val(p.Src), val(p.Alt), val(p.VideoURL), val(p.Thumbnail)).Scan(&id)
	if err != nil {
		return 0, queryErr("insert portfolio item", err)
	}

	p.ID = id
	return id, nil
}

func (r *Repo) ListImageSources(ctx context.Context) ([]string, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryRows(ctx, `SELECT src FROM portfolio_items WHERE type = ? AND src IS NOT NULL`, models.ItemTypeImage)
	if err != nil {
		return nil, queryErr("list image sources", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, queryErr("scan image source", err)
		}
		out = append(out, src)
	}
	return out, queryErr("list image sources", rows.Err())
}
