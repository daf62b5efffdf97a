package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/portfolio/pkg/models"
)

// ListFeaturedVideos returns every video in insertion order.
func (r *Repo) ListFeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryRows(ctx, `SELECT id, vimeo_id, type, src FROM featured_videos ORDER BY id`)
	if err != nil {
		return nil, queryErr("list featured videos", err)
	}
	defer rows.Close()

	out := []models.FeaturedVideo{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, queryErr("scan featured video", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("list featured videos", err)
	}

	return out, nil
}

func (r *Repo) CountFeaturedVideos(ctx context.Context) (int64, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return 0, err
	}

	var cnt int64
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM featured_videos`).Scan(&cnt); err != nil {
		return 0, queryErr("count featured videos", err)
	}
	return cnt, nil
}

func (r *Repo) CreateFeaturedVideo(ctx context.Context, v *models.FeaturedVideo) (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("featured video is nil")
	}
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = d.QueryRow(ctx, `INSERT INTO featured_videos (vimeo_id, type, src) VALUES (?, ?, ?) RETURNING id`,
		val(v.VimeoID), v.Type, val(v.Src)).Scan(&id)
	if err != nil {
		return 0, queryErr("insert featured video", err)
	}

	v.ID = id
	return id, nil
}

// GetFeaturedVideoBySrc returns nil, nil when no video has that src.
func (r *Repo) GetFeaturedVideoBySrc(ctx context.Context, src string) (*models.FeaturedVideo, error) {
	d, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}

	row := d.QueryRow(ctx, `SELECT id, vimeo_id, type, src FROM featured_videos WHERE src = ? ORDER BY id LIMIT 1`, src)
	v, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, queryErr("get featured video by src", err)
	}
	return v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(s scanner) (*models.FeaturedVideo, error) {
	var v models.FeaturedVideo
	var vimeoID, src sql.NullString
	if err := s.Scan(&v.ID, &vimeoID, &v.Type, &src); err != nil {
		return nil, err
	}
	v.VimeoID, v.Src = ptr(vimeoID), ptr(src)
	return &v, nil
}
