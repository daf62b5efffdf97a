package models

import (
	"errors"
	"fmt"
)

// Domain models matching the tables in db/migrations.

const (
	ItemTypeImage     = "image"
	ItemTypeVideo     = "video"
	ItemTypeVideoLink = "video-link"
)

const (
	VideoTypeRegular = "regular"
	VideoTypeShort   = "short"
	VideoTypeLocal   = "local"
)

// PortfolioItem is one gallery entry. VideoURL and Thumbnail are only used
// by video-link items.
type PortfolioItem struct {
	ID        int64   `json:"id" db:"id"`
	Type      string  `json:"type" db:"type"`
	Src       *string `json:"src" db:"src"`
	Alt       *string `json:"alt" db:"alt"`
	VideoURL  *string `json:"videoUrl" db:"video_url"`
	Thumbnail *string `json:"thumbnail" db:"thumbnail"`
}

// FeaturedVideo is either hosted on Vimeo (VimeoID) or served locally (Src).
type FeaturedVideo struct {
	ID      int64   `json:"id" db:"id"`
	VimeoID *string `json:"vimeoId" db:"vimeo_id"`
	Type    string  `json:"type" db:"type"`
	Src     *string `json:"src" db:"src"`
}

var ErrInvalidVideo = errors.New("featured video must set exactly one of vimeoId or src")

func (p *PortfolioItem) Validate() error {
	switch p.Type {
	case ItemTypeImage, ItemTypeVideo:
		if isBlank(p.Src) {
			return fmt.Errorf("portfolio item of type %q requires src", p.Type)
		}
	case ItemTypeVideoLink:
		if isBlank(p.VideoURL) {
			return fmt.Errorf("portfolio item of type %q requires videoUrl", p.Type)
		}
	default:
		return fmt.Errorf("unknown portfolio item type %q", p.Type)
	}
	return nil
}

func (v *FeaturedVideo) Validate() error {
	switch v.Type {
	case VideoTypeRegular, VideoTypeShort, VideoTypeLocal:
	default:
		return fmt.Errorf("unknown featured video type %q", v.Type)
	}
	if isBlank(v.VimeoID) == isBlank(v.Src) {
		return ErrInvalidVideo
	}
	return nil
}

// String returns a pointer to s, for the nullable fields.
func String(s string) *string {
	return &s
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
