package seed

import (
	"context"
	"fmt"

	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// LocalVideoSrc is the web path of the locally hosted main video.
const LocalVideoSrc = "/Video principal.mp4"

// LocalVideoSteps upgrades a featured_videos table created before local
// videos existed and registers the main local video. Each step probes the
// current state first, so the list can be rerun.
func LocalVideoSteps(videos repository.VideoRepo) []db.Step {
	return []db.Step{
		{Name: "add featured_videos.src", Run: addVideoSrcColumn},
		{Name: "make featured_videos.vimeo_id nullable", Run: relaxVimeoID},
		{Name: "insert local video", Run: func(ctx context.Context, _ *db.DB) (string, error) {
			return insertLocalVideo(ctx, videos, LocalVideoSrc)
		}},
	}
}

func addVideoSrcColumn(ctx context.Context, d *db.DB) (string, error) {
	exists, err := d.ColumnExists(ctx, "featured_videos", "src")
	if err != nil {
		return "", err
	}
	if exists {
		return "column already exists", nil
	}
	if _, err := d.Exec(ctx, d.Dialect().AddColumnStmt("featured_videos", "src", 255)); err != nil {
		return "", fmt.Errorf("add src column: %w", err)
	}
	return "column added", nil
}

func relaxVimeoID(ctx context.Context, d *db.DB) (string, error) {
	nullable, err := d.ColumnNullable(ctx, "featured_videos", "vimeo_id")
	if err != nil {
		return "", err
	}
	if nullable {
		return "already nullable", nil
	}
	stmt, err := d.Dialect().DropNotNullStmt("featured_videos", "vimeo_id")
	if err != nil {
		return "", err
	}
	if _, err := d.Exec(ctx, stmt); err != nil {
		return "", fmt.Errorf("alter vimeo_id: %w", err)
	}
	return "constraint dropped", nil
}

func insertLocalVideo(ctx context.Context, videos repository.VideoRepo, src string) (string, error) {
	existing, err := videos.GetFeaturedVideoBySrc(ctx, src)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return src + " already exists", nil
	}

	v := &models.FeaturedVideo{Type: models.VideoTypeLocal, Src: models.String(src)}
	if err := v.Validate(); err != nil {
		return "", err
	}
	if _, err := videos.CreateFeaturedVideo(ctx, v); err != nil {
		return "", fmt.Errorf("insert %s: %w", src, err)
	}
	return "inserted " + src, nil
}
