package repository

import (
	"context"
	"fmt"
	"strings"

	"videofeed/ingest/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VideoRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, video *domain.Video) error
}

type videoRepository struct {
	db *pgxpool.Pool
}

func NewVideoRepository(db *pgxpool.Pool) VideoRepository {
	return &videoRepository{
		db: db,
	}
}

const createVideosTable = `
	CREATE TABLE IF NOT EXISTS videos (
		id                   BIGSERIAL PRIMARY KEY,
		category             TEXT NOT NULL,
		suggest_text_1       TEXT NOT NULL,
		suggest_text_2       TEXT NOT NULL,
		video_url            TEXT NOT NULL UNIQUE,
		bg_image_url         TEXT NOT NULL,
		studio               TEXT NOT NULL,
		card_image           TEXT NOT NULL,
		content_type         TEXT NOT NULL,
		is_live              BOOLEAN NOT NULL,
		video_width          INTEGER NOT NULL,
		video_height         INTEGER NOT NULL,
		audio_channel_config TEXT NOT NULL,
		purchase_price       TEXT,
		rental_price         TEXT,
		rating_style         INTEGER NOT NULL,
		rating_score         REAL NOT NULL,
		production_year      INTEGER NOT NULL,
		duration             BIGINT NOT NULL,
		action               TEXT
	)`

func (r *videoRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createVideosTable); err != nil {
		return fmt.Errorf("failed to create videos table: %w", err)
	}
	return nil
}

func (r *videoRepository) Insert(ctx context.Context, video *domain.Video) error {
	_, err := r.db.Exec(ctx, insertQuery, insertArgs(video)...)
	if err != nil {
		return fmt.Errorf("failed to save video %s: %w", video.VideoURL, err)
	}

	return nil
}

var insertQuery = buildInsertQuery()

// buildInsertQuery upserts on video_url so re-running an ingestion updates rows in place.
func buildInsertQuery() string {
	placeholders := make([]string, len(domain.Columns))
	updates := make([]string, 0, len(domain.Columns)-1)
	for i, col := range domain.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != domain.ColumnVideoURL {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO videos (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(domain.Columns, ", "),
		strings.Join(placeholders, ", "),
		domain.ColumnVideoURL,
		strings.Join(updates, ", "),
	)
}

// insertArgs orders the record's values like domain.Columns. Unset labels become NULL.
func insertArgs(video *domain.Video) []any {
	values := video.ColumnValues()
	args := make([]any, len(domain.Columns))
	for i, col := range domain.Columns {
		args[i] = values[col]
	}
	return args
}
