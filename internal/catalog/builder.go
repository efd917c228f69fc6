package catalog

import (
	"context"

	"videofeed/ingest/internal/client"
	"videofeed/ingest/internal/domain"
	"videofeed/ingest/internal/labels"

	log "github.com/sirupsen/logrus"
)

// Builder turns the remote category feed into a flat list of video records.
type Builder struct {
	fetcher client.Fetcher
	labels  labels.Resolver
}

// BuildStats counts what one build saw.
type BuildStats struct {
	Categories int
	Items      int
	Skipped    int
	Records    int
}

// NewBuilder returns a Builder. resolver may be nil, in which case the
// price and action labels of every record are left unset.
func NewBuilder(fetcher client.Fetcher, resolver labels.Resolver) *Builder {
	return &Builder{
		fetcher: fetcher,
		labels:  resolver,
	}
}

// Build fetches rootURL, then categoryItemsURL+category_id for every
// category, and returns one record per playable item in feed order.
// Any fetch, parse or schema error aborts the whole build.
func (b *Builder) Build(ctx context.Context, rootURL, categoryItemsURL string) ([]*domain.Video, error) {
	videos, _, err := b.BuildWithStats(ctx, rootURL, categoryItemsURL)
	return videos, err
}

func (b *Builder) BuildWithStats(ctx context.Context, rootURL, categoryItemsURL string) ([]*domain.Video, BuildStats, error) {
	var stats BuildStats

	root, err := b.fetcher.FetchDocument(ctx, rootURL)
	if err != nil {
		return nil, stats, err
	}

	categories, err := dataArray(rootURL, root)
	if err != nil {
		return nil, stats, err
	}

	log.Infof("🔄 Found %d categories in %s", len(categories), rootURL)

	videos := make([]*domain.Video, 0)
	seq := 0

	for i, rawCategory := range categories {
		category, err := parseCategory(rootURL, i, rawCategory)
		if err != nil {
			return nil, stats, err
		}

		itemsURL := categoryItemsURL + category.CategoryID
		doc, err := b.fetcher.FetchDocument(ctx, itemsURL)
		if err != nil {
			return nil, stats, err
		}

		items, err := dataArray(itemsURL, doc)
		if err != nil {
			return nil, stats, err
		}

		stats.Categories++
		emitted := 0

		for j, rawItem := range items {
			stats.Items++

			item, err := parseItem(itemsURL, j, rawItem)
			if err != nil {
				return nil, stats, err
			}

			video, ok := b.mapItem(category.Name, item, seq)
			if !ok {
				stats.Skipped++
				continue
			}

			videos = append(videos, video)
			seq++
			emitted++
		}

		log.Infof("✅ Category %q (%s): %d of %d items playable",
			category.Name, category.CategoryID, emitted, len(items))
	}

	stats.Records = len(videos)
	return videos, stats, nil
}
