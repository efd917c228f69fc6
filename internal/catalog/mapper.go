package catalog

import (
	"strconv"

	"videofeed/ingest/internal/domain"
	"videofeed/ingest/internal/labels"

	log "github.com/sirupsen/logrus"
)

// uniqueSuffix makes two records pointing at the same media file distinct.
const uniqueSuffix = "?_t="

// mapItem builds the record for one feed item. seq is the number of records
// already emitted by the current build. ok is false when the item has no
// playable mp4 rendition.
func (b *Builder) mapItem(category string, item *domain.RawItem, seq int) (*domain.Video, bool) {
	rendition := item.FirstMP4()
	if rendition == nil {
		log.Debugf("No mp4 rendition for %q in %q, skipping", item.Title, category)
		return nil, false
	}

	if rendition.URL == nil || *rendition.URL == "" {
		log.Debugf("No url for the mp4 rendition of %q in %q, skipping", item.Title, category)
		return nil, false
	}

	video := &domain.Video{
		Category:     category,
		Name:         item.Title,
		Description:  item.Description,
		VideoURL:     *rendition.URL + uniqueSuffix + strconv.Itoa(seq),
		CardImageURL: item.ImageURL(),
		BgImageURL:   "",
		Studio:       "",

		ContentType:        domain.ContentTypeMP4,
		IsLive:             false,
		AudioChannelConfig: domain.DefaultAudioChannelConfig,
		ProductionYear:     domain.DefaultProductionYear,
		Duration:           0,
		RatingStyle:        domain.RatingFiveStars,
		RatingScore:        domain.DefaultRatingScore,
		Width:              domain.DefaultVideoWidth,
		Height:             domain.DefaultVideoHeight,
	}

	if b.labels != nil {
		video.PurchasePrice = resolve(b.labels, labels.KeyBuy)
		video.RentalPrice = resolve(b.labels, labels.KeyRent)
		video.Action = resolve(b.labels, labels.KeyGlobalSearch)
	}

	return video, true
}

func resolve(r labels.Resolver, key labels.Key) *string {
	s := r.ResolveString(key)
	return &s
}
