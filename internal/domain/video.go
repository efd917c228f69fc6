package domain

// Storage column names. These are shared with the record store and must not change.
const (
	ColumnCategory           = "category"
	ColumnName               = "suggest_text_1"
	ColumnDesc               = "suggest_text_2"
	ColumnVideoURL           = "video_url"
	ColumnBgImageURL         = "bg_image_url"
	ColumnStudio             = "studio"
	ColumnCardImg            = "card_image"
	ColumnContentType        = "content_type"
	ColumnIsLive             = "is_live"
	ColumnVideoWidth         = "video_width"
	ColumnVideoHeight        = "video_height"
	ColumnAudioChannelConfig = "audio_channel_config"
	ColumnPurchasePrice      = "purchase_price"
	ColumnRentalPrice        = "rental_price"
	ColumnRatingStyle        = "rating_style"
	ColumnRatingScore        = "rating_score"
	ColumnProductionYear     = "production_year"
	ColumnDuration           = "duration"
	ColumnAction             = "action"
)

// Columns lists every column in insert order.
var Columns = []string{
	ColumnCategory,
	ColumnName,
	ColumnDesc,
	ColumnVideoURL,
	ColumnBgImageURL,
	ColumnStudio,
	ColumnCardImg,
	ColumnContentType,
	ColumnIsLive,
	ColumnVideoWidth,
	ColumnVideoHeight,
	ColumnAudioChannelConfig,
	ColumnPurchasePrice,
	ColumnRentalPrice,
	ColumnRatingStyle,
	ColumnRatingScore,
	ColumnProductionYear,
	ColumnDuration,
	ColumnAction,
}

// Fixed values for fields the feed does not carry.
const (
	ContentTypeMP4            = "video/mp4"
	DefaultAudioChannelConfig = "2.0"
	DefaultProductionYear     = 2014
	DefaultVideoWidth         = 1280
	DefaultVideoHeight        = 720
	RatingFiveStars           = 5
	DefaultRatingScore        = 3.5
)

// Video is one playable item, normalized for storage.
type Video struct {
	Category           string  `json:"category"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	VideoURL           string  `json:"video_url"`
	CardImageURL       string  `json:"card_image_url"`
	BgImageURL         string  `json:"bg_image_url"` // Feed has no background image
	Studio             string  `json:"studio"`
	ContentType        string  `json:"content_type"`
	IsLive             bool    `json:"is_live"`
	AudioChannelConfig string  `json:"audio_channel_config"`
	ProductionYear     int     `json:"production_year"`
	Duration           int64   `json:"duration"` // Not derivable from the feed, always 0
	RatingStyle        int     `json:"rating_style"`
	RatingScore        float32 `json:"rating_score"`
	PurchasePrice      *string `json:"purchase_price,omitempty"`
	RentalPrice        *string `json:"rental_price,omitempty"`
	Action             *string `json:"action,omitempty"`
	Width              int     `json:"width"`
	Height             int     `json:"height"`
}

// ColumnValues renders the record keyed by storage column name.
// Unset labels are left out of the map.
func (v *Video) ColumnValues() map[string]any {
	values := map[string]any{
		ColumnCategory:           v.Category,
		ColumnName:               v.Name,
		ColumnDesc:               v.Description,
		ColumnVideoURL:           v.VideoURL,
		ColumnBgImageURL:         v.BgImageURL,
		ColumnStudio:             v.Studio,
		ColumnCardImg:            v.CardImageURL,
		ColumnContentType:        v.ContentType,
		ColumnIsLive:             v.IsLive,
		ColumnVideoWidth:         v.Width,
		ColumnVideoHeight:        v.Height,
		ColumnAudioChannelConfig: v.AudioChannelConfig,
		ColumnRatingStyle:        v.RatingStyle,
		ColumnRatingScore:        v.RatingScore,
		ColumnProductionYear:     v.ProductionYear,
		ColumnDuration:           v.Duration,
	}

	if v.PurchasePrice != nil {
		values[ColumnPurchasePrice] = *v.PurchasePrice
	}
	if v.RentalPrice != nil {
		values[ColumnRentalPrice] = *v.RentalPrice
	}
	if v.Action != nil {
		values[ColumnAction] = *v.Action
	}

	return values
}
