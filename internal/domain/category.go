package domain

// CategoryDescriptor is one entry of the root feed's category list.
type CategoryDescriptor struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// Rendition is one encoded variant of a feed item.
type Rendition struct {
	URL *string `json:"url"`
}

type Renditions struct {
	MP4 []*Rendition `json:"mp4"`
}

type Image struct {
	URL string `json:"url"`
}

// RawItem is a feed item as published upstream. Every field is optional.
type RawItem struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       *Image      `json:"image"`
	Renditions  *Renditions `json:"renditions"`
}

// FirstMP4 returns the first mp4 rendition, or nil when there is none.
func (i *RawItem) FirstMP4() *Rendition {
	if i.Renditions == nil || len(i.Renditions.MP4) == 0 {
		return nil
	}
	return i.Renditions.MP4[0]
}

func (i *RawItem) ImageURL() string {
	if i.Image == nil {
		return ""
	}
	return i.Image.URL
}
