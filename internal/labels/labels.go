package labels

import "videofeed/ingest/internal/config"

// Key names one of the label strings attached to a record.
type Key string

const (
	KeyBuy          Key = "buy_2"
	KeyRent         Key = "rent_2"
	KeyGlobalSearch Key = "global_search"
)

// Resolver turns a label key into display text.
type Resolver interface {
	ResolveString(key Key) string
}

// Table is a Resolver backed by a fixed map. Unknown keys resolve to "".
type Table map[Key]string

func (t Table) ResolveString(key Key) string {
	return t[key]
}

// FromConfig returns the configured label table, or nil when labels are
// disabled so that records are built without them.
func FromConfig(cfg config.LabelsConfig) Resolver {
	if !cfg.Enabled {
		return nil
	}
	return Table{
		KeyBuy:          cfg.Buy,
		KeyRent:         cfg.Rent,
		KeyGlobalSearch: cfg.GlobalSearch,
	}
}
