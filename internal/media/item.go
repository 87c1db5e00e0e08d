package media

// CompletionStatus is how much of an item the user has played.
type CompletionStatus int

const (
	CompletionUnknown CompletionStatus = iota
	CompletionNotPlayed
	CompletionPartiallyPlayed
	CompletionFullyPlayed
)

// String returns the status name.
func (c CompletionStatus) String() string {
	switch c {
	case CompletionNotPlayed:
		return "NotPlayed"
	case CompletionPartiallyPlayed:
		return "PartiallyPlayed"
	case CompletionFullyPlayed:
		return "FullyPlayed"
	default:
		return "Unknown"
	}
}

// Extras carries the per-item display hints a source attaches to an item.
type Extras struct {
	CompletionStatus CompletionStatus
	// Progress is the completion percentage in [0.0, 1.0]. Sources may send
	// values outside that range; consumers must not assume it is clamped.
	Progress   float64
	Explicit   bool
	Downloaded bool
}

// Item is a node in a source's browse tree, or the currently playing item.
type Item struct {
	ID        string
	Title     string
	Subtitle  string
	Artwork   ArtworkRef
	Browsable bool
	Playable  bool
	Extras    Extras
}

// HasSubtitle reports whether the item carries a subtitle.
func (i *Item) HasSubtitle() bool {
	return i != nil && i.Subtitle != ""
}
