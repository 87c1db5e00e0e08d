package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Search      string
	Settings    string
	Equalizer   string
	AppSelector string
	Music       string
	Explicit    string
	Downloaded  string
	NewMedia    string
	Browse      string
	Placeholder string
}

var (
	nerdIcons = Icons{
		Search:      "", // nf-fa-search
		Settings:    "", // nf-fa-cog
		Equalizer:   "󰺢", // nf-md-equalizer
		AppSelector: "", // nf-fa-th
		Music:       "", // nf-fa-music
		Explicit:    "󰌎", // nf-md-alpha_e_box
		Downloaded:  "", // nf-fa-download
		NewMedia:    "", // nf-fa-circle
		Browse:      "", // nf-fa-chevron_right
		Placeholder: "󰎈", // nf-md-music_note
	}

	unicodeIcons = Icons{
		Search:      "🔍",
		Settings:    "⚙",
		Equalizer:   "🎚",
		AppSelector: "▦",
		Music:       "🎵",
		Explicit:    "🅴",
		Downloaded:  "⤓",
		NewMedia:    "●",
		Browse:      "›",
		Placeholder: "♪",
	}

	noneIcons = Icons{
		Search:      "",
		Settings:    "",
		Equalizer:   "",
		AppSelector: "",
		Music:       "",
		Explicit:    "[E]",
		Downloaded:  "[D]",
		NewMedia:    "*",
		Browse:      ">",
		Placeholder: "",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Named returns the icon registered under name, as used by menu resources.
// Unknown names return "".
func Named(name string) string {
	switch name {
	case "search":
		return current.Search
	case "settings":
		return current.Settings
	case "equalizer":
		return current.Equalizer
	case "apps", "selector":
		return current.AppSelector
	case "music":
		return current.Music
	default:
		return ""
	}
}

// Music returns the music note used for notifications and placeholders.
func Music() string {
	return current.Music
}

// Explicit returns the explicit content badge.
func Explicit() string {
	return current.Explicit
}

// Downloaded returns the downloaded badge.
func Downloaded() string {
	return current.Downloaded
}

// NewMedia returns the new media dot.
func NewMedia() string {
	return current.NewMedia
}

// Browse returns the arrow shown on browsable rows.
func Browse() string {
	return current.Browse
}

// Placeholder returns the artwork placeholder glyph.
func Placeholder() string {
	return current.Placeholder
}
