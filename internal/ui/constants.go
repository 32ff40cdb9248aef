package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconSave     = "💾"
	IconMusic    = "🎵"
	IconFilm     = "🎬"
	IconError    = "❌"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	ThumbnailWidth  = 96
	ThumbnailHeight = 72
	PreviewWidth    = 320
	PreviewHeight   = 180

	// Number of selected images shown in the strip
	ThumbnailStripCount = 6
)

// Debounce durations
const (
	ProgressUpdateDebounce = 50 * time.Millisecond
)
