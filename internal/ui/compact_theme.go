package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette
var (
	colorPurple = color.RGBA{R: 147, G: 51, B: 234, A: 255}
	colorPink   = color.RGBA{R: 236, G: 72, B: 153, A: 255}
	colorGreen  = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	colorRed    = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	colorAmber  = color.RGBA{R: 250, G: 204, B: 21, A: 255}
)

// CompactTheme defines a compact theme for the UI with reduced padding and font sizes
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorPurple // Convert button, progress fill
	case theme.ColorNameFocus, theme.ColorNameSelection:
		return color.RGBA{R: colorPink.R, G: colorPink.G, B: colorPink.B, A: 96}
	case theme.ColorNameHyperlink:
		return colorPink
	case theme.ColorNameSuccess:
		return colorGreen // Result panel
	case theme.ColorNameError:
		return colorRed
	case theme.ColorNameWarning:
		return colorAmber
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 24, G: 16, B: 36, A: 255}
		}
		return color.RGBA{R: 250, G: 247, B: 255, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 245, G: 243, B: 255, A: 255}
		}
		return color.RGBA{R: 30, G: 27, B: 46, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 22 // Title stays prominent
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
