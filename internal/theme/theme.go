package theme

import (
	"image/color"
)

// Theme defines the colour palette of the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Main text colour

	// Toolbar, dock and status bar
	ToolbarBackground color.RGBA
	DockBackground    color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Buttons
	ButtonBackground         color.RGBA
	ButtonBackgroundHover    color.RGBA
	ButtonBackgroundPress    color.RGBA
	ButtonBackgroundDisabled color.RGBA
	ButtonText               color.RGBA
	ButtonTextDisabled       color.RGBA
	ButtonBorder             color.RGBA

	// Prompts and dialogs
	PromptBackground color.RGBA
	PromptText       color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	Shadow       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                     "Default",
		Background:               color.RGBA{96, 96, 96, 255},
		Foreground:               color.RGBA{0, 0, 0, 255},
		ToolbarBackground:        color.RGBA{220, 220, 220, 255},
		DockBackground:           color.RGBA{230, 230, 230, 255},
		StatusBackground:         color.RGBA{210, 210, 210, 255},
		StatusText:               color.RGBA{32, 32, 32, 255},
		ButtonBackground:         color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:    color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress:    color.RGBA{150, 150, 150, 255},
		ButtonBackgroundDisabled: color.RGBA{215, 215, 215, 255},
		ButtonText:               color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:       color.RGBA{140, 140, 140, 255},
		ButtonBorder:             color.RGBA{0, 0, 0, 255},
		PromptBackground:         color.RGBA{255, 255, 255, 255},
		PromptText:               color.RGBA{0, 0, 0, 255},
		CheckerLight:             color.RGBA{220, 220, 220, 255},
		CheckerDark:              color.RGBA{192, 192, 192, 255},
		Shadow:                   color.RGBA{0, 0, 0, 140},
	}
}
