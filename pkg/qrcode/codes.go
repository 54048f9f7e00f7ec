package qr

import (
	"image/color"
	"time"
)

// Jasu is the card palette: green modules, light green finder frames on white.
var Jasu = Style{
	Dark:              color.RGBA{R: 0x1F, G: 0x5D, B: 0x39, A: 255},
	Accent:            color.RGBA{R: 0x71, G: 0xAA, B: 0x50, A: 255},
	Background:        color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255},
	CellSize:          6,
	QuietZone:         2,
	FinderOuterRadius: 2,
	FinderRingRadius:  1.5,
	FinderInnerRadius: 1,
	ModuleRadius:      0.4,
	LogoSize:          38,
	LogoPadding:       2,
	ExportSize:        1000,
	LogoURL:           "https://assets.jasu.us/logos/jasu-sheet.png",
	LogoTimeout:       10 * time.Second,
}
