package qr

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

// DefaultName is used for exported files when the subject has no identity.
const DefaultName = "jasu"

var (
	ErrEmptyPayload    = errors.New("qr: empty payload")
	ErrSceneDecode     = errors.New("qr: scene decode failed")
	ErrLogoUnavailable = errors.New("qr: logo unavailable")
	ErrInvalidStyle    = errors.New("qr: invalid style")
)

// Style holds the fixed rendering constants. Radii of finders are in module
// units, ModuleRadius is a fraction of the cell size.
type Style struct {
	Dark       color.RGBA
	Accent     color.RGBA
	Background color.RGBA

	CellSize  int // pixels per module
	QuietZone int // margin in modules

	FinderOuterRadius float64
	FinderRingRadius  float64
	FinderInnerRadius float64
	ModuleRadius      float64

	LogoSize    int // pixels, independent of the matrix size
	LogoPadding int // cartouche padding around the logo, pixels

	ExportSize  int // side of the exported bitmap
	LogoURL     string
	LogoTimeout time.Duration
}

// Validate reports styles that cannot produce a scene.
func (s Style) Validate() error {
	switch {
	case s.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidStyle, s.CellSize)
	case s.QuietZone < 0:
		return fmt.Errorf("%w: quiet zone %d", ErrInvalidStyle, s.QuietZone)
	case s.ExportSize <= 0:
		return fmt.Errorf("%w: export size %d", ErrInvalidStyle, s.ExportSize)
	case s.ModuleRadius < 0 || s.FinderOuterRadius < 0 || s.FinderRingRadius < 0 || s.FinderInnerRadius < 0:
		return fmt.Errorf("%w: negative radius", ErrInvalidStyle)
	case s.LogoSize < 0 || s.LogoPadding < 0:
		return fmt.Errorf("%w: negative logo size", ErrInvalidStyle)
	}
	return nil
}

// Side returns the canvas side in pixels for a matrix of n modules.
func (s Style) Side(n int) int {
	return (n + 2*s.QuietZone) * s.CellSize
}

// FileName returns the download name of an exported code.
func FileName(name string) string {
	if name == "" {
		name = DefaultName
	}
	return name + "-qr.png"
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
