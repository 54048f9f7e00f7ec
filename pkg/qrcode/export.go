package qr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"net/http"

	"github.com/fogleman/gg"
	"github.com/jasu-us/business-card/pkg/logger/types"
	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap/buffer"
)

// Artifact is an exported bitmap ready for download.
type Artifact struct {
	Name string
	Data []byte
	Size int
}

// SceneDecoder turns a serialised scene into a bitmap of size×size pixels.
type SceneDecoder interface {
	DecodeScene(doc []byte, size int) (image.Image, error)
}

// LogoDecoder loads the logo image referenced by src.
type LogoDecoder interface {
	DecodeLogo(ctx context.Context, src string) (image.Image, error)
}

// SVGDecoder rasterises SVG documents. Embedded <image> elements are not
// rendered, the exporter paints the logo separately.
type SVGDecoder struct{}

func (SVGDecoder) DecodeScene(doc []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("empty view box")
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

type ExporterOption func(*Exporter)

func WithSceneDecoder(d SceneDecoder) ExporterOption {
	return func(e *Exporter) { e.scenes = d }
}

func WithLogoDecoder(d LogoDecoder) ExporterOption {
	return func(e *Exporter) { e.logos = d }
}

// Exporter renders scenes to fixed size PNG bitmaps.
type Exporter struct {
	style   Style
	scenes  SceneDecoder
	logos   LogoDecoder
	buffers buffer.Pool
	logger  *types.Logger
}

func NewExporter(style Style, logger *types.Logger, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		style:   style,
		scenes:  SVGDecoder{},
		logos:   LogoLoader{Client: &http.Client{Timeout: style.LogoTimeout}},
		buffers: buffer.NewPool(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export rasterises a copy of scene at the style's export size. When embedded
// is set it replaces the logo reference of the copy. A scene that cannot be
// decoded fails the export; a logo that cannot be decoded is left out.
func (e *Exporter) Export(ctx context.Context, scene Scene, embedded, name string) (Artifact, error) {
	size := e.style.ExportSize
	if scene.ViewBox <= 0 {
		return Artifact{}, fmt.Errorf("%w: empty view box", ErrSceneDecode)
	}

	clone := scene.WithSize(size)
	if embedded != "" {
		clone = clone.WithLogo(embedded)
	}

	doc := e.buffers.Get()
	defer doc.Free()

	if err := clone.WriteSVG(doc); err != nil {
		return Artifact{}, fmt.Errorf("serialize scene: %w", err)
	}

	decoded, err := e.scenes.DecodeScene(doc.Bytes(), size)
	if err != nil {
		e.logger.Errorf("(export: %s) scene decode failed: %v", FileName(name), err)
		return Artifact{}, fmt.Errorf("%w: %v", ErrSceneDecode, err)
	}
	if b := decoded.Bounds(); b.Dx() != size || b.Dy() != size {
		decoded = resize.Resize(uint(size), uint(size), decoded, resize.Bilinear)
	}

	dc := gg.NewContext(size, size)
	dc.SetColor(e.style.Background)
	dc.Clear()
	dc.DrawImage(decoded, 0, 0)

	e.overlayLogo(ctx, dc, clone, name)

	var out bytes.Buffer
	if err = dc.EncodePNG(&out); err != nil {
		return Artifact{}, fmt.Errorf("encode png: %w", err)
	}

	return Artifact{Name: FileName(name), Data: out.Bytes(), Size: size}, nil
}

// overlayLogo paints the cartouche and the logo over the composite, scaled
// from the scene's view box. Failures only skip the logo.
func (e *Exporter) overlayLogo(ctx context.Context, dc *gg.Context, scene Scene, name string) {
	node, ok := scene.Logo()
	if !ok {
		return
	}

	logo, err := e.logos.DecodeLogo(ctx, node.Href)
	if err != nil {
		e.logger.Warnf("(export: %s) exporting without logo: %v", FileName(name), err)
		return
	}

	scale := float64(scene.Width) / float64(scene.ViewBox)
	pad := float64(e.style.LogoPadding) * scale
	x, y := node.X*scale, node.Y*scale
	w, h := node.W*scale, node.H*scale

	dc.SetColor(e.style.Background)
	dc.DrawRectangle(x-pad, y-pad, w+2*pad, h+2*pad)
	dc.Fill()

	fitted := fit(logo, w, h)
	dc.DrawImageAnchored(fitted, int(math.Round(x+w/2)), int(math.Round(y+h/2)), 0.5, 0.5)
}

// fit scales img into a w×h box keeping its aspect ratio.
func fit(img image.Image, w, h float64) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	ratio := math.Min(w/float64(b.Dx()), h/float64(b.Dy()))
	tw := uint(math.Max(1, math.Round(float64(b.Dx())*ratio)))
	th := uint(math.Max(1, math.Round(float64(b.Dy())*ratio)))
	return resize.Resize(tw, th, img, resize.Lanczos3)
}
