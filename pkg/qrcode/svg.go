package qr

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteSVG serialises the scene as a standalone SVG document.
func (s Scene) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(s.Width, s.Height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, s.ViewBox, s.ViewBox),
		`shape-rendering="geometricPrecision"`,
	)
	for _, n := range s.Nodes {
		writeNode(canvas, n)
	}
	canvas.End()

	return ew.err
}

func writeNode(canvas *svg.SVG, n Node) {
	fill := fmt.Sprintf(`fill="%s"`, hex(n.Fill))

	switch n.Kind {
	case KindRect:
		if whole(n.X, n.Y, n.W, n.H) {
			canvas.Rect(int(n.X), int(n.Y), int(n.W), int(n.H), fill)
			return
		}
		canvas.Path(n.Path().D(), fill)
	case KindPath:
		canvas.Path(n.Path().D(), fill)
	case KindImage:
		canvas.Image(
			int(math.Round(n.X)), int(math.Round(n.Y)),
			int(math.Round(n.W)), int(math.Round(n.H)),
			escapeAttr(n.Href),
			`preserveAspectRatio="xMidYMid meet"`,
		)
	case KindGroup:
		canvas.Group(fill)
		for _, c := range n.Children {
			writeNode(canvas, c)
		}
		canvas.Gend()
	}
}

// escapeAttr escapes text for an attribute value, svgo prints it as is.
func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func whole(vs ...float64) bool {
	for _, v := range vs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}
