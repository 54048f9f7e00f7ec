package qr

import (
	"math"
	"strconv"
	"strings"
)

type Corner uint8

const (
	CornerTL Corner = iota
	CornerTR
	CornerBR
	CornerBL
)

func (c Corner) String() string {
	switch c {
	case CornerTL:
		return "tl"
	case CornerTR:
		return "tr"
	case CornerBR:
		return "br"
	case CornerBL:
		return "bl"
	}
	return "corner(" + strconv.Itoa(int(c)) + ")"
}

// Corners holds one radius per corner of a rectangle.
type Corners struct {
	TL, TR, BR, BL float64
}

func Uniform(r float64) Corners {
	return Corners{TL: r, TR: r, BR: r, BL: r}
}

// Square returns a copy with the given corner forced to radius zero.
func (c Corners) Square(corner Corner) Corners {
	switch corner {
	case CornerTL:
		c.TL = 0
	case CornerTR:
		c.TR = 0
	case CornerBR:
		c.BR = 0
	case CornerBL:
		c.BL = 0
	}
	return c
}

func (c Corners) Radius(corner Corner) float64 {
	switch corner {
	case CornerTL:
		return c.TL
	case CornerTR:
		return c.TR
	case CornerBR:
		return c.BR
	case CornerBL:
		return c.BL
	}
	return 0
}

type PathOp uint8

const (
	OpMove PathOp = iota
	OpHorizontal
	OpVertical
	OpLine
	OpArc
	OpClose
)

// Segment is one path command. H uses X, V uses Y, A uses R with X,Y as the end point.
type Segment struct {
	Op   PathOp
	X, Y float64
	R    float64
}

type Path struct {
	Segments []Segment
}

// RoundedRect builds a closed rectangle path with a radius per corner. Radii are
// clamped to [0, min(w,h)/2]; a zero radius produces a sharp corner.
func RoundedRect(x, y, w, h float64, c Corners) Path {
	limit := math.Min(w, h) / 2
	clamp := func(r float64) float64 {
		return math.Max(0, math.Min(r, limit))
	}
	tl, tr, br, bl := clamp(c.TL), clamp(c.TR), clamp(c.BR), clamp(c.BL)

	p := Path{Segments: make([]Segment, 0, 10)}
	p.add(Segment{Op: OpMove, X: x + tl, Y: y})
	p.add(Segment{Op: OpHorizontal, X: x + w - tr})
	p.corner(tr, x+w, y+tr, x+w, y)
	p.add(Segment{Op: OpVertical, Y: y + h - br})
	p.corner(br, x+w-br, y+h, x+w, y+h)
	p.add(Segment{Op: OpHorizontal, X: x + bl})
	p.corner(bl, x, y+h-bl, x, y+h)
	p.add(Segment{Op: OpVertical, Y: y + tl})
	p.corner(tl, x+tl, y, x, y)
	p.add(Segment{Op: OpClose})
	return p
}

func (p *Path) add(s Segment) {
	p.Segments = append(p.Segments, s)
}

// corner appends a quarter arc ending at (ax, ay), or a straight line to the
// sharp corner point (lx, ly) when r is zero.
func (p *Path) corner(r, ax, ay, lx, ly float64) {
	if r > 0 {
		p.add(Segment{Op: OpArc, R: r, X: ax, Y: ay})
		return
	}
	p.add(Segment{Op: OpLine, X: lx, Y: ly})
}

// Arcs counts the rounded corners of the path.
func (p Path) Arcs() int {
	n := 0
	for _, s := range p.Segments {
		if s.Op == OpArc {
			n++
		}
	}
	return n
}

// D renders SVG path data.
func (p Path) D() string {
	var sb strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch s.Op {
		case OpMove:
			sb.WriteString("M " + num(s.X) + " " + num(s.Y))
		case OpHorizontal:
			sb.WriteString("H " + num(s.X))
		case OpVertical:
			sb.WriteString("V " + num(s.Y))
		case OpLine:
			sb.WriteString("L " + num(s.X) + " " + num(s.Y))
		case OpArc:
			sb.WriteString("A " + num(s.R) + " " + num(s.R) + " 0 0 1 " + num(s.X) + " " + num(s.Y))
		case OpClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
