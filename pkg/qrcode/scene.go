package qr

import "image/color"

// FinderSize is the side of a finder pattern in modules.
const FinderSize = 7

type NodeKind uint8

const (
	KindRect NodeKind = iota
	KindPath
	KindImage
	KindGroup
)

type Role uint8

const (
	RoleBackground Role = iota
	RoleModules
	RoleModule
	RoleFinderOuter
	RoleFinderRing
	RoleFinderInner
	RoleCartouche
	RoleLogo
)

// Node is one shape of a scene. Rect and Path nodes are filled rectangles,
// Path nodes carry per-corner radii; Image nodes reference Href; Group nodes
// only hold children and a shared fill.
type Node struct {
	Kind     NodeKind
	Role     Role
	X, Y     float64
	W, H     float64
	Corners  Corners
	Fill     color.RGBA
	Href     string
	Children []Node
}

// Path returns the outline of a Rect or Path node.
func (n Node) Path() Path {
	if n.Kind == KindRect {
		return RoundedRect(n.X, n.Y, n.W, n.H, Corners{})
	}
	return RoundedRect(n.X, n.Y, n.W, n.H, n.Corners)
}

func (n Node) clone() Node {
	if n.Children != nil {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.clone()
		}
		n.Children = children
	}
	return n
}

// Scene is a vector description of a rendered code. Width and Height are the
// intrinsic size; ViewBox is the side of the internal coordinate system.
type Scene struct {
	Width   int
	Height  int
	ViewBox int
	Nodes   []Node
}

// FinderZone is one of the three 7×7 corner regions of the matrix. Inner is
// the corner that points at the matrix center and is drawn square.
type FinderZone struct {
	Row, Col int
	Inner    Corner
}

func (z FinderZone) Contains(row, col int) bool {
	return row >= z.Row && row < z.Row+FinderSize && col >= z.Col && col < z.Col+FinderSize
}

// Finders returns the top-left, top-right and bottom-left zones of an n×n matrix.
func Finders(n int) []FinderZone {
	if n < FinderSize {
		return nil
	}
	return []FinderZone{
		{Row: 0, Col: 0, Inner: CornerBR},
		{Row: 0, Col: n - FinderSize, Inner: CornerBL},
		{Row: n - FinderSize, Col: 0, Inner: CornerTR},
	}
}

func inFinder(zones []FinderZone, row, col int) bool {
	for _, z := range zones {
		if z.Contains(row, col) {
			return true
		}
	}
	return false
}

// Compose lays out m as a styled scene. The result depends only on its inputs;
// callers rebuild it whenever the payload or the logo reference changes.
func Compose(m Matrix, style Style, logoHref string) Scene {
	n := m.Size()
	unit := float64(style.CellSize)
	margin := float64(style.QuietZone) * unit
	side := style.Side(n)

	scene := Scene{Width: side, Height: side, ViewBox: side}
	scene.Nodes = append(scene.Nodes, Node{
		Kind: KindRect,
		Role: RoleBackground,
		W:    float64(side),
		H:    float64(side),
		Fill: style.Background,
	})

	zones := Finders(n)
	modules := Node{Kind: KindGroup, Role: RoleModules, Fill: style.Dark}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if inFinder(zones, r, c) || !m.Dark(r, c) {
				continue
			}
			module := Node{
				Kind: KindRect,
				Role: RoleModule,
				X:    margin + float64(c)*unit,
				Y:    margin + float64(r)*unit,
				W:    unit,
				H:    unit,
				Fill: style.Dark,
			}
			if style.ModuleRadius > 0 {
				module.Kind = KindPath
				module.Corners = Uniform(style.ModuleRadius * unit)
			}
			modules.Children = append(modules.Children, module)
		}
	}
	scene.Nodes = append(scene.Nodes, modules)

	for _, z := range zones {
		scene.Nodes = append(scene.Nodes, finder(z, margin, unit, style)...)
	}

	center := float64(side) / 2
	logo := float64(style.LogoSize)
	pad := float64(style.LogoPadding)
	scene.Nodes = append(scene.Nodes, Node{
		Kind: KindRect,
		Role: RoleCartouche,
		X:    center - logo/2 - pad,
		Y:    center - logo/2 - pad,
		W:    logo + 2*pad,
		H:    logo + 2*pad,
		Fill: style.Background,
	})
	if logoHref != "" {
		scene.Nodes = append(scene.Nodes, Node{
			Kind: KindImage,
			Role: RoleLogo,
			X:    center - logo/2,
			Y:    center - logo/2,
			W:    logo,
			H:    logo,
			Href: logoHref,
		})
	}

	return scene
}

// finder draws the three nested squares of a zone back to front.
func finder(z FinderZone, margin, unit float64, style Style) []Node {
	x := margin + float64(z.Col)*unit
	y := margin + float64(z.Row)*unit
	outer := FinderSize * unit

	return []Node{
		{
			Kind:    KindPath,
			Role:    RoleFinderOuter,
			X:       x,
			Y:       y,
			W:       outer,
			H:       outer,
			Corners: Uniform(style.FinderOuterRadius * unit).Square(z.Inner),
			Fill:    style.Accent,
		},
		{
			Kind:    KindPath,
			Role:    RoleFinderRing,
			X:       x + unit,
			Y:       y + unit,
			W:       outer - 2*unit,
			H:       outer - 2*unit,
			Corners: Uniform(style.FinderRingRadius * unit).Square(z.Inner),
			Fill:    style.Background,
		},
		{
			Kind:    KindPath,
			Role:    RoleFinderInner,
			X:       x + 2*unit,
			Y:       y + 2*unit,
			W:       3 * unit,
			H:       3 * unit,
			Corners: Uniform(style.FinderInnerRadius * unit).Square(z.Inner),
			Fill:    style.Dark,
		},
	}
}

// Clone returns a deep copy.
func (s Scene) Clone() Scene {
	out := s
	out.Nodes = make([]Node, len(s.Nodes))
	for i, n := range s.Nodes {
		out.Nodes[i] = n.clone()
	}
	return out
}

// WithSize returns a copy whose intrinsic size is px×px. The view box is kept,
// so every proportion scales uniformly.
func (s Scene) WithSize(px int) Scene {
	out := s.Clone()
	out.Width, out.Height = px, px
	return out
}

// WithLogo returns a copy with every logo image pointing at href.
func (s Scene) WithLogo(href string) Scene {
	out := s.Clone()
	for i := range out.Nodes {
		relink(&out.Nodes[i], href)
	}
	return out
}

func relink(n *Node, href string) {
	if n.Kind == KindImage && n.Role == RoleLogo {
		n.Href = href
	}
	for i := range n.Children {
		relink(&n.Children[i], href)
	}
}

// Logo returns the logo image node, if the scene has one.
func (s Scene) Logo() (Node, bool) {
	var (
		found Node
		ok    bool
	)
	s.Walk(func(n Node) {
		if !ok && n.Kind == KindImage && n.Role == RoleLogo {
			found, ok = n, true
		}
	})
	return found, ok
}

// Walk visits every node depth first.
func (s Scene) Walk(fn func(Node)) {
	var visit func(nodes []Node)
	visit = func(nodes []Node) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(s.Nodes)
}
