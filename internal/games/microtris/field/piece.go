package field

// Shape is a 2x2 occupancy mask. The zero Shape means "no piece".
type Shape struct {
	TL, TR bool
	BL, BR bool
}

// Kind names a catalog shape.
type Kind uint8

const (
	KindNone Kind = iota
	KindStraight
	KindSquare
	KindL
	KindS
	KindT
)

// Catalog shapes. These are 2x2 stand-ins for the tetrominoes, not full
// four-cell pieces.
var (
	Straight = Shape{TL: true, BL: true}
	Square   = Shape{TL: true, TR: true, BL: true, BR: true}
	L        = Shape{TL: true, BL: true, BR: true}
	S        = Shape{TR: true, BL: true}
	T        = Shape{TL: true, TR: true, BR: true}
)

// Kinds lists the catalog in a stable order.
var Kinds = []Kind{KindStraight, KindSquare, KindL, KindS, KindT}

// Shape returns the unrotated mask for the kind.
func (k Kind) Shape() Shape {
	switch k {
	case KindStraight:
		return Straight
	case KindSquare:
		return Square
	case KindL:
		return L
	case KindS:
		return S
	case KindT:
		return T
	default:
		return Shape{}
	}
}

// String returns the catalog name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStraight:
		return "Straight"
	case KindSquare:
		return "Square"
	case KindL:
		return "L"
	case KindS:
		return "S"
	case KindT:
		return "T"
	default:
		return "None"
	}
}

// IsEmpty reports whether no cell of the mask is set.
func (s Shape) IsEmpty() bool {
	return !s.TL && !s.TR && !s.BL && !s.BR
}

// HasBottom reports whether either bottom cell is set.
func (s Shape) HasBottom() bool {
	return s.BL || s.BR
}

// Size returns the number of set cells.
func (s Shape) Size() int {
	n := 0
	for _, b := range [4]bool{s.TL, s.TR, s.BL, s.BR} {
		if b {
			n++
		}
	}
	return n
}

// RotateClockwise turns the mask 90 degrees clockwise:
// {tl,tr,bl,br} becomes {bl,tl,br,tr}. Four turns return the original.
func RotateClockwise(s Shape) Shape {
	return Shape{
		TL: s.BL,
		TR: s.TL,
		BL: s.BR,
		BR: s.TR,
	}
}

// Anchor is the bottom-left cell of a piece's 2x2 bounding box.
type Anchor struct {
	Row int
	Col int
}

// SpawnAnchor is where every new piece appears: top row, middle column.
var SpawnAnchor = Anchor{Row: 1, Col: 2}

// Point is a grid coordinate.
type Point struct {
	Row int
	Col int
}

// Cells returns the grid coordinates of the mask's set cells at anchor a.
// Unset cells are never returned, so a top-only mask may sit one row lower
// than a two-row mask without indexing past the floor.
func (s Shape) Cells(a Anchor) []Point {
	pts := make([]Point, 0, 4)
	if s.TL {
		pts = append(pts, Point{a.Row - 1, a.Col})
	}
	if s.TR {
		pts = append(pts, Point{a.Row - 1, a.Col + 1})
	}
	if s.BL {
		pts = append(pts, Point{a.Row, a.Col})
	}
	if s.BR {
		pts = append(pts, Point{a.Row, a.Col + 1})
	}
	return pts
}

// Fits reports whether every set cell of s at a lies inside the grid.
func (s Shape) Fits(a Anchor) bool {
	for _, p := range s.Cells(a) {
		if !InBounds(p.Row, p.Col) {
			return false
		}
	}
	return true
}

// MaxRow is the deepest anchor row the mask can reach: the floor row for
// two-row masks, one below it for masks that only occupy the top row.
func (s Shape) MaxRow() int {
	if s.HasBottom() {
		return Rows - 1
	}
	return Rows
}
