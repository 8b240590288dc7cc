// Package mask implements the freehand mask editor: fitting the background
// image onto the drawing surface, capturing strokes and exporting their
// coordinates as text.
package mask

// Point is a position in surface units.
type Point struct {
	X, Y float64
}

// OpKind is a path command.
type OpKind int

const (
	MoveTo OpKind = iota
	LineTo
)

// Segment is one path command with its end point.
type Segment struct {
	Op OpKind
	P  Point
}

// Stroke is the path geometry of one freehand gesture: a MoveTo followed by
// a LineTo per further pointer position.
type Stroke struct {
	segs []Segment
}

// NewStroke starts a stroke at p.
func NewStroke(p Point) *Stroke {
	return &Stroke{segs: []Segment{{Op: MoveTo, P: p}}}
}

// LineTo extends the stroke. A point equal to the previous vertex is dropped.
func (s *Stroke) LineTo(p Point) {
	if n := len(s.segs); n > 0 && s.segs[n-1].P == p {
		return
	}
	s.segs = append(s.segs, Segment{Op: LineTo, P: p})
}

// Segments returns the path commands in order.
func (s *Stroke) Segments() []Segment { return s.segs }

// Len returns the number of vertices.
func (s *Stroke) Len() int { return len(s.segs) }

// Points extracts every MoveTo and LineTo vertex in path order.
func (s *Stroke) Points() []Point {
	pts := make([]Point, 0, len(s.segs))
	for _, seg := range s.segs {
		switch seg.Op {
		case MoveTo, LineTo:
			pts = append(pts, seg.P)
		}
	}
	return pts
}
