package geom

import "math"

// Polygon2 is a closed planar polygon given as an ordered, non-repeating
// vertex list in a local 2D coordinate system (see ProjectPlanar).
type Polygon2 struct {
	Vertices []Vector2
}

// Vector2 is a point in a plane.
type Vector2 struct {
	X, Y float64
}

// ProjectPlanar projects a set of 3D points onto the plane perpendicular
// to normal, centered at origin, returning 2D coordinates in a basis
// (ex, ey, normal) built from an arbitrary vector not parallel to normal.
// This is how the pair validator (spec.md §4.6) flattens two bases'
// ring-plus-exocyclic atom polygons before computing overlap area.
func ProjectPlanar(points []Vector3, origin, normal Vector3) Polygon2 {
	n := normal.Normalize()
	// Pick a helper vector not (nearly) parallel to n.
	helper := Vector3{1, 0, 0}
	if math.Abs(n.Dot(helper)) > 0.9 {
		helper = Vector3{0, 1, 0}
	}
	ex := helper.Sub(n.Scale(helper.Dot(n))).Normalize()
	ey := n.Cross(ex)

	out := Polygon2{Vertices: make([]Vector2, len(points))}
	for i, p := range points {
		d := p.Sub(origin)
		out.Vertices[i] = Vector2{X: d.Dot(ex), Y: d.Dot(ey)}
	}
	return out
}

// area returns the signed area of a simple polygon via the shoelace
// formula. Positive for counter-clockwise vertex order.
func (p Polygon2) area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// ensureCCW returns p with vertices reordered counter-clockwise if
// necessary; Sutherland-Hodgman clipping requires a consistent winding
// for the clip polygon.
func (p Polygon2) ensureCCW() Polygon2 {
	if p.area() >= 0 {
		return p
	}
	rev := make([]Vector2, len(p.Vertices))
	for i, v := range p.Vertices {
		rev[len(p.Vertices)-1-i] = v
	}
	return Polygon2{Vertices: rev}
}

// OverlapArea returns the area of the intersection of two planar
// polygons, via Sutherland-Hodgman clipping of subject against clip.
//
// spec.md §4.5's open question flags that the x3dna reference uses a
// proprietary weighted-arrangement algorithm; this module uses plain
// Sutherland-Hodgman, which the spec notes is expected to agree with the
// reference to within 1e-6 on convex inputs (base ring polygons are
// convex to the precision this analysis needs). Concave exocyclic
// decorations can produce a small discrepancy on pathological inputs;
// see DESIGN.md.
func OverlapArea(subject, clip Polygon2) float64 {
	if len(subject.Vertices) < 3 || len(clip.Vertices) < 3 {
		return 0
	}
	clip = clip.ensureCCW()

	output := subject.Vertices
	cn := len(clip.Vertices)
	for i := 0; i < cn; i++ {
		if len(output) == 0 {
			break
		}
		a := clip.Vertices[i]
		b := clip.Vertices[(i+1)%cn]
		output = clipEdge(output, a, b)
	}

	result := Polygon2{Vertices: output}
	area := result.area()
	if area < 0 {
		area = -area
	}
	return area
}

// clipEdge clips a polygon (as a vertex slice) against the half-plane to
// the left of directed edge a->b, per one step of Sutherland-Hodgman.
func clipEdge(poly []Vector2, a, b Vector2) []Vector2 {
	var out []Vector2
	n := len(poly)
	if n == 0 {
		return out
	}
	edge := Vector2{b.X - a.X, b.Y - a.Y}
	inside := func(p Vector2) bool {
		cross := edge.X*(p.Y-a.Y) - edge.Y*(p.X-a.X)
		return cross >= 0
	}
	intersect := func(p, q Vector2) Vector2 {
		d := Vector2{q.X - p.X, q.Y - p.Y}
		denom := edge.X*d.Y - edge.Y*d.X
		if math.Abs(denom) < 1e-15 {
			return p
		}
		t := (edge.X*(p.Y-a.Y) - edge.Y*(p.X-a.X)) / denom
		return Vector2{p.X + t*d.X, p.Y + t*d.Y}
	}

	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := inside(cur)
		prevIn := inside(prev)
		if curIn {
			if !prevIn {
				out = append(out, intersect(prev, cur))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersect(prev, cur))
		}
	}
	return out
}
