package geometry

import "math"

// Polygon is an ordered sequence of points; for a closed contour the
// first and last points are numerically equal.
type Polygon []Point

// IsClosed reports whether the first and last points coincide within a
// small tolerance.
func (p Polygon) IsClosed() bool {
	if len(p) < 2 {
		return false
	}
	return p[0].DistSq(p[len(p)-1]) < 1e-12
}

// Open strips the duplicated closing vertex, if present, returning a
// polygon with a distinct first and last point.
func (p Polygon) Open() Polygon {
	if p.IsClosed() && len(p) > 1 {
		return p[:len(p)-1]
	}
	return p
}

// Close appends a copy of the first vertex if the polygon isn't already
// closed.
func (p Polygon) Close() Polygon {
	if len(p) == 0 || p.IsClosed() {
		return p
	}
	out := make(Polygon, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// Offset displaces every vertex of a closed polygon along its averaged
// edge-normal by signed distance d (positive = outward). Polygons with
// fewer than 3 vertices are returned unchanged. No topology cleanup is
// performed; self-intersection from an over-large inset is the caller's
// responsibility.
func Offset(poly Polygon, d float64) Polygon {
	open := poly.Open()
	n := len(open)
	if n < 3 {
		return poly
	}

	// Left normals point outward only for clockwise winding; flip d for a
	// counter-clockwise polygon (positive shoelace area) so that positive
	// d grows the polygon whatever its winding.
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := open[i], open[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	if area > 0 {
		d = -d
	}

	out := make(Polygon, n)
	for i := 0; i < n; i++ {
		prev := open[(i-1+n)%n]
		cur := open[i]
		next := open[(i+1)%n]

		ePrev := cur.Sub(prev).Normalize()
		eNext := next.Sub(cur).Normalize()

		nPrev := ePrev.LeftNormal()
		nNext := eNext.LeftNormal()

		avg := nPrev.Add(nNext).Normalize()
		if avg.Length() < 1e-12 {
			avg = nPrev
		}

		cosine := nPrev.Dot(nNext)
		m := 1.0 / math.Max(0.1, (1+cosine)/2)
		if m > 2 {
			m = 2
		}

		out[i] = cur.Add(avg.Scale(d * m))
	}

	if poly.IsClosed() {
		closed := make(Polygon, n+1)
		copy(closed, out)
		closed[n] = out[0]
		return closed
	}
	return out
}
