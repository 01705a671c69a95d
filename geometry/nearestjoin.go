package geometry

// NearestJoin orders a set of closed polygons starting from head
// position (0,0): repeatedly picks the polygon whose closest vertex is
// nearest the current head (squared distance, ties broken by iteration
// order), rotates that polygon so that vertex becomes its start (and
// end, preserving closure), emits it, and advances the head to its last
// point.
//
// Complexity is O(N*V) where N is polygon count and V total vertex
// count, acceptable for design sizes of tens to a few hundred polygons.
func NearestJoin(polygons []Polygon) []Polygon {
	remaining := make([]Polygon, len(polygons))
	copy(remaining, polygons)

	out := make([]Polygon, 0, len(polygons))
	head := Point{0, 0}

	for len(remaining) > 0 {
		bestPoly := -1
		bestVertex := -1
		bestDist := -1.0

		for pi, poly := range remaining {
			for vi, v := range poly {
				d := head.DistSq(v)
				if bestPoly == -1 || d < bestDist {
					bestDist = d
					bestPoly = pi
					bestVertex = vi
				}
			}
		}

		if bestPoly == -1 {
			break
		}

		rotated := rotateClosedPolygon(remaining[bestPoly], bestVertex)
		out = append(out, rotated)
		if len(rotated) > 0 {
			head = rotated[len(rotated)-1]
		}

		remaining = append(remaining[:bestPoly], remaining[bestPoly+1:]...)
	}

	return out
}

// rotateClosedPolygon rotates a closed polygon so that the vertex at
// index i becomes its start. The duplicated closing vertex is stripped
// before rotation and re-appended after, or the winding would break.
func rotateClosedPolygon(poly Polygon, i int) Polygon {
	open := poly.Open()
	n := len(open)
	if n == 0 {
		return poly
	}
	i = i % n

	rotated := make(Polygon, n)
	for k := 0; k < n; k++ {
		rotated[k] = open[(i+k)%n]
	}
	return rotated.Close()
}
