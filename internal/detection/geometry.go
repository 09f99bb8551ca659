package detection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConvexHull computes the convex hull of a point set using a Graham scan.
//
// # Algorithm
//
//  1. Pick the pivot: the point with the largest Y, leftmost on ties.
//  2. Sort the remaining points by polar angle around the pivot, nearer
//     points first on equal angles.
//  3. Sweep, popping the last hull point while the last three make a
//     non-left turn (cross product ≤ 0).
//
// The result is strictly convex with no collinear vertices, and its signed
// shoelace area is positive in image coordinates (Y down). Input with fewer
// than 3 points is returned unchanged. The input slice is not modified.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		return points
	}

	pivot := points[0]
	for _, p := range points[1:] {
		if p.Y > pivot.Y || (p.Y == pivot.Y && p.X < pivot.X) {
			pivot = p
		}
	}

	type polar struct {
		p     Point
		angle float64
		dist  int
	}
	rest := make([]polar, 0, len(points)-1)
	for _, p := range points {
		if p == pivot {
			continue
		}
		dx, dy := p.X-pivot.X, p.Y-pivot.Y
		rest = append(rest, polar{p: p, angle: math.Atan2(float64(dy), float64(dx)), dist: dx*dx + dy*dy})
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].angle != rest[j].angle {
			return rest[i].angle < rest[j].angle
		}
		return rest[i].dist < rest[j].dist
	})

	hull := []Point{pivot}
	for _, r := range rest {
		for len(hull) > 1 && cross(hull[len(hull)-2], hull[len(hull)-1], r.p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, r.p)
	}

	return hull
}

// cross computes the cross product of vectors OA and OB.
func cross(o, a, b Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// PolygonArea returns the absolute shoelace area of a closed polygon.
// Fewer than 3 vertices yields 0.
func PolygonArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(float64(sum)) / 2
}

// Perimeter returns the length of a closed polygon, including the edge from
// the last vertex back to the first.
func Perimeter(poly []Point) float64 {
	n := len(poly)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += distance(poly[i], poly[(i+1)%n])
	}
	return total
}

// Circularity returns min(1, 4π·area/perimeter²). A perfect circle scores 1;
// a zero perimeter scores 0.
func Circularity(area, perimeter float64) float64 {
	if perimeter == 0 {
		return 0
	}
	return math.Min(1, 4*math.Pi*area/(perimeter*perimeter))
}

// BoundingBoxOf returns the axis-aligned box spanning the points. Width and
// Height are max−min, so a single point has a zero-sized box.
func BoundingBoxOf(points []Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []Point) PointF {
	if len(points) == 0 {
		return PointF{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}
	return PointF{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// Simplify reduces a polyline with the Douglas-Peucker algorithm.
//
// The point farthest from the chord between the first and last points is
// kept and both halves are simplified recursively while that distance exceeds
// epsilon; otherwise the run collapses to its two endpoints. The endpoints
// are always kept, so to simplify a closed ring pass it with its first point
// repeated at the end.
func Simplify(path []Point, epsilon float64) []Point {
	if len(path) <= 2 {
		return path
	}

	dmax := 0.0
	index := 0
	end := len(path) - 1
	for i := 1; i < end; i++ {
		d := perpendicularDistance(path[i], path[0], path[end])
		if d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax > epsilon {
		left := Simplify(path[:index+1], epsilon)
		right := Simplify(path[index:], epsilon)

		result := make([]Point, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []Point{path[0], path[end]}
}

// perpendicularDistance returns the distance from p to the line through a and
// b, or the distance from p to a when a and b coincide.
func perpendicularDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	if dx == 0 && dy == 0 {
		return distance(p, a)
	}

	num := math.Abs(dy*float64(p.X) - dx*float64(p.Y) + float64(b.X*a.Y-b.Y*a.X))
	return num / math.Hypot(dx, dy)
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}
