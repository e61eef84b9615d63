package geometry

import "math"

// Point3D is a position in building coordinates, metres.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Valid reports whether every coordinate is a finite number.
// NaN/Inf must be rejected at the model boundary, never inside the algorithms.
func (p Point3D) Valid() bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sub returns the vector p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Length returns the magnitude of p treated as a vector.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Dist returns the Euclidean distance between p and q.
func (p Point3D) Dist(q Point3D) float64 {
	return q.Sub(p).Length()
}

// cross returns the cross product p × q.
func (p Point3D) cross(q Point3D) Point3D {
	return Point3D{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// DistToSegment returns the minimal distance from p to the segment [a, b]
// using the clamped-projection method. A zero-length segment is treated
// as the single point a.
func (p Point3D) DistToSegment(a, b Point3D) float64 {
	seg := b.Sub(a)
	segLenSq := seg.X*seg.X + seg.Y*seg.Y + seg.Z*seg.Z
	if segLenSq == 0 {
		return p.Dist(a)
	}

	v := p.Sub(a)
	t := (v.X*seg.X + v.Y*seg.Y + v.Z*seg.Z) / segLenSq
	t = math.Max(0.0, math.Min(1.0, t))

	proj := Point3D{
		X: a.X + t*seg.X,
		Y: a.Y + t*seg.Y,
		Z: a.Z + t*seg.Z,
	}
	return p.Dist(proj)
}

// DistToLine returns the perpendicular distance from p to the infinite
// line through a and b (cross-product magnitude over line length).
// A degenerate line collapses to the distance to a.
func (p Point3D) DistToLine(a, b Point3D) float64 {
	line := b.Sub(a)
	lineLen := line.Length()
	if lineLen == 0 {
		return p.Dist(a)
	}
	return p.Sub(a).cross(line).Length() / lineLen
}

// PolylineLength sums the distances between consecutive points.
func PolylineLength(points []Point3D) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += points[i].Dist(points[i+1])
	}
	return total
}

// Round2 rounds to two decimals, the precision lengths are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
