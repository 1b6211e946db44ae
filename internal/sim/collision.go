package sim

import "math"

// CheckCollision checks if two circles overlap
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// HullBox is a rectangle centred on its entity, W across the beam and H along
// the keel, bow toward local -Y.
type HullBox struct {
	W, H float64
}

// Scaled returns the box grown by factor s on both axes
func (b HullBox) Scaled(s float64) HullBox {
	return HullBox{W: b.W * s, H: b.H * s}
}

// worldToLocal undoes the entity rotation for a world point
func worldToLocal(cx, cy, rot, px, py float64) (float64, float64) {
	dx := px - cx
	dy := py - cy
	cosR := math.Cos(-rot)
	sinR := math.Sin(-rot)
	return dx*cosR - dy*sinR, dx*sinR + dy*cosR
}

// CheckHullPointCollision checks if a point is inside a rotated hull box.
// (cx,cy) is the hull centre, rot its rotation.
func CheckHullPointCollision(cx, cy, rot float64, box HullBox, px, py float64) bool {
	lx, ly := worldToLocal(cx, cy, rot, px, py)
	return math.Abs(lx) <= box.W/2 && math.Abs(ly) <= box.H/2
}
