package sim

import "math"

// StepHelm turns the ship toward the nearer broadside heading of the
// current target: the live boss, else the centroid of live enemies. With
// no enemies the heading is held.
func (w *World) StepHelm() {
	s := w.ship
	if !s.HasCaptain || s.Sinking {
		return
	}
	tx, ty, ok := w.helmTarget()
	if !ok {
		return
	}
	bearing := math.Atan2(ty-s.Y, tx-s.X)
	s.Rotation = NormalizeAngle(s.Rotation + HelmCorrection(s.Rotation, bearing)*w.cfg.HelmGain)
}

// HelmCorrection returns the signed turn from rotation to whichever of the
// two broadside headings (bearing, bearing+PI) is closer
func HelmCorrection(rotation, bearing float64) float64 {
	d1 := NormalizeAngle(bearing - rotation)
	d2 := NormalizeAngle(bearing + math.Pi - rotation)
	if math.Abs(d2) < math.Abs(d1) {
		return d2
	}
	return d1
}

func (w *World) helmTarget() (float64, float64, bool) {
	for _, e := range w.enemies {
		if !e.Dead && e.Type == EnemyBoss {
			return e.X, e.Y, true
		}
	}
	var sumX, sumY float64
	count := 0
	for _, e := range w.enemies {
		if e.Dead {
			continue
		}
		sumX += e.X
		sumY += e.Y
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return sumX / float64(count), sumY / float64(count), true
}
