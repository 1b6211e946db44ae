package sim

import "math"

// loadEpsilon absorbs float drift when summing 100/reloadFrames
const loadEpsilon = 1e-6

// mountPose returns the world position and facing of a mount
func (w *World) mountPose(sl Slot) (x, y, facing float64) {
	s := w.ship
	x, y = localToWorld(s.X, s.Y, s.Rotation, sl.X, sl.Y)
	return x, y, s.Rotation + sl.Angle
}

func (c *Config) mountRange(t MountType) float64 {
	if t == MountSwivel {
		return c.SwivelRange
	}
	return c.CannonRange
}

// inArc reports whether bearing lies within the arc centred on facing
func inArc(bearing, facing, arc float64) bool {
	if arc >= 2*math.Pi {
		return true
	}
	return math.Abs(NormalizeAngle(bearing-facing)) <= arc/2
}

// findTarget returns the nearest live enemy inside the mount's range and
// arc, or nil. Allocation and firing share this rule.
func (w *World) findTarget(m *Mount) *Enemy {
	sl, ok := w.ship.slot(m)
	if !ok {
		return nil
	}
	mx, my, facing := w.mountPose(sl)
	rng := w.cfg.mountRange(sl.Type)
	bestD2 := rng * rng
	var best *Enemy
	for _, e := range w.enemies {
		if e.Dead {
			continue
		}
		d2 := DistanceSq(mx, my, e.X, e.Y)
		if d2 > bestD2 {
			continue
		}
		if !inArc(math.Atan2(e.Y-my, e.X-mx), facing, sl.Arc) {
			continue
		}
		if best == nil || d2 < bestD2 {
			bestD2 = d2
			best = e
		}
	}
	return best
}

// stepMounts loads every crewed mount and fires the full ones that have a
// target. A full mount without a target holds its charge.
func (w *World) stepMounts() {
	cfg := &w.cfg
	for _, m := range w.ship.Mounts {
		sl, ok := w.ship.slot(m)
		if !ok {
			continue
		}
		if m.AssignedCrew > 0 && m.Loaded < 100 {
			m.Loaded += 100 / float64(cfg.ReloadFrames(sl.Type, m.AssignedCrew))
		}
		if m.Loaded < 100-loadEpsilon {
			continue
		}
		m.Loaded = 100

		target := w.findTarget(m)
		if target == nil {
			if !m.Holding {
				m.Holding = true
				mx, my, _ := w.mountPose(sl)
				w.emit(Event{Kind: EvtMountReady, X: mx, Y: my})
			}
			continue
		}
		if w.fireMount(sl, target) {
			m.Loaded = 0
			m.Holding = false
		}
	}
}

// fireMount launches a mount shot at the target's current position
func (w *World) fireMount(sl Slot, target *Enemy) bool {
	cfg := &w.cfg
	mx, my, _ := w.mountPose(sl)
	speed, damage := cfg.CannonSpeed, cfg.CannonDamage
	if sl.Type == MountSwivel {
		speed, damage = cfg.SwivelSpeed, cfg.SwivelDamage
	}
	aim := math.Atan2(target.Y-my, target.X-mx)
	p := NewMountShot(cfg, mx, my, math.Cos(aim)*speed, math.Sin(aim)*speed, damage)
	if !w.addShot(p) {
		return false
	}
	w.emit(Event{Kind: EvtBoom, X: mx, Y: my})
	return true
}
