package sim

import "math"

// StepCrewAndAutoFire allocates the crew pool as a priority waterfall
// (bilge, main weapon, mounts), applies bilge repair, then loads and fires
// the auto mounts. Skipped entirely while sinking.
func (w *World) StepCrewAndAutoFire() {
	s := w.ship
	if s.Sinking {
		return
	}
	avail := s.Crew
	if avail < 0 {
		avail = 0
	}

	s.BilgeCrew = 0
	if s.HP < s.MaxHP && s.BilgeLevel > 0 {
		s.BilgeCrew = minInt(bilgeDemand(s, &w.cfg), avail, s.BilgeLevel)
		avail -= s.BilgeCrew
	}
	w.stepRepair()

	s.MainCannonCrew = minInt(s.MainCannonLevel+1, avail)
	avail -= s.MainCannonCrew

	s.IdleCrew = w.assignMountCrew(avail)
	w.stepMounts()
}

// bilgeDemand is proportional to the hp deficit, and the whole crew once hp
// drops under the critical fraction
func bilgeDemand(s *Ship, cfg *Config) int {
	if s.MaxHP <= 0 {
		return 0
	}
	if s.HP < s.MaxHP*cfg.CriticalHPFrac {
		return s.Crew
	}
	deficit := (s.MaxHP - s.HP) / s.MaxHP
	n := int(math.Ceil(deficit * float64(s.Crew)))
	if n < 1 {
		n = 1
	}
	return n
}

// stepRepair applies a repair pulse every RepairInterval ticks while crew
// is working the pumps
func (w *World) stepRepair() {
	s := w.ship
	if s.BilgeCrew <= 0 {
		s.repairTimer = 0
		return
	}
	s.repairTimer++
	if s.repairTimer < w.cfg.RepairInterval {
		return
	}
	s.repairTimer = 0
	before := s.HP
	s.HP = math.Min(s.MaxHP, s.HP+float64(s.BilgeCrew*s.BilgeLevel)*w.cfg.RepairPerCrew)
	if s.HP > before {
		w.emit(Event{Kind: EvtRepair, X: s.X, Y: s.Y, Amount: s.HP - before})
	}
}

// assignMountCrew hands out crew one at a time, cycling over the mounts that
// currently have a target before the idle ones. Returns the crew left over.
func (w *World) assignMountCrew(avail int) int {
	s := w.ship
	var targeted, idle []*Mount
	for _, m := range s.Mounts {
		m.AssignedCrew = 0
		if _, ok := s.slot(m); !ok {
			continue
		}
		if w.findTarget(m) != nil {
			targeted = append(targeted, m)
		} else {
			idle = append(idle, m)
		}
	}
	order := append(targeted, idle...)
	if len(order) == 0 {
		return avail
	}

	limit := w.cfg.MountCrewCap
	for avail > 0 {
		gave := false
		for _, m := range order {
			if avail == 0 {
				break
			}
			if limit > 0 && m.AssignedCrew >= limit {
				continue
			}
			m.AssignedCrew++
			avail--
			gave = true
		}
		if !gave {
			break
		}
	}
	return avail
}

// ReloadFrames is the reload time for a mount type crewed by n; more crew is
// strictly faster down to the type's floor
func (c *Config) ReloadFrames(t MountType, crew int) int {
	base, floor := c.CannonReload, c.CannonFloor
	if t == MountSwivel {
		base, floor = c.SwivelReload, c.SwivelFloor
	}
	if crew < 1 {
		crew = 1
	}
	frames := base - c.ReloadPerCrew*(crew-1)
	if frames < floor {
		frames = floor
	}
	if frames < 1 {
		frames = 1
	}
	return frames
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	if m < 0 {
		return 0
	}
	return m
}
