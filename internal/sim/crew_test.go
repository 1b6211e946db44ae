package sim

import "testing"

func newTestWorld() *World {
	return NewWorld(DefaultConfig(), Arena{W: 1000, H: 800}, 1)
}

// raft places a stationary raft directly into the world
func raft(w *World, x, y float64) *Enemy {
	hp, speed, size := w.cfg.EnemyStats(EnemyRaft, 1)
	e := &Enemy{Type: EnemyRaft, X: x, Y: y, HP: hp, MaxHP: hp, Speed: speed, Size: size}
	w.AddEnemy(e)
	return e
}

func assignedTotal(s *Ship) int {
	return s.AssignedCrew() + s.IdleCrew
}

func TestCrewAllocationConservesCrew(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 10
	s.BilgeLevel = 2
	s.HP = 50
	s.InstallMount(MountCannon)
	s.InstallMount(MountCannon)
	s.InstallMount(MountSwivel)
	raft(w, s.X+200, s.Y)

	w.StepCrewAndAutoFire()

	if got := assignedTotal(s); got != s.Crew {
		t.Errorf("bilge+main+mounts+idle = %d, want %d", got, s.Crew)
	}
	if s.BilgeCrew != 2 {
		t.Errorf("bilge should be capped by its level, got %d", s.BilgeCrew)
	}
	if s.MainCannonCrew != 1 {
		t.Errorf("main weapon should take level+1 crew, got %d", s.MainCannonCrew)
	}
	for _, m := range s.Mounts {
		if m.AssignedCrew > w.cfg.MountCrewCap {
			t.Errorf("mount %d over cap: %d", m.SlotIndex, m.AssignedCrew)
		}
	}
}

func TestCrewAllocationMountCap(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 20
	s.InstallMount(MountCannon)

	w.StepCrewAndAutoFire()

	if s.Mounts[0].AssignedCrew != w.cfg.MountCrewCap {
		t.Errorf("expected mount crew %d, got %d", w.cfg.MountCrewCap, s.Mounts[0].AssignedCrew)
	}
	if want := 20 - 1 - w.cfg.MountCrewCap; s.IdleCrew != want {
		t.Errorf("expected %d idle crew, got %d", want, s.IdleCrew)
	}
}

func TestCrewAllocationPrefersTargetedMounts(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.X, s.Y, s.Rotation = 0, 0, 0
	s.Crew = 2                  // one goes to the main weapon
	s.InstallMount(MountCannon) // starboard
	s.InstallMount(MountCannon) // port
	raft(w, -300, 0)

	w.StepCrewAndAutoFire()

	if s.Mounts[1].AssignedCrew != 1 {
		t.Errorf("port cannon with a target should get the crew, got %d", s.Mounts[1].AssignedCrew)
	}
	if s.Mounts[0].AssignedCrew != 0 {
		t.Errorf("starboard cannon without a target should be left empty, got %d", s.Mounts[0].AssignedCrew)
	}
}

func TestCriticalHullPullsWholeCrew(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 6
	s.BilgeLevel = 10
	s.HP = 20

	w.StepCrewAndAutoFire()

	if s.BilgeCrew != 6 {
		t.Errorf("critical hull should send all crew to the bilge, got %d", s.BilgeCrew)
	}
	if s.MainCannonCrew != 0 || s.IdleCrew != 0 {
		t.Error("nothing should be left for other stations")
	}
}

func TestBilgeRepairPulse(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 1
	s.BilgeLevel = 1
	s.HP = 90

	for i := 0; i < w.cfg.RepairInterval-1; i++ {
		w.StepCrewAndAutoFire()
	}
	if s.HP != 90 {
		t.Fatalf("no repair expected before the interval, hp=%f", s.HP)
	}
	w.DrainEvents()

	w.StepCrewAndAutoFire()
	if s.HP != 91 {
		t.Errorf("expected hp 91 after one pulse, got %f", s.HP)
	}
	repaired := false
	for _, ev := range w.DrainEvents() {
		if ev.Kind == EvtRepair {
			repaired = true
		}
	}
	if !repaired {
		t.Error("expected a repair event")
	}
}

func TestNoCrewWorkWhileSinking(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 5
	s.InstallMount(MountCannon)
	s.Mounts[0].AssignedCrew = 2
	s.Sinking = true

	w.StepCrewAndAutoFire()
	if s.Mounts[0].AssignedCrew != 2 || s.Mounts[0].Loaded != 0 {
		t.Error("crew step should be skipped while sinking")
	}
}

func TestReloadFrames(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		t    MountType
		crew int
		want int
	}{
		{MountCannon, 1, 240},
		{MountCannon, 2, 210},
		{MountCannon, 10, 90},
		{MountSwivel, 1, 120},
		{MountSwivel, 4, 45},
	}
	for _, c := range cases {
		if got := cfg.ReloadFrames(c.t, c.crew); got != c.want {
			t.Errorf("ReloadFrames(%s, %d) = %d, want %d", c.t, c.crew, got, c.want)
		}
	}
}

func TestMountOnMissingSlotIsSkipped(t *testing.T) {
	w := newTestWorld()
	s := w.Ship()
	s.Crew = 3
	s.Mounts = append(s.Mounts, &Mount{SlotIndex: 42, Loaded: 100})
	raft(w, s.X+200, s.Y)

	for i := 0; i < 5; i++ {
		w.StepCrewAndAutoFire()
	}

	if s.Mounts[0].AssignedCrew != 0 {
		t.Errorf("mount without a slot should get no crew, got %d", s.Mounts[0].AssignedCrew)
	}
	if want := s.Crew - s.MainCannonCrew - s.BilgeCrew; s.IdleCrew != want {
		t.Errorf("expected %d idle crew, got %d", want, s.IdleCrew)
	}
	if len(w.Projectiles()) != 0 {
		t.Errorf("mount without a slot fired %d shots", len(w.Projectiles()))
	}
	if n := countEvents(w.DrainEvents(), EvtBoom); n != 0 {
		t.Errorf("expected no gunfire, got %d boom events", n)
	}
}
