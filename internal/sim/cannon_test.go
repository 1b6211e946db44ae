package sim

import "testing"

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// broadsideWorld puts an unrotated ship at the origin with one crewed
// starboard cannon
func broadsideWorld() *World {
	w := newTestWorld()
	s := w.Ship()
	s.X, s.Y, s.Rotation = 0, 0, 0
	s.Crew = 2 // main weapon takes one, the cannon the other
	s.InstallMount(MountCannon)
	return w
}

func TestCannonFiresAfterReload(t *testing.T) {
	w := broadsideWorld()
	raft(w, 500, 0)
	m := w.Ship().Mounts[0]
	frames := w.cfg.ReloadFrames(MountCannon, 1)

	for i := 0; i < frames-1; i++ {
		w.StepCrewAndAutoFire()
	}
	if m.AssignedCrew != 1 {
		t.Fatalf("cannon should have one crew, got %d", m.AssignedCrew)
	}
	if len(w.Projectiles()) != 0 {
		t.Fatalf("cannon fired early, loaded=%f", m.Loaded)
	}

	w.StepCrewAndAutoFire()
	if len(w.Projectiles()) != 1 {
		t.Fatalf("expected one shot after %d ticks, got %d", frames, len(w.Projectiles()))
	}
	if m.Loaded != 0 {
		t.Errorf("loaded should reset after firing, got %f", m.Loaded)
	}
	p := w.Projectiles()[0]
	if p.VX <= 0 || p.IsEnemy {
		t.Errorf("shot should head toward the target, vx=%f", p.VX)
	}
}

func TestCannonHoldsChargeWithoutTarget(t *testing.T) {
	w := broadsideWorld()
	e := raft(w, -300, 0) // off the starboard arc
	m := w.Ship().Mounts[0]

	for i := 0; i < 300; i++ {
		w.StepCrewAndAutoFire()
	}
	if m.Loaded != 100 || !m.Holding {
		t.Fatalf("cannon should hold a full charge, loaded=%f holding=%v", m.Loaded, m.Holding)
	}
	if len(w.Projectiles()) != 0 {
		t.Fatal("cannon should not fire without a target")
	}
	if n := countEvents(w.DrainEvents(), EvtMountReady); n != 1 {
		t.Errorf("expected one ready event, got %d", n)
	}

	e.X = 300
	w.StepCrewAndAutoFire()
	if len(w.Projectiles()) != 1 {
		t.Error("held charge should fire as soon as a target enters the arc")
	}
	if m.Holding {
		t.Error("mount should stop holding after firing")
	}
}

func TestCannonIgnoresOutOfRange(t *testing.T) {
	w := broadsideWorld()
	raft(w, w.cfg.CannonRange+200, 0)

	if w.findTarget(w.Ship().Mounts[0]) != nil {
		t.Error("enemy beyond range should not be targeted")
	}
}

func TestMountShotKillsRaftAndPaysReward(t *testing.T) {
	w := broadsideWorld()
	e := raft(w, 200, 0)
	w.addShot(NewMountShot(w.Config(), 0, 0, w.cfg.CannonSpeed, 0, w.cfg.CannonDamage))
	w.DrainEvents()

	for i := 0; i < 60 && !e.Dead; i++ {
		w.StepProjectilePhysics()
	}
	if !e.Dead {
		t.Fatal("mount shot should destroy the raft")
	}
	if w.Gold() != w.cfg.RaftReward || w.Kills() != 1 {
		t.Errorf("expected %d gold and 1 kill, got %d gold %d kills", w.cfg.RaftReward, w.Gold(), w.Kills())
	}
	events := w.DrainEvents()
	if countEvents(events, EvtHit) != 1 || countEvents(events, EvtKill) != 1 {
		t.Errorf("expected one hit and one kill event, got %v", events)
	}
}

func TestShotHitsFirstEnemyInSpawnOrder(t *testing.T) {
	w := broadsideWorld()
	first := raft(w, 200, 0)
	second := raft(w, 200, 0)
	w.addShot(NewMountShot(w.Config(), 180, 0, 1, 0, 5))

	w.StepProjectilePhysics()

	if first.HP != first.MaxHP-5 {
		t.Errorf("first enemy should take the hit, hp=%f", first.HP)
	}
	if second.HP != second.MaxHP {
		t.Errorf("shot should damage only one enemy, second hp=%f", second.HP)
	}
	if w.Projectiles()[0].Active {
		t.Error("shot should be consumed by the hit")
	}
}
