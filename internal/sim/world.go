// Package sim is the deterministic combat core: one World per session,
// stepped a fixed tick at a time, publishing snapshots and feedback events.
package sim

import (
	"math"
	"math/rand"
)

// MaxArenaDim is the largest arena edge a world accepts; bigger viewports
// are clamped to it
const MaxArenaDim = 8192

// maxBufferedEvents bounds the event buffer when nobody drains it
const maxBufferedEvents = 4096

// World owns every entity of one combat session and advances it one fixed
// tick at a time. It is not safe for concurrent use; hosts serialise access.
type World struct {
	cfg   Config
	arena Arena
	rng   *rand.Rand

	ship       *Ship
	enemies    []*Enemy
	shots      []*Projectile
	enemyShots []*Projectile
	pending    []FlingShot

	director Director
	grid     *SpatialGrid
	refBuf   []EntityRef
	events   []Event

	frame  uint64
	nextID uint32
	gold   int
	kills  int
}

// NewWorld creates a world with a fresh tier 1 ship centred low in the
// arena. The same seed and inputs always produce the same run.
func NewWorld(cfg Config, arena Arena, seed int64) *World {
	w := &World{
		cfg:   cfg,
		arena: clampArena(arena),
		rng:   rand.New(rand.NewSource(seed)),
		ship:  NewShip(&cfg),
	}
	w.grid = NewSpatialGrid(w.arena.W, w.arena.H, w.gridMargin())
	w.centreShip()
	return w
}

func clampArena(a Arena) Arena {
	a.W = math.Min(a.W, MaxArenaDim)
	a.H = math.Min(a.H, MaxArenaDim)
	return a
}

func (w *World) gridMargin() float64 {
	return w.cfg.BossOutOfBounds + w.cfg.SpawnMargin + w.cfg.FarEdgeMargin
}

func (w *World) centreShip() {
	w.ship.X = w.arena.W / 2
	w.ship.Y = w.arena.H * 0.6
}

// Resize changes the arena and re-centres the ship. Live entities keep
// their positions. Edges beyond MaxArenaDim are clamped.
func (w *World) Resize(arena Arena) {
	if !(arena.W > 0) || !(arena.H > 0) {
		return
	}
	w.arena = clampArena(arena)
	w.grid = NewSpatialGrid(arena.W, arena.H, w.gridMargin())
	w.centreShip()
}

func (w *World) Config() *Config    { return &w.cfg }
func (w *World) Arena() Arena       { return w.arena }
func (w *World) Ship() *Ship        { return w.ship }
func (w *World) Enemies() []*Enemy  { return w.enemies }
func (w *World) Frame() uint64      { return w.frame }
func (w *World) Gold() int          { return w.gold }
func (w *World) Kills() int         { return w.kills }
func (w *World) Wave() int          { return w.director.Wave }
func (w *World) Director() Director { return w.director }

// Projectiles returns live friendly shots
func (w *World) Projectiles() []*Projectile { return w.shots }

// EnemyProjectiles returns live hostile shots
func (w *World) EnemyProjectiles() []*Projectile { return w.enemyShots }

// WaveActive reports whether the director still has enemies to spawn or
// enemies of the wave are alive
func (w *World) WaveActive() bool { return w.director.Active }

// AddGold credits gold outside combat
func (w *World) AddGold(n int) {
	if n > 0 {
		w.gold += n
	}
}

// SpendGold debits n gold if the balance covers it
func (w *World) SpendGold(n int) bool {
	if n < 0 || n > w.gold {
		return false
	}
	w.gold -= n
	return true
}

// DrainEvents returns the events emitted since the last drain and clears
// the buffer
func (w *World) DrainEvents() []Event {
	ev := w.events
	w.events = nil
	return ev
}

func (w *World) emit(ev Event) {
	w.events = append(w.events, ev)
}

func (w *World) id() uint32 {
	w.nextID++
	return w.nextID
}

// AddEnemy places an enemy directly, bypassing the wave director
func (w *World) AddEnemy(e *Enemy) {
	w.addEnemy(e)
}

func (w *World) addEnemy(e *Enemy) {
	e.ID = w.id()
	w.enemies = append(w.enemies, e)
	w.emit(Event{Kind: EvtEnemySpawned, X: e.X, Y: e.Y, Enemy: e.Type})
}

func (w *World) liveEnemies() int {
	n := 0
	for _, e := range w.enemies {
		if !e.Dead {
			n++
		}
	}
	return n
}

func (w *World) addShot(p *Projectile) bool {
	if w.cfg.MaxPlayerShots > 0 && len(w.shots) >= w.cfg.MaxPlayerShots {
		return false
	}
	p.ID = w.id()
	w.shots = append(w.shots, p)
	return true
}

func (w *World) addEnemyShot(p *Projectile) bool {
	if w.cfg.MaxEnemyShots > 0 && len(w.enemyShots) >= w.cfg.MaxEnemyShots {
		return false
	}
	p.ID = w.id()
	w.enemyShots = append(w.enemyShots, p)
	return true
}

// QueueFling records a player launch request. It is consumed at the start
// of the next tick. Rejected while sinking, on cooldown or when a shot is
// already queued.
func (w *World) QueueFling(req FlingShot) bool {
	if w.ship.Sinking || w.ship.MainCD > 0 || len(w.pending) > 0 {
		return false
	}
	if req.VX == 0 && req.VY == 0 {
		return false
	}
	w.pending = append(w.pending, req)
	return true
}

func (w *World) consumeFlings() {
	if len(w.pending) == 0 {
		return
	}
	pending := w.pending
	w.pending = w.pending[:0]
	s := w.ship
	if s.Sinking {
		return
	}
	for _, req := range pending {
		fired := false
		for _, p := range flingProjectiles(&w.cfg, s, req) {
			if w.addShot(p) {
				fired = true
			}
		}
		if fired {
			s.MainCD = s.MainWeaponStats(&w.cfg).Cooldown
			w.emit(Event{Kind: EvtMainFired, X: s.X, Y: s.Y})
			w.emit(Event{Kind: EvtBoom, X: s.X, Y: s.Y})
		}
	}
}

// Tick advances the world by one frame in a fixed order: queued flings,
// helm, crew and auto-fire, wave director, enemy AI, projectile physics and
// collisions, pruning, then the sinking counters.
func (w *World) Tick() {
	w.frame++
	if w.ship.MainCD > 0 {
		w.ship.MainCD--
	}
	w.consumeFlings()
	w.StepHelm()
	w.StepCrewAndAutoFire()
	w.stepDirector()
	w.StepEnemyAI()
	w.StepProjectilePhysics()
	w.prune()
	w.ship.advanceSinking(&w.cfg)

	if n := len(w.events); n > maxBufferedEvents {
		w.events = append(w.events[:0], w.events[n-maxBufferedEvents:]...)
	}
}

// StepEnemyAI updates every live enemy and resolves contact, escape and
// enemy fire
func (w *World) StepEnemyAI() {
	if w.ship.Sinking {
		return
	}
	for _, e := range w.enemies {
		if e.Dead {
			continue
		}
		res := e.Update(w.ship, w.arena, w.director.Wave, &w.cfg, w.rng)
		if res.Contact {
			w.emit(Event{Kind: EvtCrunch, X: e.X, Y: e.Y, Enemy: e.Type})
			w.ApplyShipDamage(w.cfg.ContactDamage)
		}
		if res.Escaped {
			w.emit(Event{Kind: EvtEnemyEscaped, X: e.X, Y: e.Y, Enemy: e.Type})
		}
		for _, p := range res.Shots {
			if w.addEnemyShot(p) {
				w.emit(Event{Kind: EvtBoom, X: p.X, Y: p.Y, Enemy: e.Type})
			}
		}
	}
}

// StepProjectilePhysics integrates every shot, reports water impacts and
// resolves hull hits. Each shot damages at most one target.
func (w *World) StepProjectilePhysics() {
	cfg := &w.cfg
	s := w.ship
	hull := s.Hull().Scaled(cfg.ShipHitboxScale)

	for _, p := range w.enemyShots {
		if !p.Active {
			continue
		}
		if imp, ok := p.Update(cfg, w.frame); ok {
			w.emit(Event{Kind: EvtSpray, X: imp.X, Y: imp.Y})
		}
		if !p.Active || s.Sinking || !p.InHitWindow(cfg) {
			continue
		}
		if CheckHullPointCollision(s.X, s.Y, s.Rotation, hull, p.X, p.Y) {
			p.Active = false
			w.emit(Event{Kind: EvtCrunch, X: p.X, Y: p.Y})
			w.ApplyShipDamage(p.Damage)
		}
	}

	w.grid.Clear()
	for i, e := range w.enemies {
		if !e.Dead {
			w.grid.InsertCircle(e.X, e.Y, e.Size, EntityRef{Kind: EntityEnemy, Idx: i})
		}
	}

	for _, p := range w.shots {
		if !p.Active {
			continue
		}
		if imp, ok := p.Update(cfg, w.frame); ok {
			w.emit(Event{Kind: EvtSplash, X: imp.X, Y: imp.Y})
		}
		if !p.Active || !p.InHitWindow(cfg) {
			continue
		}
		if e := w.firstEnemyHit(p); e != nil {
			p.Active = false
			w.emit(Event{Kind: EvtHit, X: p.X, Y: p.Y, Amount: p.Damage, Enemy: e.Type})
			w.damageEnemy(e, p.Damage)
		}
	}
}

// firstEnemyHit returns the live enemy earliest in spawn order that the
// shot overlaps
func (w *World) firstEnemyHit(p *Projectile) *Enemy {
	reach := p.Size + w.cfg.HitMargin
	w.refBuf = w.grid.QueryBuf(p.X, p.Y, reach, w.refBuf[:0])
	best := -1
	for _, ref := range w.refBuf {
		if ref.Kind != EntityEnemy || ref.Idx >= len(w.enemies) {
			continue
		}
		if best >= 0 && ref.Idx >= best {
			continue
		}
		e := w.enemies[ref.Idx]
		if e.Dead {
			continue
		}
		if CheckCollision(p.X, p.Y, reach, e.X, e.Y, e.Size) {
			best = ref.Idx
		}
	}
	if best < 0 {
		return nil
	}
	return w.enemies[best]
}

func (w *World) damageEnemy(e *Enemy, amount float64) {
	if !e.TakeDamage(amount) {
		return
	}
	reward := w.cfg.Reward(e.Type, w.director.Wave)
	w.gold += reward
	w.kills++
	w.emit(Event{Kind: EvtKill, X: e.X, Y: e.Y, Gold: reward, Enemy: e.Type})
	if e.Type == EnemyBoss {
		w.emit(Event{Kind: EvtBossDefeated, X: e.X, Y: e.Y, Gold: reward, Wave: w.director.Wave})
	}
}

// ApplyShipDamage is the single entry point for hull damage. Ignored while
// sinking; starts sinking exactly once when hp reaches zero.
func (w *World) ApplyShipDamage(amount float64) {
	s := w.ship
	if s.Sinking || amount <= 0 {
		return
	}
	sank := s.TakeDamage(amount)
	w.emit(Event{Kind: EvtShipHit, X: s.X, Y: s.Y, Amount: amount})
	if sank {
		w.pending = w.pending[:0]
		w.emit(Event{Kind: EvtShipSinking, X: s.X, Y: s.Y})
	}
}

// prune drops dead enemies and spent shots, preserving spawn order
func (w *World) prune() {
	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if !e.Dead {
			enemies = append(enemies, e)
		}
	}
	for i := len(enemies); i < len(w.enemies); i++ {
		w.enemies[i] = nil
	}
	w.enemies = enemies
	w.shots = pruneShots(w.shots)
	w.enemyShots = pruneShots(w.enemyShots)
}

func pruneShots(shots []*Projectile) []*Projectile {
	live := shots[:0]
	for _, p := range shots {
		if p.Active {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(shots); i++ {
		shots[i] = nil
	}
	return live
}
