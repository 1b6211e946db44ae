package sim

import (
	"math"
	"math/rand"
)

// EnemyType is the closed set of enemy variants; behaviour dispatches on it
type EnemyType string

const (
	EnemyRaft    EnemyType = "raft"
	EnemyGunboat EnemyType = "gunboat"
	EnemySerpent EnemyType = "serpent"
	EnemyBoss    EnemyType = "boss"
)

// Enemy is an AI-controlled vessel. Sway is used by serpents; OrbitDir,
// CurrentRotation and ContactCD only by the boss.
type Enemy struct {
	ID     uint32
	Type   EnemyType
	X, Y   float64
	Angle  float64
	Speed  float64
	Size   float64
	HP     float64
	MaxHP  float64
	Reload int
	Dead   bool

	Sway            float64
	OrbitDir        float64
	CurrentRotation float64
	ContactCD       int
}

// enemyTick is what an enemy asks the world to resolve after its update
type enemyTick struct {
	Contact bool
	Escaped bool
	Shots   []*Projectile
}

// NewEnemy spawns an enemy on the top, left or right edge of the arena
// (uniformly), or above the arena centre for the boss
func NewEnemy(t EnemyType, arena Arena, wave int, cfg *Config, rng *rand.Rand) *Enemy {
	hp, speed, size := cfg.EnemyStats(t, wave)
	e := &Enemy{
		Type:  t,
		HP:    hp,
		MaxHP: hp,
		Speed: speed,
		Size:  size,
		Sway:  rng.Float64() * 100,
	}

	margin := cfg.SpawnMargin
	switch rng.Intn(3) {
	case 0: // top
		e.X = rng.Float64() * arena.W
		e.Y = -margin
	case 1: // left
		e.X = -margin
		e.Y = rng.Float64() * arena.H * cfg.SideSpawnDepth
	default: // right
		e.X = arena.W + margin
		e.Y = rng.Float64() * arena.H * cfg.SideSpawnDepth
	}

	if t == EnemyBoss {
		e.X = arena.W / 2
		e.Y = cfg.BossSpawnY
		e.OrbitDir = 1
		if rng.Float64() < 0.5 {
			e.OrbitDir = -1
		}
		e.Angle = math.Pi / 2
		e.CurrentRotation = e.Angle
		e.Reload = cfg.BossReload(wave)
	}
	return e
}

// Update runs one tick of movement, contact and fire control. The caller
// applies contact damage and enqueues shots.
func (e *Enemy) Update(ship *Ship, arena Arena, wave int, cfg *Config, rng *rand.Rand) enemyTick {
	var out enemyTick
	if e.Dead || ship.Sinking {
		return out
	}

	dx := ship.X - e.X
	dy := ship.Y - e.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	e.move(dx, dy, dist, arena, cfg)

	if e.ContactCD > 0 {
		e.ContactCD--
	}
	// contact uses the pre-move distance, like the shot range check
	if dist < e.Size+cfg.ContactMargin {
		if e.Type != EnemyBoss {
			e.Dead = true
			out.Contact = true
			return out
		}
		if e.ContactCD <= 0 {
			out.Contact = true
			e.ContactCD = cfg.BossContactCD
		}
	}

	out.Shots = e.fire(ship, dist, wave, cfg, rng)

	if e.Type != EnemyBoss && e.Y > arena.H+cfg.FarEdgeMargin {
		e.Dead = true
		out.Escaped = true
	}
	return out
}

func (e *Enemy) move(dx, dy, dist float64, arena Arena, cfg *Config) {
	if e.Type != EnemyBoss {
		if e.X < cfg.EdgeNudgeZone {
			e.X += cfg.EdgeNudge
		}
		if e.X > arena.W-cfg.EdgeNudgeZone {
			e.X -= cfg.EdgeNudge
		}
	}

	pursuit := math.Atan2(dy, dx)
	switch e.Type {
	case EnemySerpent:
		e.Sway += cfg.SerpentSwayRate
		e.Angle = pursuit + math.Sin(e.Sway)*cfg.SerpentSwayAngle
		e.advance(e.Speed)
		e.Y += cfg.DriftSpeed
	case EnemyGunboat:
		e.Angle, e.X, e.Y = gunboatStep(e.X, e.Y, e.Speed, pursuit, dist, arena, cfg)
	case EnemyBoss:
		e.bossMove(dx, dy, dist, arena, cfg)
	default:
		e.Angle = pursuit
		e.advance(e.Speed)
		e.Y += cfg.DriftSpeed
	}
}

func (e *Enemy) advance(speed float64) {
	e.X += math.Cos(e.Angle) * speed
	e.Y += math.Sin(e.Angle) * speed
}

// GunboatBand is the behaviour band a gunboat is in at a given distance
type GunboatBand int

const (
	BandApproach GunboatBand = iota
	BandOrbit
	BandRetreat
)

// GunboatBandFor assigns exactly one band per distance. Both thresholds
// belong to the orbit band.
func GunboatBandFor(dist float64, arena Arena, cfg *Config) GunboatBand {
	engage := cfg.GunboatEngage * arena.MinDim()
	closeIn := cfg.GunboatClose * arena.MinDim()
	switch {
	case dist > engage:
		return BandApproach
	case dist < closeIn:
		return BandRetreat
	default:
		return BandOrbit
	}
}

func gunboatStep(x, y, speed, pursuit, dist float64, arena Arena, cfg *Config) (angle, nx, ny float64) {
	switch GunboatBandFor(dist, arena, cfg) {
	case BandApproach:
		angle = pursuit
	case BandRetreat:
		angle = pursuit + math.Pi
	default:
		angle = pursuit + math.Pi/2
		speed *= cfg.GunboatOrbitMult
	}
	angle = NormalizeAngle(angle)
	return angle, x + math.Cos(angle)*speed, y + math.Sin(angle)*speed
}

// bossMove steers the boss on a tangential orbit around the ship, with
// radius bands and a soft pull away from the arena edges
func (e *Enemy) bossMove(dx, dy, dist float64, arena Arena, cfg *Config) {
	var ux, uy float64
	if dist > 0 {
		ux, uy = dx/dist, dy/dist
	}
	// tangent of the orbit, handedness fixed per instance
	tx, ty := -uy*e.OrbitDir, ux*e.OrbitDir

	minDim := arena.MinDim()
	tangentW, radialW := 1.0, 0.0
	switch {
	case dist < cfg.BossRetreat*minDim:
		tangentW, radialW = 0.3, -1.0
	case dist < cfg.BossRing*minDim:
		radialW = -0.4
	default:
		radialW = 0.4
	}
	vx := tx*tangentW + ux*radialW
	vy := ty*tangentW + uy*radialW

	m := cfg.BossEdgeMargin
	if m > 0 {
		if e.X < m {
			vx += (m - e.X) / m * cfg.BossEdgeGain
		} else if e.X > arena.W-m {
			vx -= (e.X - (arena.W - m)) / m * cfg.BossEdgeGain
		}
		if e.Y < m {
			vy += (m - e.Y) / m * cfg.BossEdgeGain
		} else if e.Y > arena.H-m {
			vy -= (e.Y - (arena.H - m)) / m * cfg.BossEdgeGain
		}
	}

	if vx != 0 || vy != 0 {
		e.Angle = math.Atan2(vy, vx)
	}
	e.advance(e.Speed)
	e.CurrentRotation = NormalizeAngle(LerpAngle(e.CurrentRotation, e.Angle, cfg.BossTurnEase))

	oob := cfg.BossOutOfBounds
	e.X = Clamp(e.X, -oob, arena.W+oob)
	e.Y = Clamp(e.Y, -oob, arena.H+oob)
}

// fire runs the reload counter and, when loaded and in range, returns the
// shells of a lead-free ballistic volley
func (e *Enemy) fire(ship *Ship, dist float64, wave int, cfg *Config, rng *rand.Rand) []*Projectile {
	if e.Type != EnemyGunboat && e.Type != EnemyBoss {
		return nil
	}
	e.Reload--

	shootDist, fireRate, guns := cfg.GunboatRange, cfg.GunboatReload, 1
	if e.Type == EnemyBoss {
		shootDist, fireRate, guns = cfg.BossRange, cfg.BossReload(wave), cfg.BossCannons(wave)
	}
	if e.Reload > 0 || dist >= shootDist {
		return nil
	}
	e.Reload = fireRate

	shots := make([]*Projectile, 0, guns)
	for i := 0; i < guns; i++ {
		// broadside offsets along the boss hull, centred on the hull
		ox, oy := e.X, e.Y
		if guns > 1 {
			along := (float64(i) - float64(guns-1)/2) * cfg.BossCannonSpan
			ox += math.Cos(e.CurrentRotation) * along
			oy += math.Sin(e.CurrentRotation) * along
		}
		d := Distance(ox, oy, ship.X, ship.Y)
		aim := math.Atan2(ship.Y-oy, ship.X-ox) + (rng.Float64()*2-1)*cfg.EnemyAimJitter
		accuracy := cfg.EnemyAccuracyLo + rng.Float64()*(cfg.EnemyAccuracyHi-cfg.EnemyAccuracyLo)
		speed := cfg.RequiredSpeed(d) * accuracy
		shots = append(shots, NewEnemyShot(cfg, ox, oy, math.Cos(aim)*speed, math.Sin(aim)*speed))
	}
	return shots
}

// TakeDamage reduces HP and returns true if the enemy died from this hit.
// A dead enemy ignores further damage.
func (e *Enemy) TakeDamage(amount float64) bool {
	if e.Dead || amount <= 0 {
		return false
	}
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		e.Dead = true
		return true
	}
	return false
}

// ToState converts to snapshot state
func (e *Enemy) ToState() EnemyState {
	rot := e.Angle
	if e.Type == EnemyBoss {
		rot = e.CurrentRotation
	}
	ratio := 0.0
	if e.MaxHP > 0 {
		ratio = e.HP / e.MaxHP
	}
	return EnemyState{
		ID:    e.ID,
		Type:  e.Type,
		X:     round1(e.X),
		Y:     round1(e.Y),
		R:     math.Round(rot*100) / 100,
		Size:  e.Size,
		HP:    math.Round(ratio*100) / 100,
		Alive: !e.Dead,
	}
}
