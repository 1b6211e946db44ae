package sim

// TrailPoint is a render-only breadcrumb of an airborne shot
type TrailPoint struct {
	X, Y, H float64
}

// Projectile is a flung or fired shot flying a synthetic parabolic arc.
// Height is the z-like value the arc integrates; it is not a world axis.
type Projectile struct {
	ID       uint32
	X, Y     float64
	VX, VY   float64
	Height   float64
	ZVel     float64
	Gravity  float64
	Life     float64
	Damage   float64
	Size     float64
	IsEnemy  bool
	Active   bool
	Skimming bool
	Trail    []TrailPoint
}

// Impact describes the one-shot water landing of a projectile
type Impact struct {
	X, Y    float64
	IsEnemy bool
}

// NewPlayerShot creates a friendly shot launched from (x, y) with the
// friendly arc constants
func NewPlayerShot(cfg *Config, x, y, vx, vy, damage, size float64) *Projectile {
	return &Projectile{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Height:  cfg.ShotHeight,
		ZVel:    cfg.PlayerZVel,
		Gravity: cfg.PlayerGravity,
		Life:    cfg.ShotLife,
		Damage:  damage,
		Size:    size,
		Active:  true,
	}
}

// NewMountShot creates a friendly shot from an auto mount. Mount shots fly a
// low grazing arc that stays inside the friendly hit window for their whole
// flight, so they strike anything along the line of fire.
func NewMountShot(cfg *Config, x, y, vx, vy, damage float64) *Projectile {
	return &Projectile{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Height:  cfg.MountShotHeight,
		ZVel:    0,
		Gravity: cfg.MountShotDrop,
		Life:    cfg.ShotLife,
		Damage:  damage,
		Size:    cfg.MainShotSize / 2,
		Active:  true,
	}
}

// NewEnemyShot creates an enemy shell using the tall enemy arc
func NewEnemyShot(cfg *Config, x, y, vx, vy float64) *Projectile {
	return &Projectile{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Height:  cfg.ShotHeight,
		ZVel:    cfg.EnemyZVel,
		Gravity: cfg.EnemyGravity,
		Life:    cfg.ShotLife,
		Damage:  cfg.ContactDamage,
		Size:    cfg.EnemyShotSize,
		IsEnemy: true,
		Active:  true,
	}
}

// Update advances the shot one tick. It returns the water impact when the
// shot lands this tick; a shot lands at most once.
func (p *Projectile) Update(cfg *Config, frame uint64) (Impact, bool) {
	if !p.Active {
		return Impact{}, false
	}

	if !p.IsEnemy && !p.Skimming && p.Height > 0 && cfg.TrailEvery > 0 && frame%uint64(cfg.TrailEvery) == 0 {
		p.Trail = append(p.Trail, TrailPoint{X: p.X, Y: p.Y, H: p.Height})
		if len(p.Trail) > cfg.TrailMax {
			p.Trail = p.Trail[len(p.Trail)-cfg.TrailMax:]
		}
	}

	p.X += p.VX
	p.Y += p.VY

	var impact Impact
	landed := false
	if !p.Skimming {
		p.Height += p.ZVel
		p.ZVel -= p.Gravity
		if p.Height <= 0 && p.ZVel < 0 {
			landed = true
			impact = Impact{X: p.X, Y: p.Y, IsEnemy: p.IsEnemy}
			p.Skimming = true
		}
	}

	if p.Skimming {
		p.Height = 0
		p.VX *= cfg.SkimDamping
		p.VY *= cfg.SkimDamping
		p.Life -= cfg.SkimLifePenalty
	}

	p.Life--
	if p.Life <= 0 {
		p.Life = 0
		p.Active = false
	}
	return impact, landed
}

// InHitWindow reports whether the shot is low enough to strike a hull
func (p *Projectile) InHitWindow(cfg *Config) bool {
	if p.IsEnemy {
		return p.Height < cfg.EnemyHitHeight
	}
	return p.Height < cfg.FriendlyHitHeight
}

// ToState converts to snapshot state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID:    p.ID,
		X:     round1(p.X),
		Y:     round1(p.Y),
		H:     round1(p.Height),
		Size:  p.Size,
		Enemy: p.IsEnemy,
	}
}
