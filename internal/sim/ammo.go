package sim

import "math"

// AmmoType selects how a fling shot is loaded
type AmmoType string

const (
	AmmoRound AmmoType = "round"
	AmmoGrape AmmoType = "grape"
	AmmoChain AmmoType = "chain"
)

// AmmoDef describes how a fling shot splits into projectiles
type AmmoDef struct {
	Pellets   int
	Spread    float64 // full fan angle in radians
	SizeMul   float64
	DamageMul float64
}

var ammoDefs = map[AmmoType]AmmoDef{
	AmmoRound: {Pellets: 1, Spread: 0, SizeMul: 1, DamageMul: 1},
	AmmoGrape: {Pellets: 5, Spread: 0.5, SizeMul: 0.5, DamageMul: 0.4},
	AmmoChain: {Pellets: 1, Spread: 0, SizeMul: 1.75, DamageMul: 0.7},
}

func ammoDef(t AmmoType) AmmoDef {
	if d, ok := ammoDefs[t]; ok {
		return d
	}
	return ammoDefs[AmmoRound]
}

// ValidAmmo reports whether t names a known ammo type
func ValidAmmo(t AmmoType) bool {
	_, ok := ammoDefs[t]
	return ok
}

// MainWeapon is the stat curve of the player's fling cannon
type MainWeapon struct {
	Damage   float64
	MaxSpeed float64
	Cooldown int
}

// MainWeaponStats derives the fling cannon stats from upgrade level and the
// crew the waterfall assigned to it this tick
func (s *Ship) MainWeaponStats(cfg *Config) MainWeapon {
	cd := cfg.MainCooldown - cfg.MainCrewCD*s.MainCannonCrew
	if cd < cfg.MainMinCooldown {
		cd = cfg.MainMinCooldown
	}
	return MainWeapon{
		Damage:   cfg.MainBaseDamage + cfg.MainLevelDamage*float64(s.MainCannonLevel),
		MaxSpeed: cfg.MainMaxSpeed + cfg.MainCrewSpeed*float64(s.MainCannonCrew),
		Cooldown: cd,
	}
}

// FlingShot is a player-authored launch request produced by gesture input
type FlingShot struct {
	VX, VY float64
}

// flingProjectiles expands a fling request into projectiles for the ship's
// current ammo. Speed is capped by the main weapon curve.
func flingProjectiles(cfg *Config, s *Ship, req FlingShot) []*Projectile {
	stats := s.MainWeaponStats(cfg)
	vx, vy := req.VX, req.VY
	mag := math.Hypot(vx, vy)
	if mag == 0 {
		return nil
	}
	if mag > stats.MaxSpeed {
		ratio := stats.MaxSpeed / mag
		vx *= ratio
		vy *= ratio
		mag = stats.MaxSpeed
	}

	def := ammoDef(s.Ammo)
	heading := math.Atan2(vy, vx)
	shots := make([]*Projectile, 0, def.Pellets)
	for i := 0; i < def.Pellets; i++ {
		a := heading
		if def.Pellets > 1 {
			a += def.Spread * (float64(i)/float64(def.Pellets-1) - 0.5)
		}
		shots = append(shots, NewPlayerShot(cfg, s.X, s.Y,
			math.Cos(a)*mag, math.Sin(a)*mag,
			stats.Damage*def.DamageMul, cfg.MainShotSize*def.SizeMul))
	}
	return shots
}
