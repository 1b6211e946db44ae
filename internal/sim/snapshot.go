package sim

// Snapshot is the read-only view of a world published to renderers after
// each tick. Field names are kept short for the wire.
type Snapshot struct {
	Frame       uint64            `json:"f" msgpack:"f"`
	Wave        int               `json:"w" msgpack:"w"`
	ToSpawn     int               `json:"ts" msgpack:"ts"`
	Gold        int               `json:"g" msgpack:"g"`
	Kills       int               `json:"k" msgpack:"k"`
	ArenaW      float64           `json:"aw" msgpack:"aw"`
	ArenaH      float64           `json:"ah" msgpack:"ah"`
	Ship        ShipState         `json:"s" msgpack:"s"`
	Enemies     []EnemyState      `json:"e" msgpack:"e"`
	Projectiles []ProjectileState `json:"p" msgpack:"p"`
}

type ShipState struct {
	X         float64      `json:"x" msgpack:"x"`
	Y         float64      `json:"y" msgpack:"y"`
	R         float64      `json:"r" msgpack:"r"`
	HP        float64      `json:"hp" msgpack:"hp"`
	MaxHP     float64      `json:"mhp" msgpack:"mhp"`
	Tier      int          `json:"t" msgpack:"t"`
	Mounts    []MountState `json:"m" msgpack:"m"`
	Crew      int          `json:"c" msgpack:"c"`
	IdleCrew  int          `json:"ic" msgpack:"ic"`
	BilgeCrew int          `json:"bc" msgpack:"bc"`
	MainCrew  int          `json:"mc" msgpack:"mc"`
	Ammo      AmmoType     `json:"a" msgpack:"a"`
	Sinking   bool         `json:"sk,omitempty" msgpack:"sk,omitempty"`
	SinkP     float64      `json:"sp,omitempty" msgpack:"sp,omitempty"`
	SinkA     float64      `json:"sa,omitempty" msgpack:"sa,omitempty"`
}

type MountState struct {
	Slot   int       `json:"i" msgpack:"i"`
	Type   MountType `json:"t" msgpack:"t"`
	Loaded float64   `json:"l" msgpack:"l"`
	Crew   int       `json:"c" msgpack:"c"`
}

type EnemyState struct {
	ID    uint32    `json:"id" msgpack:"id"`
	Type  EnemyType `json:"t" msgpack:"t"`
	X     float64   `json:"x" msgpack:"x"`
	Y     float64   `json:"y" msgpack:"y"`
	R     float64   `json:"r" msgpack:"r"`
	Size  float64   `json:"sz" msgpack:"sz"`
	HP    float64   `json:"hp" msgpack:"hp"` // ratio 0..1
	Alive bool      `json:"a" msgpack:"a"`
}

type ProjectileState struct {
	ID    uint32  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	H     float64 `json:"h" msgpack:"h"`
	Size  float64 `json:"sz" msgpack:"sz"`
	Enemy bool    `json:"e,omitempty" msgpack:"e,omitempty"`
}

// Snapshot builds the current view of the world
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:       w.frame,
		Wave:        w.director.Wave,
		ToSpawn:     w.director.ToSpawn,
		Gold:        w.gold,
		Kills:       w.kills,
		ArenaW:      w.arena.W,
		ArenaH:      w.arena.H,
		Ship:        w.ship.ToState(),
		Enemies:     make([]EnemyState, 0, len(w.enemies)),
		Projectiles: make([]ProjectileState, 0, len(w.shots)+len(w.enemyShots)),
	}
	for _, e := range w.enemies {
		if !e.Dead {
			snap.Enemies = append(snap.Enemies, e.ToState())
		}
	}
	for _, p := range w.shots {
		if p.Active {
			snap.Projectiles = append(snap.Projectiles, p.ToState())
		}
	}
	for _, p := range w.enemyShots {
		if p.Active {
			snap.Projectiles = append(snap.Projectiles, p.ToState())
		}
	}
	return snap
}
