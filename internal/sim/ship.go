package sim

import "math"

// MountType is the kind of gun a slot accepts
type MountType string

const (
	MountCannon MountType = "cannon"
	MountSwivel MountType = "swivel"
)

const (
	MinTier = 1
	MaxTier = 3
)

// Slot is a fixed hull attachment point. X/Y are hull-local (bow toward -Y),
// Angle is the facing relative to the hull and Arc the full firing arc.
type Slot struct {
	X, Y  float64
	Angle float64
	Arc   float64
	Type  MountType
}

// Mount is a gun installed on a slot
type Mount struct {
	SlotIndex    int
	Loaded       float64 // 0..100
	AssignedCrew int
	Holding      bool // full charge held with no target
}

// Ship is the player vessel. Rotation 0 points the starboard broadside at +X.
type Ship struct {
	X, Y     float64
	Rotation float64
	HP       float64
	MaxHP    float64
	Tier     int
	W, H     float64
	Slots    []Slot
	Mounts   []*Mount

	Crew            int
	BilgeLevel      int
	BilgeCrew       int
	MainCannonLevel int
	MainCannonCrew  int
	IdleCrew        int
	HasCaptain      bool

	Ammo         AmmoType
	UnlockedAmmo map[AmmoType]bool
	MainCD       int

	Sinking      bool
	SinkProgress float64
	SinkAngle    float64

	repairTimer int
}

// NewShip creates a tier 1 ship with full hp and no crew
func NewShip(cfg *Config) *Ship {
	s := &Ship{
		HP:           cfg.ShipMaxHP,
		MaxHP:        cfg.ShipMaxHP,
		Ammo:         AmmoRound,
		UnlockedAmmo: map[AmmoType]bool{AmmoRound: true},
	}
	s.SetTier(MinTier)
	return s
}

// SetTier rebuilds the hull size and slot layout from scratch for tier
func (s *Ship) SetTier(tier int) {
	if tier < MinTier {
		tier = MinTier
	}
	if tier > MaxTier {
		tier = MaxTier
	}
	s.Tier = tier
	s.W, s.H, s.Slots = TierLayout(tier)
}

// TierLayout returns hull width, length and slots for a tier. Slot indices
// keep their gun type across tiers so installed mounts stay valid.
func TierLayout(tier int) (w, h float64, slots []Slot) {
	broad := math.Pi / 1.5
	full := math.Pi * 2
	switch tier {
	case 3:
		return 80, 200, []Slot{
			{X: 30, Y: -60, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -30, Y: -60, Angle: math.Pi, Arc: broad, Type: MountCannon},
			{X: 0, Y: -85, Angle: -math.Pi / 2, Arc: full, Type: MountSwivel},
			{X: 30, Y: -10, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -30, Y: -10, Angle: math.Pi, Arc: broad, Type: MountCannon},
			{X: 0, Y: 85, Angle: math.Pi / 2, Arc: full, Type: MountSwivel},
			{X: 30, Y: 40, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -30, Y: 40, Angle: math.Pi, Arc: broad, Type: MountCannon},
		}
	case 2:
		return 70, 160, []Slot{
			{X: 25, Y: -30, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -25, Y: -30, Angle: math.Pi, Arc: broad, Type: MountCannon},
			{X: 0, Y: -50, Angle: -math.Pi / 2, Arc: full, Type: MountSwivel},
			{X: 25, Y: 20, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -25, Y: 20, Angle: math.Pi, Arc: broad, Type: MountCannon},
			{X: 0, Y: 50, Angle: math.Pi / 2, Arc: full, Type: MountSwivel},
		}
	default:
		return 60, 140, []Slot{
			{X: 25, Y: -10, Angle: 0, Arc: broad, Type: MountCannon},
			{X: -25, Y: -10, Angle: math.Pi, Arc: broad, Type: MountCannon},
			{X: 0, Y: -50, Angle: -math.Pi / 2, Arc: full, Type: MountSwivel},
		}
	}
}

// slot returns the slot a mount is bound to, or false if the index no
// longer exists on the current hull
func (s *Ship) slot(m *Mount) (Slot, bool) {
	if m == nil || m.SlotIndex < 0 || m.SlotIndex >= len(s.Slots) {
		return Slot{}, false
	}
	return s.Slots[m.SlotIndex], true
}

// FreeSlot returns the first slot of type t without a mount, or -1
func (s *Ship) FreeSlot(t MountType) int {
	for i, sl := range s.Slots {
		if sl.Type != t {
			continue
		}
		taken := false
		for _, m := range s.Mounts {
			if m.SlotIndex == i {
				taken = true
				break
			}
		}
		if !taken {
			return i
		}
	}
	return -1
}

// MountCount returns how many installed mounts sit on slots of type t
func (s *Ship) MountCount(t MountType) int {
	n := 0
	for _, m := range s.Mounts {
		if sl, ok := s.slot(m); ok && sl.Type == t {
			n++
		}
	}
	return n
}

// Hull returns the collision box of the hull
func (s *Ship) Hull() HullBox {
	return HullBox{W: s.W, H: s.H}
}

// AssignedCrew sums crew on every duty
func (s *Ship) AssignedCrew() int {
	n := s.BilgeCrew + s.MainCannonCrew
	for _, m := range s.Mounts {
		n += m.AssignedCrew
	}
	return n
}

// TakeDamage subtracts hp and reports whether the ship started sinking on
// this hit. A sinking ship ignores damage.
func (s *Ship) TakeDamage(amount float64) bool {
	if s.Sinking || amount <= 0 {
		return false
	}
	s.HP -= amount
	if s.HP <= 0 {
		s.HP = 0
		s.Sinking = true
		s.SinkProgress = 0
		s.SinkAngle = 0
		return true
	}
	return false
}

// advanceSinking moves the visual-only sinking counters
func (s *Ship) advanceSinking(cfg *Config) {
	if !s.Sinking || s.SinkProgress >= 1 {
		return
	}
	s.SinkProgress = math.Min(1, s.SinkProgress+cfg.ShipSinkRate)
	s.SinkAngle += cfg.ShipSinkTilt
}

// Sunk reports whether the sinking animation has finished
func (s *Ship) Sunk() bool {
	return s.Sinking && s.SinkProgress >= 1
}

// ToState converts to snapshot state
func (s *Ship) ToState() ShipState {
	mounts := make([]MountState, 0, len(s.Mounts))
	for _, m := range s.Mounts {
		sl, ok := s.slot(m)
		if !ok {
			continue
		}
		mounts = append(mounts, MountState{
			Slot:   m.SlotIndex,
			Type:   sl.Type,
			Loaded: math.Round(m.Loaded),
			Crew:   m.AssignedCrew,
		})
	}
	return ShipState{
		X:         round1(s.X),
		Y:         round1(s.Y),
		R:         math.Round(s.Rotation*1000) / 1000,
		HP:        math.Round(s.HP*10) / 10,
		MaxHP:     s.MaxHP,
		Tier:      s.Tier,
		Mounts:    mounts,
		Crew:      s.Crew,
		IdleCrew:  s.IdleCrew,
		BilgeCrew: s.BilgeCrew,
		MainCrew:  s.MainCannonCrew,
		Ammo:      s.Ammo,
		Sinking:   s.Sinking,
		SinkP:     math.Round(s.SinkProgress*1000) / 1000,
		SinkA:     math.Round(s.SinkAngle*1000) / 1000,
	}
}
