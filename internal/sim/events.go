package sim

// EventKind names a discrete feedback event for render/audio/UI collaborators
type EventKind string

const (
	EvtBoom         EventKind = "boom"          // a gun fired (enemy or friendly mount)
	EvtSplash       EventKind = "splash"        // friendly shot hit the water
	EvtSpray        EventKind = "spray"         // enemy shot hit the water
	EvtCrunch       EventKind = "crunch"        // something struck the ship's hull
	EvtHit          EventKind = "hit"           // friendly shot struck an enemy
	EvtKill         EventKind = "kill"          // enemy destroyed, Gold carries the reward
	EvtBossDefeated EventKind = "boss_defeated" // boss destroyed
	EvtShipHit      EventKind = "ship_hit"      // ship took damage, Amount carries it
	EvtShipSinking  EventKind = "ship_sinking"  // ship hp reached zero
	EvtRepair       EventKind = "repair"        // bilge crew restored hp
	EvtEnemySpawned EventKind = "enemy_spawned" // wave director placed an enemy
	EvtWaveStarted  EventKind = "wave_started"  // Wave carries the number
	EvtWaveCleared  EventKind = "wave_cleared"  // every enemy of the wave is gone
	EvtEnemyEscaped EventKind = "enemy_escaped" // enemy crossed the far edge
	EvtMainFired    EventKind = "main_fired"    // player fling shot launched
	EvtMountReady   EventKind = "mount_ready"   // a mount is holding a full charge
)

// Event is one feedback record emitted during a tick
type Event struct {
	Kind   EventKind `json:"k" msgpack:"k"`
	X      float64   `json:"x" msgpack:"x"`
	Y      float64   `json:"y" msgpack:"y"`
	Amount float64   `json:"a,omitempty" msgpack:"a,omitempty"`
	Gold   int       `json:"g,omitempty" msgpack:"g,omitempty"`
	Wave   int       `json:"w,omitempty" msgpack:"w,omitempty"`
	Enemy  EnemyType `json:"e,omitempty" msgpack:"e,omitempty"`
}
