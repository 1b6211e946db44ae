package main

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"seafling/internal/sim"
)

const (
	TickRate       = 60 // simulation ticks per second
	BroadcastRate  = 30 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate
)

// maxPendingEvents bounds the feedback queue while no client is attached
const maxPendingEvents = 512

var ErrNotInPort = errors.New("not in port")

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game is one voyage: a single ship in its own world, stepped on a fixed
// ticker and streamed to at most one attached client
type Game struct {
	mu      sync.Mutex
	id      string
	world   *sim.World
	shop    *Shop
	phase   Phase
	paused  bool
	client  Broadcaster
	tel     *Telemetry
	pending []sim.Event
	tick    uint64
	running bool
	stop    chan struct{}
}

// NewGame creates a voyage and opens its first wave
func NewGame(id string, cfg sim.Config, arena sim.Arena, seed int64, tel *Telemetry) *Game {
	g := &Game{
		id:    id,
		world: sim.NewWorld(cfg, arena, seed),
		shop:  NewShop(),
		phase: PhaseSailing,
		tel:   tel,
		stop:  make(chan struct{}),
	}
	g.world.StartWave(1)
	tel.Track(TelVoyageStart, id, 0)
	return g
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
	g.running = false
}

// SetClient attaches the broadcaster that receives this voyage's frames and
// returns the one it displaced, if any
func (g *Game) SetClient(client Broadcaster) Broadcaster {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.client
	g.client = client
	return prev
}

// IsClient reports whether client is the attached broadcaster
func (g *Game) IsClient(client Broadcaster) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client == client
}

// DetachClient drops the broadcaster if it is still the attached one
func (g *Game) DetachClient(client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == client {
		g.client = nil
	}
}

// HasClient reports whether a client is attached
func (g *Game) HasClient() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client != nil
}

// Phase returns the current voyage phase
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Paused reports whether the world is frozen
func (g *Game) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// HandleFling queues a main cannon shot for the next tick. Rejected shots
// (cooldown, sinking, already queued) are dropped silently.
func (g *Game) HandleFling(vx, vy float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseSailing || g.paused {
		return false
	}
	return g.world.QueueFling(sim.FlingShot{VX: vx, VY: vy})
}

// SelectAmmo switches the loaded ammo if it has been unlocked
func (g *Game) SelectAmmo(ammo string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseSunk {
		return false
	}
	return g.world.Ship().SelectAmmo(sim.AmmoType(ammo))
}

// Buy purchases a shop item. Only allowed while docked.
func (g *Game) Buy(item string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhasePort {
		return ErrNotInPort
	}
	if err := g.shop.Buy(item, g.world); err != nil {
		return err
	}
	g.tel.Track(TelPurchase, g.id, 0)
	g.sendPortLocked()
	return nil
}

// Sail leaves port and starts the next wave
func (g *Game) Sail() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !CanTransition(g.phase, PhaseSailing) {
		return ErrNotInPort
	}
	g.phase = PhaseSailing
	g.world.StartWave(g.world.Wave() + 1)
	return nil
}

// TogglePause freezes or resumes the world and returns the new state
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = !g.paused
	if g.client != nil {
		g.client.SendJSON(Envelope{T: MsgPaused, Data: PausedMsg{Paused: g.paused}})
	}
	return g.paused
}

// Resize forwards a viewport change to the world
func (g *Game) Resize(w, h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.world.Resize(sim.Arena{W: w, H: h})
}

// PortInfo returns the shop listing for the current gold
func (g *Game) PortInfo() PortMsg {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.portMsgLocked()
}

// Snapshot returns the current world state
func (g *Game) Snapshot() sim.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Snapshot()
}

// update runs one game tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	if g.phase == PhaseSailing && !g.paused {
		g.world.Tick()
	}
	g.handleEvents(g.world.DrainEvents())

	if g.tick%BroadcastEvery == 0 {
		g.flushEvents()
		g.broadcastState()
	}
}

// handleEvents turns world events into phase changes, telemetry and
// client messages, and queues them for the next events batch
func (g *Game) handleEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EvtKill:
			g.tel.Track(TelKill, g.id, float64(ev.Gold))
		case sim.EvtBossDefeated:
			g.tel.Track(TelBossKill, g.id, 0)
		case sim.EvtShipHit:
			g.tel.Track(TelShipDamage, g.id, ev.Amount)
		case sim.EvtWaveStarted:
			g.send(Envelope{T: MsgWave, Data: WaveMsg{Wave: ev.Wave}})
		case sim.EvtWaveCleared:
			if CanTransition(g.phase, PhasePort) {
				g.phase = PhasePort
				g.tel.Track(TelWaveCleared, g.id, float64(ev.Wave))
				g.send(Envelope{T: MsgWave, Data: WaveMsg{Wave: ev.Wave, Cleared: true}})
				g.sendPortLocked()
			}
		}
	}

	if len(events) > 0 {
		g.pending = append(g.pending, events...)
		if over := len(g.pending) - maxPendingEvents; over > 0 {
			g.pending = append(g.pending[:0], g.pending[over:]...)
		}
	}

	if g.phase == PhaseSailing && g.world.Ship().Sunk() {
		g.phase = PhaseSunk
		g.tel.Track(TelVoyageEnd, g.id, float64(g.world.Wave()))
		g.send(Envelope{T: MsgSunk, Data: SunkMsg{
			Wave:  g.world.Wave(),
			Kills: g.world.Kills(),
			Gold:  g.world.Gold(),
		}})
	}
}

func (g *Game) portMsgLocked() PortMsg {
	return PortMsg{
		Gold:  g.world.Gold(),
		Wave:  g.world.Wave(),
		Items: g.shop.Listing(g.world),
	}
}

func (g *Game) sendPortLocked() {
	g.send(Envelope{T: MsgPort, Data: g.portMsgLocked()})
}

func (g *Game) send(msg Envelope) {
	if g.client != nil {
		g.client.SendJSON(msg)
	}
}

// flushEvents sends queued feedback events as one batch
func (g *Game) flushEvents() {
	if g.client == nil || len(g.pending) == 0 {
		return
	}
	g.client.SendJSON(Envelope{T: MsgEvents, Data: g.pending})
	g.pending = nil
}

// broadcastState sends the current world state as a msgpack frame
func (g *Game) broadcastState() {
	if g.client == nil {
		return
	}
	data, err := msgpack.Marshal(StateFrame{
		Phase:  g.phase,
		Paused: g.paused,
		State:  g.world.Snapshot(),
	})
	if err != nil {
		log.Printf("state marshal error: %v", err)
		return
	}
	g.client.SendBinary(data)
}
