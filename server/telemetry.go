package main

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Telemetry event types
const (
	TelVoyageStart = "voyage_start"
	TelVoyageEnd   = "voyage_end"
	TelKill        = "kill"
	TelBossKill    = "boss_kill"
	TelWaveCleared = "wave_cleared"
	TelShipDamage  = "ship_damage"
	TelPurchase    = "purchase"
	TelResume      = "resume"
)

// TelemetryInterval is how often the summary line is logged
var TelemetryInterval = 30 * time.Second

// TelemetryEvent is a single trackable occurrence
type TelemetryEvent struct {
	Type      string
	SessionID string
	Amount    float64
}

// Telemetry aggregates gameplay counters off the game loop and logs them
// periodically
type Telemetry struct {
	events chan TelemetryEvent
	stop   chan struct{}
	wg     sync.WaitGroup

	mu              sync.RWMutex
	counts          map[string]int
	amounts         map[string]float64
	concurrentPeers int
	activeSessions  int
}

// NewTelemetry creates and starts the background aggregator
func NewTelemetry() *Telemetry {
	t := &Telemetry{
		events:  make(chan TelemetryEvent, 1024),
		stop:    make(chan struct{}),
		counts:  make(map[string]int),
		amounts: make(map[string]float64),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// Track enqueues an event (non-blocking). Safe on a nil receiver.
func (t *Telemetry) Track(evtType, sessionID string, amount float64) {
	if t == nil {
		return
	}
	select {
	case t.events <- TelemetryEvent{Type: evtType, SessionID: sessionID, Amount: amount}:
	default:
		// full, drop rather than stall the tick
	}
}

// SetConcurrentPeers updates live connection count
func (t *Telemetry) SetConcurrentPeers(n int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.concurrentPeers = n
	t.mu.Unlock()
}

// SetActiveSessions updates live session count
func (t *Telemetry) SetActiveSessions(n int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.activeSessions = n
	t.mu.Unlock()
}

// GetLiveMetrics returns current peers and sessions
func (t *Telemetry) GetLiveMetrics() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.concurrentPeers, t.activeSessions
}

// Totals returns a copy of the event counts and summed amounts
func (t *Telemetry) Totals() (map[string]int, map[string]float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		counts[k] = v
	}
	amounts := make(map[string]float64, len(t.amounts))
	for k, v := range t.amounts {
		amounts[k] = v
	}
	return counts, amounts
}

// Stop drains queued events and shuts the aggregator down
func (t *Telemetry) Stop() {
	close(t.stop)
	t.wg.Wait()
}

func (t *Telemetry) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(TelemetryInterval)
	defer ticker.Stop()

	for {
		select {
		case evt := <-t.events:
			t.record(evt)
		case <-ticker.C:
			t.logSummary()
		case <-t.stop:
			for {
				select {
				case evt := <-t.events:
					t.record(evt)
				default:
					return
				}
			}
		}
	}
}

func (t *Telemetry) record(evt TelemetryEvent) {
	t.mu.Lock()
	t.counts[evt.Type]++
	t.amounts[evt.Type] += evt.Amount
	t.mu.Unlock()
}

func (t *Telemetry) logSummary() {
	counts, amounts := t.Totals()
	peers, sessions := t.GetLiveMetrics()

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if amounts[k] != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d(%.0f)", k, counts[k], amounts[k]))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
		}
	}
	log.Printf("[telemetry] peers=%d sessions=%d %s", peers, sessions, strings.Join(parts, " "))
}
