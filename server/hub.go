package main

import (
	"sync"

	"seafling/internal/sim"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// HubConfig carries what every new voyage is built from
type HubConfig struct {
	Tuning sim.Config
	Arena  sim.Arena // used when the client does not report a viewport
	Seed   int64     // 0 seeds each voyage from the clock
	Secret []byte    // resume token key; empty generates one
}

// Hub manages all connected clients and routes them to sessions
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager
	tokens     *Tokens
	tel        *Telemetry
	arena      sim.Arena
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
}

// NewHub creates a new Hub
func NewHub(cfg HubConfig, tel *Telemetry) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		sessions:   NewSessionManager(cfg.Tuning, cfg.Seed, tel),
		tokens:     NewTokens(cfg.Secret),
		tel:        tel,
		arena:      cfg.Arena,
		ipConns:    make(map[string]int),
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
	h.tel.SetConcurrentPeers(h.totalConns)
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
	h.tel.SetConcurrentPeers(h.totalConns)
}

// Run processes register/unregister events. A dropped connection only
// detaches from its voyage; the session stays resumable until reaped.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.detach(client)
		}
	}
}

// detach unbinds a client from its session without ending the voyage
func (h *Hub) detach(c *Client) {
	if c.sessionID == "" {
		return
	}
	if sess, err := h.sessions.GetSession(c.sessionID); err == nil {
		sess.Game.DetachClient(c)
		h.sessions.MarkActive(sess.ID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
