package main

import (
	"encoding/json"

	"seafling/internal/sim"
)

// Client -> Server message types
const (
	MsgStart  = "start"  // open a new voyage
	MsgResume = "resume" // reattach with a session token
	MsgFling  = "fling"
	MsgAmmo   = "ammo"
	MsgBuy    = "buy"
	MsgSail   = "sail" // leave port for the next wave
	MsgPause  = "pause"
	MsgResize = "resize"
	MsgLeave  = "leave"
)

// Server -> Client message types
const (
	MsgWelcome = "welcome"
	MsgState   = "state" // binary msgpack StateFrame
	MsgEvents  = "events"
	MsgWave    = "wave"
	MsgPort    = "port"
	MsgSunk    = "sunk"
	MsgPaused  = "paused"
	MsgError   = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// StartMsg optionally carries the client viewport size
type StartMsg struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ResumeMsg reattaches to a session after a reconnect
type ResumeMsg struct {
	Token string `json:"token"`
}

// FlingMsg is a release of the drag gesture, already converted to a launch
// velocity in world units per tick
type FlingMsg struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type AmmoMsg struct {
	Ammo string `json:"ammo"`
}

type BuyMsg struct {
	Item string `json:"item"`
}

type ResizeMsg struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// WelcomeMsg is sent once a client is bound to a session
type WelcomeMsg struct {
	SID     string `json:"sid"`
	Token   string `json:"token"`
	Resumed bool   `json:"resumed,omitempty"`
	Phase   Phase  `json:"phase"`
}

// WaveMsg announces a wave starting or being cleared
type WaveMsg struct {
	Wave    int  `json:"wave"`
	Cleared bool `json:"cleared,omitempty"`
}

// PortMsg lists the shop while docked between waves
type PortMsg struct {
	Gold  int          `json:"gold"`
	Wave  int          `json:"wave"`
	Items []PriceEntry `json:"items"`
}

// PriceEntry is one shop row
type PriceEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Owned     int    `json:"owned"`
	Available bool   `json:"available"`
}

// SunkMsg ends a voyage
type SunkMsg struct {
	Wave  int `json:"wave"`
	Kills int `json:"kills"`
	Gold  int `json:"gold"`
}

type PausedMsg struct {
	Paused bool `json:"paused"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// StateFrame is the binary state broadcast
type StateFrame struct {
	Phase  Phase        `msgpack:"ph" json:"ph"`
	Paused bool         `msgpack:"pz,omitempty" json:"pz,omitempty"`
	State  sim.Snapshot `msgpack:"s" json:"s"`
}
