package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"seafling/internal/sim"
)

// ---------- helpers ----------

// startTestServer spins up an httptest.Server with a Hub built from cfg and
// returns the server, its WebSocket URL, the hub, and a cleanup func.
func startTestServer(t *testing.T, cfg sim.Config) (*httptest.Server, string, *Hub, func()) {
	t.Helper()

	prevIdleTimeout := SessionIdleTimeout
	SessionIdleTimeout = 150 * time.Millisecond

	// Create a temp client dir with a minimal index.html
	tmpDir := t.TempDir()
	jsDir := filepath.Join(tmpDir, "js")
	os.MkdirAll(jsDir, 0o755)
	os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte("<html>test</html>"), 0o644)
	os.WriteFile(filepath.Join(jsDir, "main.js"), []byte("// test"), 0o644)

	hub := NewHub(HubConfig{Tuning: cfg, Arena: testArena, Seed: 7, Secret: []byte("it-secret")}, nil)
	go hub.Run()

	mux := SetupRoutes(hub, tmpDir)
	srv := httptest.NewServer(mux)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	return srv, wsURL, hub, func() {
		SessionIdleTimeout = prevIdleTimeout
		srv.Close()
		hub.sessions.StopAll()
	}
}

// dialWS opens a WebSocket connection to the test server.
func dialWS(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	return conn
}

// readEnvelope reads one message from the WebSocket. Binary frames are
// decoded as a StateFrame.
func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read WS: %v", err)
	}
	if msgType == websocket.BinaryMessage {
		var frame StateFrame
		if err := msgpack.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("msgpack unmarshal: %v", err)
		}
		return Envelope{T: MsgState, Data: frame}
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return env
}

// readUntil skips messages until one of type typ arrives
func readUntil(t *testing.T, conn *websocket.Conn, typ string) Envelope {
	t.Helper()
	for i := 0; i < 500; i++ {
		env := readEnvelope(t, conn)
		if env.T == typ {
			return env
		}
	}
	t.Fatalf("no %s message received", typ)
	return Envelope{}
}

// sendMsg sends a typed message over the WebSocket.
func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data interface{}) {
	t.Helper()
	env := Envelope{T: msgType, Data: data}
	raw, _ := json.Marshal(env)
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write WS: %v", err)
	}
}

// dataMap extracts the Data field as map[string]interface{}.
func dataMap(t *testing.T, env Envelope) map[string]interface{} {
	t.Helper()
	raw, _ := json.Marshal(env.Data)
	var m map[string]interface{}
	json.Unmarshal(raw, &m)
	return m
}

// startVoyage sends start and returns the welcome payload
func startVoyage(t *testing.T, conn *websocket.Conn, w, h float64) map[string]interface{} {
	t.Helper()
	sendMsg(t, conn, MsgStart, StartMsg{W: w, H: h})
	welcome := readEnvelope(t, conn)
	if welcome.T != MsgWelcome {
		t.Fatalf("expected welcome, got %s", welcome.T)
	}
	return dataMap(t, welcome)
}

// ---------- voyage lifecycle ----------

func TestStartSendsWelcomeAndState(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()

	d := startVoyage(t, conn, 1200, 900)
	sid, _ := d["sid"].(string)
	if !uuidRegex.MatchString(sid) {
		t.Errorf("sid %q is not a UUID", sid)
	}
	if tok, _ := d["token"].(string); tok == "" {
		t.Error("welcome should carry a resume token")
	}
	if d["phase"] != string(PhaseSailing) {
		t.Errorf("expected sailing, got %v", d["phase"])
	}
	if _, err := hub.sessions.GetSession(sid); err != nil {
		t.Errorf("session should exist: %v", err)
	}

	frame := readUntil(t, conn, MsgState).Data.(StateFrame)
	if frame.State.ArenaW != 1200 || frame.State.ArenaH != 900 {
		t.Errorf("arena should follow the start message, got %vx%v", frame.State.ArenaW, frame.State.ArenaH)
	}
	if frame.State.Ship.X != 600 {
		t.Errorf("ship should be centred, got x=%v", frame.State.Ship.X)
	}
}

func TestStartWithoutViewportUsesDefaultArena(t *testing.T) {
	_, wsURL, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()

	sendMsg(t, conn, MsgStart, nil)
	if env := readEnvelope(t, conn); env.T != MsgWelcome {
		t.Fatalf("expected welcome, got %s", env.T)
	}
	frame := readUntil(t, conn, MsgState).Data.(StateFrame)
	if frame.State.ArenaW != testArena.W {
		t.Errorf("expected default arena width %v, got %v", testArena.W, frame.State.ArenaW)
	}
}

func TestHugeViewportIsClamped(t *testing.T) {
	_, wsURL, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()

	startVoyage(t, conn, 1e9, 1e9)
	frame := readUntil(t, conn, MsgState).Data.(StateFrame)
	if frame.State.ArenaW != sim.MaxArenaDim || frame.State.ArenaH != sim.MaxArenaDim {
		t.Errorf("arena should clamp to %d, got %vx%v", sim.MaxArenaDim, frame.State.ArenaW, frame.State.ArenaH)
	}

	sendMsg(t, conn, MsgResize, ResizeMsg{W: 1e15, H: 700})
	for i := 0; i < 20; i++ {
		frame = readUntil(t, conn, MsgState).Data.(StateFrame)
		if frame.State.ArenaH == 700 {
			break
		}
	}
	if frame.State.ArenaW != sim.MaxArenaDim || frame.State.ArenaH != 700 {
		t.Errorf("resize should clamp, got %vx%v", frame.State.ArenaW, frame.State.ArenaH)
	}
}

func TestFlingLaunchesShot(t *testing.T) {
	_, wsURL, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()
	startVoyage(t, conn, 1000, 800)

	sendMsg(t, conn, MsgFling, FlingMsg{VX: 0, VY: -10})
	for i := 0; i < 200; i++ {
		env := readUntil(t, conn, MsgState)
		for _, p := range env.Data.(StateFrame).State.Projectiles {
			if !p.Enemy {
				return
			}
		}
	}
	t.Fatal("fling should show up as a friendly projectile")
}

func TestBuyOutsidePortErrors(t *testing.T) {
	_, wsURL, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()
	startVoyage(t, conn, 1000, 800)

	sendMsg(t, conn, MsgBuy, BuyMsg{Item: "crew"})
	env := readUntil(t, conn, MsgError)
	if msg := dataMap(t, env)["msg"]; msg != ErrNotInPort.Error() {
		t.Errorf("expected %q, got %v", ErrNotInPort.Error(), msg)
	}
}

func TestPortBuyAndSail(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, emptyWaveConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()
	sid := startVoyage(t, conn, 1000, 800)["sid"].(string)

	port := dataMap(t, readUntil(t, conn, MsgPort))
	if items, _ := port["items"].([]interface{}); len(items) != len(ShopCatalog) {
		t.Fatalf("expected %d shop rows, got %v", len(ShopCatalog), port["items"])
	}

	sess, _ := hub.sessions.GetSession(sid)
	sess.Game.mu.Lock()
	sess.Game.world.AddGold(200)
	sess.Game.mu.Unlock()

	sendMsg(t, conn, MsgBuy, BuyMsg{Item: "crew"})
	// a listing from before the purchase may still be queued
	bought := false
	for i := 0; i < 5 && !bought; i++ {
		port = dataMap(t, readUntil(t, conn, MsgPort))
		bought = port["gold"].(float64) == 50
	}
	if !bought {
		t.Errorf("expected 50 gold after buying crew, got %v", port["gold"])
	}

	sendMsg(t, conn, MsgSail, nil)
	for i := 0; i < 50; i++ {
		env := readUntil(t, conn, MsgWave)
		d := dataMap(t, env)
		if d["wave"].(float64) == 2 {
			return
		}
	}
	t.Fatal("sailing should start wave 2")
}

// ---------- resume ----------

func TestResumeWithToken(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	c1 := dialWS(t, wsURL)
	d := startVoyage(t, c1, 1000, 800)
	sid, token := d["sid"].(string), d["token"].(string)
	c1.Close()

	c2 := dialWS(t, wsURL)
	defer c2.Close()
	sendMsg(t, c2, MsgResume, ResumeMsg{Token: token})

	welcome := readUntil(t, c2, MsgWelcome)
	wd := dataMap(t, welcome)
	if wd["sid"] != sid || wd["resumed"] != true {
		t.Errorf("expected resumed welcome for %s, got %v", sid, wd)
	}
	readUntil(t, c2, MsgState)

	sess, err := hub.sessions.GetSession(sid)
	if err != nil || !sess.Game.HasClient() {
		t.Error("resumed session should have a client attached")
	}
}

func TestResumeTakesOverVoyage(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	c1 := dialWS(t, wsURL)
	defer c1.Close()
	d := startVoyage(t, c1, 1000, 800)
	sid, token := d["sid"].(string), d["token"].(string)

	c2 := dialWS(t, wsURL)
	defer c2.Close()
	sendMsg(t, c2, MsgResume, ResumeMsg{Token: token})
	readUntil(t, c2, MsgWelcome)

	if msg := dataMap(t, readUntil(t, c1, MsgError))["msg"]; msg != errResumedElsewhere {
		t.Fatalf("displaced connection should be told, got %v", msg)
	}

	// the displaced connection no longer drives the voyage
	sendMsg(t, c1, MsgPause, nil)
	sendMsg(t, c1, MsgLeave, nil)
	sendMsg(t, c1, MsgResume, ResumeMsg{Token: "garbage"})
	if msg := dataMap(t, readUntil(t, c1, MsgError))["msg"]; msg != ErrInvalidToken.Error() {
		t.Fatalf("expected invalid token error, got %v", msg)
	}

	sess, err := hub.sessions.GetSession(sid)
	if err != nil {
		t.Fatal("leave from the displaced connection must not end the voyage")
	}
	if sess.Game.Paused() {
		t.Error("pause from the displaced connection should be ignored")
	}
	readUntil(t, c2, MsgState)
}

func TestResumeBadToken(t *testing.T) {
	_, wsURL, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()

	sendMsg(t, conn, MsgResume, ResumeMsg{Token: "garbage"})
	env := readEnvelope(t, conn)
	if env.T != MsgError || dataMap(t, env)["msg"] != ErrInvalidToken.Error() {
		t.Errorf("expected invalid token error, got %v", env)
	}
}

func TestLeaveEndsSession(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	defer conn.Close()
	sid := startVoyage(t, conn, 1000, 800)["sid"].(string)

	sendMsg(t, conn, MsgLeave, nil)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := hub.sessions.GetSession(sid); err != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("leave should remove the session")
}

func TestDetachedSessionIsReaped(t *testing.T) {
	_, wsURL, hub, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	conn := dialWS(t, wsURL)
	sid := startVoyage(t, conn, 1000, 800)["sid"].(string)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sess, err := hub.sessions.GetSession(sid)
		if err == nil && !sess.Game.HasClient() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(2 * SessionIdleTimeout)
	if n := hub.sessions.Reap(time.Now()); n != 1 {
		t.Errorf("expected the detached session to be reaped, got %d", n)
	}
}

// ---------- HTTP ----------

func TestHealthEndpoint(t *testing.T) {
	srv, _, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var h HealthInfo
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Sessions != 0 {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestStaticRoutes(t *testing.T) {
	srv, _, _, cleanup := startTestServer(t, sim.DefaultConfig())
	defer cleanup()

	for path, want := range map[string]int{"/": 200, "/js/main.js": 200, "/missing": 404} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, want)
		}
		if want == 200 && resp.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("GET %s should be served with no-cache", path)
		}
	}
}
