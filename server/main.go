package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"seafling/internal/sim"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	clientDir := flag.String("client", "", "Path to client directory (default: ../client)")
	tuningPath := flag.String("tuning", "", "JSON file overriding combat tuning")
	seed := flag.Int64("seed", 0, "World seed for every voyage (0 = random per voyage)")
	arenaW := flag.Float64("arena-w", 1280, "Default arena width")
	arenaH := flag.Float64("arena-h", 720, "Default arena height")
	flag.Parse()

	if *clientDir == "" {
		exe, _ := os.Executable()
		*clientDir = filepath.Join(filepath.Dir(exe), "..", "client")
		// Fallback for development
		if _, err := os.Stat(*clientDir); os.IsNotExist(err) {
			*clientDir = "../client"
		}
	}

	tuning, err := LoadTuning(*tuningPath)
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}

	tel := NewTelemetry()
	hub := NewHub(HubConfig{
		Tuning: tuning,
		Arena:  sim.Arena{W: *arenaW, H: *arenaH},
		Seed:   *seed,
		Secret: []byte(os.Getenv("SEAFLING_TOKEN_SECRET")),
	}, tel)
	go hub.Run()

	reaperStop := make(chan struct{})
	go hub.sessions.RunReaper(30*time.Second, reaperStop)

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		log.Printf("Serving client files from %s", *clientDir)
		if *tuningPath != "" {
			log.Printf("Combat tuning from %s", *tuningPath)
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
	close(reaperStop)
	hub.sessions.StopAll()
	tel.Stop()
}
