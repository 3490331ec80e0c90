// Package monitor optionally serves a live JSON stats feed over a
// websocket, adapted from the teacher's internal/network websocket
// server: the same Upgrader-plus-client-map shape, narrowed from a
// general-purpose WebSocketListen/WebSocketBroadcast pair to a single
// broadcast-only feed of fuzzer stats snapshots.
package monitor

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"zebra/internal/fuzzer"
)

// Frame is one JSON stats snapshot pushed to every connected client.
type Frame struct {
	RunID       uuid.UUID `json:"run_id"`
	ElapsedSecs float64   `json:"elapsed_seconds"`
	Iterations  uint64    `json:"iterations"`
	Crashes     uint64    `json:"crashes"`
	Timeouts    uint64    `json:"timeouts"`
	Incorrect   uint64    `json:"incorrect"`
	ExecsPerSec float64   `json:"execs_per_sec"`
}

// Monitor is a single-endpoint websocket broadcaster: any client that
// connects to its handler receives every subsequent Frame until it
// disconnects. It is inert (no generator, analyzer, or harness behavior
// depends on it) until something calls Report.
type Monitor struct {
	addr      string
	boundAddr string
	server    *http.Server
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*websocket.Conn
}

// New builds a Monitor bound to addr (e.g. ":8089"). It does not start
// listening until Start is called.
func New(addr string) *Monitor {
	return &Monitor{
		addr:    addr,
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start begins serving the websocket endpoint in the background.
func (m *Monitor) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", m.handleUpgrade)

	m.server = &http.Server{Addr: m.addr, Handler: mux}

	ln, err := net.Listen("tcp", m.addr)
	if err != nil {
		return fmt.Errorf("monitor: listen on %s: %w", m.addr, err)
	}
	m.boundAddr = ln.Addr().String()

	go m.server.Serve(ln)
	return nil
}

// Addr returns the actual address Start bound to, useful when addr was
// given as ":0" to pick a free port.
func (m *Monitor) Addr() string { return m.boundAddr }

func (m *Monitor) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.clients[id] = conn
	m.mu.Unlock()

	// The handler doesn't expect any inbound traffic; a read loop just
	// detects disconnects so the client map doesn't grow unbounded.
	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.clients, id)
			m.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Report implements fuzzer.Listener: it's called once per reporting tick
// with the current aggregate snapshot, and broadcasts it as JSON to every
// connected client, dropping any that have gone away.
func (m *Monitor) Report(snapshot fuzzer.Stats, runID uuid.UUID, elapsed time.Duration) {
	var fcps float64
	if secs := elapsed.Seconds(); secs > 0 {
		fcps = float64(snapshot.Iter) / secs
	}

	frame := Frame{
		RunID:       runID,
		ElapsedSecs: elapsed.Seconds(),
		Iterations:  snapshot.Iter,
		Crashes:     snapshot.Crashes,
		Timeouts:    snapshot.Timeouts,
		Incorrect:   snapshot.Incorrect,
		ExecsPerSec: fcps,
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}

	m.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(m.clients))
	for id, c := range m.clients {
		conns[id] = c
	}
	m.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			m.mu.Lock()
			delete(m.clients, id)
			m.mu.Unlock()
		}
	}
}

// Stop closes the listener and every connected client.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	for id, conn := range m.clients {
		conn.Close()
		delete(m.clients, id)
	}
	m.mu.Unlock()

	if m.server == nil {
		return nil
	}
	return m.server.Close()
}
