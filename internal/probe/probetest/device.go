// Package probetest provides an in-process nPoint device simulator for
// tests. It speaks the real wire protocol: handshake nonce, per-round nonce
// rotation, and SHA1 signature verification on every query.
package probetest

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/muurk/pulsescan/internal/probe"
)

// Device is a fake nGeniusPULSE device backed by an httptest server.
type Device struct {
	// Data maps query keys to the data payload the device answers with.
	// Keys not present answer with "<key>-value".
	Data map[string]string

	// InitialNonce is the nonce sent in the handshake message. It may
	// contain raw control characters. Defaults to "nonce-0".
	InitialNonce string

	// OmitNonce sends a handshake message without a nonce field
	OmitNonce bool

	// FailAfter closes the connection after serving this many query
	// responses. Zero means never.
	FailAfter int

	srv *httptest.Server

	mu       sync.Mutex
	received []string
	badSigs  int
}

// Start brings the device up on a loopback port.
func (d *Device) Start() {
	d.srv = httptest.NewServer(http.HandlerFunc(d.handle))
}

// Close shuts the device down.
func (d *Device) Close() {
	d.srv.Close()
}

// Addr returns the device's loopback address.
func (d *Device) Addr() netip.Addr {
	host, _, _ := net.SplitHostPort(d.srv.Listener.Addr().String())
	return netip.MustParseAddr(host)
}

// Port returns the device's listen port.
func (d *Device) Port() int {
	_, portStr, _ := net.SplitHostPort(d.srv.Listener.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return port
}

// Received returns the callTypes seen so far, in arrival order.
func (d *Device) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.received))
	copy(out, d.received)
	return out
}

// BadSignatures returns how many queries arrived with an invalid signature.
func (d *Device) BadSignatures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.badSigs
}

var upgrader = websocket.Upgrader{}

func (d *Device) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	nonce := d.InitialNonce
	if nonce == "" {
		nonce = "nonce-0"
	}

	// Handshake: device speaks first. Built by hand so raw control bytes
	// in the nonce go out exactly as configured.
	handshake := []byte(`{"nonce": "` + nonce + `", "uname": "npoint"}`)
	if d.OmitNonce {
		handshake = []byte(`{"uname": "npoint"}`)
	}
	if err := conn.WriteMessage(websocket.TextMessage, handshake); err != nil {
		return
	}

	served := 0
	for round := 1; ; round++ {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req struct {
			CallType  string `json:"callType"`
			Parameter string `json:"parameter"`
			Signature string `json:"signature"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return
		}

		d.mu.Lock()
		d.received = append(d.received, req.CallType)
		if req.Signature != probe.Signature(req.CallType, nonce) {
			d.badSigs++
			d.mu.Unlock()
			// A real device drops the connection on a bad signature.
			return
		}
		d.mu.Unlock()

		data, ok := d.Data[req.CallType]
		if !ok {
			data = req.CallType + "-value"
		}

		next := fmt.Sprintf("nonce-%d", round)
		resp, err := json.Marshal(map[string]string{
			"nonce":   next,
			"data":    data,
			"success": "true",
		})
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			return
		}
		nonce = next

		served++
		if d.FailAfter > 0 && served >= d.FailAfter {
			return
		}
	}
}
