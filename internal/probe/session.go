package probe

import (
	"context"
	"encoding/json"
	"net"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/pulsescan/internal/catalog"
	"github.com/muurk/pulsescan/internal/logging"
)

const (
	// DefaultPort is the WebSocket port nGeniusPULSE devices listen on
	DefaultPort = 8000

	// DefaultTimeout bounds every network operation in a session: connect,
	// handshake read, query write, response read
	DefaultTimeout = 100 * time.Millisecond
)

// Session probes a single host: one WebSocket connection, the nonce
// handshake, then the signed query chain. A Session is used for exactly one
// Run; it holds no connection state between calls.
type Session struct {
	// Addr is the host to probe
	Addr netip.Addr

	// Port is the device WebSocket port (default 8000)
	Port int

	// Timeout bounds each individual network operation
	Timeout time.Duration

	// DisplayLevel gates how deep into the query catalog the session goes
	DisplayLevel int

	// MACFilter is an optional case-insensitive substring matched against
	// the identity response. Empty disables filtering.
	MACFilter string

	// Queries is the catalog to execute; defaults to catalog.Queries()
	Queries []catalog.Query
}

// NewSession creates a session for one host with default port and timeout.
func NewSession(addr netip.Addr) *Session {
	return &Session{
		Addr:         addr,
		Port:         DefaultPort,
		Timeout:      DefaultTimeout,
		DisplayLevel: 0,
	}
}

// URL returns the WebSocket endpoint this session dials.
func (s *Session) URL() string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(s.Addr.String(), strconv.Itoa(s.Port)),
	}
	return u.String()
}

// Run executes the full protocol exchange and returns the host's outcome.
// Every failure is converted into a NotFound outcome at this boundary; Run
// never returns a partial result and never leaves the connection open.
func (s *Session) Run(ctx context.Context) Outcome {
	addr := s.Addr.String()

	dialer := websocket.Dialer{
		HandshakeTimeout: s.Timeout,
		NetDialContext:   (&net.Dialer{Timeout: s.Timeout}).DialContext,
	}

	conn, resp, err := dialer.DialContext(ctx, s.URL(), nil)
	if err != nil {
		logging.LogProbeFailure(addr, err)
		return notFound(s.Addr, newConnectError(addr, err))
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	// The device speaks first: its handshake message carries the initial
	// nonce for the query chain.
	raw, err := s.read(conn)
	if err != nil {
		logging.LogProbeFailure(addr, err)
		return notFound(s.Addr, newNoNonceError(addr, err))
	}
	logging.LogProbe(addr, "received", string(raw))

	nonce := decodeMessage(raw).Nonce
	if nonce == "" {
		logging.Debug("No nonce in handshake", zap.String("addr", addr))
		return notFound(s.Addr, newNoNonceError(addr, nil))
	}

	queries := s.Queries
	if queries == nil {
		queries = catalog.Queries()
	}

	var fields []Field
	matched := false

	for _, q := range queries {
		// Entries past the display level are never sent. The chain stops
		// here rather than skipping: the device rotates its nonce per
		// exchange, so a skipped entry would desynchronize every signature
		// after it.
		if q.MinLevel > s.DisplayLevel {
			break
		}

		if err := ctx.Err(); err != nil {
			return notFound(s.Addr, newQueryError(addr, q.Key, err))
		}

		payload, err := json.Marshal(request{
			CallType:  q.Key,
			Parameter: "",
			Signature: Signature(q.Key, nonce),
		})
		if err != nil {
			return notFound(s.Addr, newQueryError(addr, q.Key, err))
		}

		if err := s.write(conn, payload); err != nil {
			logging.LogProbeFailure(addr, err)
			return notFound(s.Addr, newQueryError(addr, q.Key, err))
		}
		logging.LogProbe(addr, "sent", string(payload))

		raw, err := s.read(conn)
		if err != nil {
			logging.LogProbeFailure(addr, err)
			return notFound(s.Addr, newQueryError(addr, q.Key, err))
		}
		logging.LogProbe(addr, "received", string(raw))

		msg := decodeMessage(raw)

		// MAC filter applies to the identity query only. A mismatch ends
		// the session before any further query is sent.
		if q.Key == catalog.IdentityKey && s.MACFilter != "" {
			if !strings.Contains(strings.ToLower(msg.Data), strings.ToLower(s.MACFilter)) {
				logging.Debug("MAC filter mismatch",
					zap.String("addr", addr),
					zap.String("filter", s.MACFilter),
				)
				return notFound(s.Addr, newFilterMismatchError(addr))
			}
			matched = true
		}

		fields = append(fields, Field{Query: q, Value: msg.Data})

		// The response's nonce is the only valid token for the next round.
		nonce = msg.Nonce
	}

	logging.Info("Found nGeniusPULSE device", zap.String("addr", addr))
	return found(s.Addr, fields, matched)
}

func (s *Session) read(conn *websocket.Conn) ([]byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(s.Timeout)); err != nil {
		return nil, err
	}
	_, raw, err := conn.ReadMessage()
	return raw, err
}

func (s *Session) write(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.Timeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
