// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: (60 * time.Second * 9) / 10,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for the HTTP API is enforced by middleware; the stream
		// carries public trend data only
		return true
	},
}

// TrendStream pushes freshly built snapshots to connected websocket
// clients. Register Broadcast as an aggregator refresh handler.
type TrendStream struct {
	config  WebSocketConfig
	log     *logrus.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewTrendStream creates a new trend stream hub
func NewTrendStream(config WebSocketConfig, log *logrus.Logger) *TrendStream {
	return &TrendStream{
		config:  config,
		log:     log,
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Broadcast queues a snapshot for delivery to every connected client.
// Slow clients are dropped rather than blocking the refresh path.
func (s *TrendStream) Broadcast(snapshot *trend.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.WithError(err).Error("Failed to marshal snapshot for stream")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn, send := range s.clients {
		select {
		case send <- payload:
		default:
			delete(s.clients, conn)
			close(send)
		}
	}
}

// Handler upgrades the connection and streams snapshots until the client
// disconnects.
func (s *TrendStream) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Failed to upgrade to WebSocket")
		return
	}

	send := make(chan []byte, 8)

	s.mu.Lock()
	s.clients[conn] = send
	s.mu.Unlock()

	go s.writePump(conn, send)
	go s.readPump(conn)
}

func (s *TrendStream) writePump(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(s.config.PingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.remove(conn)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.remove(conn)
				return
			}
		}
	}
}

// readPump drains control frames and detects disconnects.
func (s *TrendStream) readPump(conn *websocket.Conn) {
	defer func() {
		s.remove(conn)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(s.config.PongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.config.PongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *TrendStream) remove(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if send, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		close(send)
	}
}
