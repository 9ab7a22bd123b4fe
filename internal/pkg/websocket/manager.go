package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// client is one open connection. A user may hold several.
type client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	mu     sync.Mutex // serializes writes
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Manager tracks live WebSocket connections per user
type Manager struct {
	sync.RWMutex
	clients  map[uuid.UUID]map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *logger.ZapLogger
}

// NewManager creates a new WebSocket manager
func NewManager(l *logger.ZapLogger) *Manager {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Manager{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: l,
	}
}

// HandleConnection upgrades the request and keeps the connection registered
// for userID until the peer goes away. Incoming frames are discarded.
func (m *Manager) HandleConnection(c echo.Context, userID uuid.UUID) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	cl := &client{userID: userID, conn: ws}
	m.addClient(cl)
	defer func() {
		m.removeClient(cl)
		ws.Close()
	}()

	m.logger.Info("WebSocket client connected", logger.UUID("user_id", userID))

	done := make(chan struct{})
	defer close(done)
	go m.keepAlive(cl, done)

	ws.SetReadLimit(512)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Warn("WebSocket read failed", logger.UUID("user_id", userID), logger.Err(err))
			}
			return nil
		}
	}
}

func (m *Manager) keepAlive(cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := cl.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) addClient(cl *client) {
	m.Lock()
	defer m.Unlock()
	conns, ok := m.clients[cl.userID]
	if !ok {
		conns = make(map[*client]struct{})
		m.clients[cl.userID] = conns
	}
	conns[cl] = struct{}{}
}

func (m *Manager) removeClient(cl *client) {
	m.Lock()
	defer m.Unlock()
	conns := m.clients[cl.userID]
	delete(conns, cl)
	if len(conns) == 0 {
		delete(m.clients, cl.userID)
	}
}

// ConnectionCount returns the number of open connections of userID
func (m *Manager) ConnectionCount(userID uuid.UUID) int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients[userID])
}

// NotifyUser sends event to every connection of userID. Users without an
// open connection are skipped.
func (m *Manager) NotifyUser(userID uuid.UUID, event string, data interface{}) error {
	m.RLock()
	targets := make([]*client, 0, len(m.clients[userID]))
	for cl := range m.clients[userID] {
		targets = append(targets, cl)
	}
	m.RUnlock()

	if len(targets) == 0 {
		return nil
	}

	payload, err := encodeMessage(event, data)
	if err != nil {
		return err
	}
	for _, cl := range targets {
		if err := cl.write(websocket.TextMessage, payload); err != nil {
			m.logger.Warn("Error sending message to client",
				logger.UUID("user_id", userID),
				logger.Err(err))
		}
	}
	return nil
}

// CloseAll sends a close frame to every connection, used on shutdown
func (m *Manager) CloseAll() {
	m.RLock()
	var all []*client
	for _, conns := range m.clients {
		for cl := range conns {
			all = append(all, cl)
		}
	}
	m.RUnlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, cl := range all {
		_ = cl.write(websocket.CloseMessage, msg)
	}
}

func encodeMessage(event string, data interface{}) ([]byte, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshaling message data: %w", err)
	}
	payload, err := json.Marshal(models.WSMessage{Event: event, Data: rawData})
	if err != nil {
		return nil, fmt.Errorf("error marshaling message: %w", err)
	}
	return payload, nil
}
