package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"ripple/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Message is the JSON frame pushed to clients.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one websocket connection. A user may hold several.
type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
}

type delivery struct {
	userID  string
	payload []byte
}

// Manager pushes notifications to connected users. The client registry is
// owned by the goroutine started in Start.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			set, ok := m.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				m.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			logger.Debug("Websocket client registered: %s", client.UserID)

		case client := <-m.unregister:
			m.remove(client)

		case d := <-m.deliver:
			for client := range m.clients[d.userID] {
				select {
				case client.send <- d.payload:
				default:
					logger.Warn("Dropping slow websocket client for user %s", client.UserID)
					m.remove(client)
				}
			}

		case <-ctx.Done():
			for _, set := range m.clients {
				for client := range set {
					close(client.send)
				}
			}
			m.clients = make(map[string]map[*Client]struct{})
			close(m.done)
			return
		}
	}
}

func (m *Manager) remove(client *Client) {
	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
	logger.Debug("Websocket client unregistered: %s", client.UserID)
}

// Register adds client to the registry. After shutdown the client is closed
// straight away.
func (m *Manager) Register(client *Client) {
	select {
	case m.register <- client:
	case <-m.done:
		close(client.send)
	}
}

func (m *Manager) leave(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// Notify queues an event for every connection of userID. It never blocks;
// the event is dropped when the queue is full.
func (m *Manager) Notify(userID, eventType string, data interface{}) {
	payload, err := json.Marshal(Message{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to encode websocket event %s: %v", eventType, err)
		return
	}

	select {
	case m.deliver <- delivery{userID: userID, payload: payload}:
	default:
		logger.Warn("Websocket queue full, dropping %s for user %s", eventType, userID)
	}
}

// Serve registers client and pumps its connection until it closes.
func (m *Manager) Serve(client *Client) {
	m.Register(client)
	go client.writePump()
	client.readPump(m)
}

// readPump discards inbound frames; it exists to observe close and pong.
func (c *Client) readPump(m *Manager) {
	defer func() {
		m.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for %s: %v", c.UserID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Websocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
