package websocket

import (
	"encoding/json"
	"sync"

	"streetmarket/pkg/logger"

	"github.com/gorilla/websocket"
)

// WebSocketConnection wraps a gorilla connection with a write lock, since
// gorilla/websocket permits only one concurrent writer.
type WebSocketConnection struct {
	conn      *websocket.Conn
	userID    string
	auctionID string
	writeMu   sync.Mutex
	log       logger.Logger
}

func NewWebSocketConnection(conn *websocket.Conn, userID, auctionID string, log logger.Logger) *WebSocketConnection {
	return &WebSocketConnection{
		conn:      conn,
		userID:    userID,
		auctionID: auctionID,
		log:       log,
	}
}

func (c *WebSocketConnection) Send(message interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	switch msg := message.(type) {
	case []byte:
		return c.conn.WriteMessage(websocket.TextMessage, msg)
	default:
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return c.conn.WriteMessage(websocket.TextMessage, data)
	}
}

func (c *WebSocketConnection) Close() error {
	return c.conn.Close()
}

func (c *WebSocketConnection) UserID() string {
	return c.userID
}

func (c *WebSocketConnection) AuctionID() string {
	return c.auctionID
}
