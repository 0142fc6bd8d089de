package websocket

import (
	"context"

	"streetmarket/internal/domain"
)

type WebSocketNotifier struct {
	connManager domain.ConnectionManager
}

func NewWebSocketNotifier(connManager domain.ConnectionManager) *WebSocketNotifier {
	return &WebSocketNotifier{connManager: connManager}
}

func (n *WebSocketNotifier) BroadcastToAuction(ctx context.Context, auctionID string, message interface{}) error {
	return n.connManager.BroadcastToAuction(auctionID, message)
}

func (n *WebSocketNotifier) CloseAuction(auctionID string) error {
	return n.connManager.CloseAndUnregisterConnections(auctionID)
}
