package websocket

import (
	"net/http"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// WebSocketHandler upgrades visitors into the live feed of one auction.
// The feed is read-only: bids go through the HTTP endpoint, the socket
// only carries bid_accepted / auction_extended / auction_ended events.
type WebSocketHandler struct {
	auctionRepo domain.AuctionRepository
	connManager domain.ConnectionManager
	log         logger.Logger
}

func NewWebSocketHandler(auctionRepo domain.AuctionRepository,
	connManager domain.ConnectionManager, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		auctionRepo: auctionRepo,
		connManager: connManager,
		log:         log,
	}
}

// Router returns the mux router serving the feed endpoint, mountable into
// any net/http server.
func (h *WebSocketHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws/auctions/{auctionID}", h.HandleConnection)
	return router
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auctionID := vars["auctionID"]

	auction, err := h.auctionRepo.GetByID(r.Context(), auctionID)
	if err != nil {
		h.log.Error("Failed to find auction", "error", err, "auction_id", auctionID)
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}

	if auction.State(time.Now()) == domain.AuctionStateEnded {
		h.log.Info("Rejected connection - auction has ended", "auction_id", auctionID)
		http.Error(w, "auction has already ended", http.StatusForbidden)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	wsConn := NewWebSocketConnection(conn, userID, auctionID, h.log)

	if err := h.connManager.RegisterConnection(userID, auctionID, wsConn); err != nil {
		h.log.Error("Failed to register connection", "error", err)
		conn.Close()
		return
	}

	go h.readLoop(wsConn, userID, auctionID)
}

// readLoop drains client frames so pings and close frames are processed;
// inbound payloads are ignored.
func (h *WebSocketHandler) readLoop(conn *WebSocketConnection, userID, auctionID string) {
	defer func() {
		h.connManager.UnregisterConnection(userID, auctionID)
		conn.Close()
	}()

	for {
		if _, _, err := conn.conn.ReadMessage(); err != nil {
			return
		}
	}
}
