// Package realtime pushes order updates to subscribed clients. The payment
// status page subscribes to its order id and waits for the webhook to flip
// payment_status to paid.
package realtime

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"lulukitchen/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// OrderEvent is the wire message sent to subscribers.
type OrderEvent struct {
	OrderID       uint   `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type Hub struct {
	log *zap.Logger

	mutex   sync.Mutex
	clients map[uint]map[*websocket.Conn]bool

	broadcast chan OrderEvent
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:       log,
		clients:   make(map[uint]map[*websocket.Conn]bool),
		broadcast: make(chan OrderEvent, 100), // Buffered channel to prevent blocking
	}
}

// Run delivers broadcast events to the subscribers of each order.
func (h *Hub) Run() {
	for event := range h.broadcast {
		message, err := json.Marshal(event)
		if err != nil {
			h.log.Error("failed to marshal order event", zap.Error(err))
			continue
		}
		h.mutex.Lock()
		for client := range h.clients[event.OrderID] {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				h.log.Warn("websocket write error", zap.Error(err))
				client.Close()
				delete(h.clients[event.OrderID], client)
			}
		}
		h.mutex.Unlock()
	}
}

// BroadcastOrder queues an update for the order's subscribers.
func (h *Hub) BroadcastOrder(order *models.Order) {
	h.broadcast <- OrderEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}
}

// Handler upgrades the connection and subscribes it to the order id given in
// the order_id query parameter.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseUint(r.URL.Query().Get("order_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uint(orderID)
	h.mutex.Lock()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*websocket.Conn]bool)
	}
	h.clients[id][conn] = true
	h.mutex.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", zap.Error(err))
			}
			h.mutex.Lock()
			delete(h.clients[id], conn)
			h.mutex.Unlock()
			break
		}
	}
}
