package fanout

import (
	"sync"

	"justfood/pkg/logger"
	"justfood/pkg/models"
)

// Conn is the minimal connection surface the hub needs. *websocket.Conn
// satisfies it once wrapped for write serialization; tests inject fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub is the in-process connection registry: one room per order number plus
// a single admin room observing all activity. Constructed once per process
// and injected wherever it is needed; there is no package-level state.
//
// Delivery is fire-and-forget. A connection whose write fails is dropped
// from every room; there is no replay, clients resync over HTTP.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[Conn]struct{}
	admin map[Conn]struct{}
	mylog *logger.Logger
}

func NewHub(mylog *logger.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[Conn]struct{}),
		admin: make(map[Conn]struct{}),
		mylog: mylog,
	}
}

// Join subscribes a connection to an order's room. The order number itself
// is the capability token; no ownership check is made.
func (h *Hub) Join(orderNumber string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[orderNumber]
	if !ok {
		room = make(map[Conn]struct{})
		h.rooms[orderNumber] = room
	}
	room[c] = struct{}{}

	h.mylog.Debug("", "room_joined", "Client joined order room "+orderNumber)
}

func (h *Hub) Leave(orderNumber string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[orderNumber]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, orderNumber)
		}
	}

	h.mylog.Debug("", "room_left", "Client left order room "+orderNumber)
}

func (h *Hub) JoinAdmin(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.admin[c] = struct{}{}
	h.mylog.Debug("", "admin_joined", "Client joined admin room")
}

// Remove drops a connection from every room. Called on disconnect.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c Conn) {
	for number, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, number)
		}
	}
	delete(h.admin, c)
}

// PublishStatusChange delivers the snapshot to the order's room and to the
// admin room.
func (h *Hub) PublishStatusChange(order *models.Order) error {
	h.broadcast(h.members(order.OrderNumber, true), Event{Type: EventOrderUpdate, Order: order})
	return nil
}

// PublishNewOrder goes to the admin room only; the customer subscription
// for a brand-new order does not exist yet.
func (h *Hub) PublishNewOrder(order *models.Order) error {
	h.broadcast(h.members("", true), Event{Type: EventNewOrder, Order: order})
	return nil
}

// members snapshots the recipient set under the lock so writes happen
// outside it.
func (h *Hub) members(orderNumber string, includeAdmin bool) []Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[Conn]struct{})
	var out []Conn

	if orderNumber != "" {
		for c := range h.rooms[orderNumber] {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	if includeAdmin {
		for c := range h.admin {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

func (h *Hub) broadcast(conns []Conn, event Event) {
	for _, c := range conns {
		if err := c.WriteJSON(event); err != nil {
			h.mylog.Warn("", "subscriber_dropped", "Dropping subscriber after failed write")
			h.Remove(c)
			_ = c.Close()
		}
	}
}
