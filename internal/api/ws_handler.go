package api

import (
	"net/http"
	"sync"

	"justfood/internal/auth"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tracking is public given the order number; origin is not a gate here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is what clients send on the socket. Joining the admin room
// requires a staff token; order rooms are open, the order number is the
// capability.
type wsMessage struct {
	Action      string `json:"action"`
	OrderNumber string `json:"order_number,omitempty"`
	Token       string `json:"token,omitempty"`
}

type wsAck struct {
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.mylog.Error(requestID, "ws_upgrade_failed", "Failed to upgrade connection", err)
		return
	}

	conn := &wsConn{conn: rawConn}
	s.mylog.Debug(requestID, "ws_connected", "Realtime client connected")

	defer func() {
		s.hub.Remove(conn)
		_ = conn.Close()
		s.mylog.Debug(requestID, "ws_disconnected", "Realtime client disconnected")
	}()

	for {
		var msg wsMessage
		if err := rawConn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Action {
		case "join-order":
			if msg.OrderNumber == "" {
				_ = conn.WriteJSON(wsAck{Type: "error", Detail: "order_number is required"})
				continue
			}
			s.hub.Join(msg.OrderNumber, conn)
			_ = conn.WriteJSON(wsAck{Type: "joined", Detail: msg.OrderNumber})

		case "leave-order":
			s.hub.Leave(msg.OrderNumber, conn)
			_ = conn.WriteJSON(wsAck{Type: "left", Detail: msg.OrderNumber})

		case "join-admin":
			claims, err := auth.ParseJWT(s.cfg.Auth.JWTSecret, msg.Token)
			if err != nil || !auth.IsStaff(claims.Role) {
				_ = conn.WriteJSON(wsAck{Type: "error", Detail: "staff token required"})
				continue
			}
			s.hub.JoinAdmin(conn)
			_ = conn.WriteJSON(wsAck{Type: "joined", Detail: "admin"})

		default:
			_ = conn.WriteJSON(wsAck{Type: "error", Detail: "unknown action"})
		}
	}
}
