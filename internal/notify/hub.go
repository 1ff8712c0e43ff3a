package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"garderobe/internal/wardrobe"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Mobile clients connect from app webviews, not a fixed origin
	},
}

// Hub fans wardrobe change events out to connected clients. Each client
// is bound to one user and only sees that user's events.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	user string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Ensure Hub implements the store's notifier contract
var _ wardrobe.Notifier = (*Hub)(nil)

// Publish delivers an event to every client subscribed as the event's
// user. Slow clients drop events rather than block a mutation.
func (h *Hub) Publish(evt wardrobe.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("Error marshaling change event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.user != evt.User {
			continue
		}
		select {
		case c.send <- data:
		default:
			log.Println("WebSocket buffer full, dropping change event")
		}
	}
}

// HandleWebSocket upgrades the request and subscribes the authenticated
// user to their change feed.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	user := c.GetString("user_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	cl := &client{user: user, conn: conn, send: make(chan []byte, 256)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go cl.writePump()
	go h.readPump(cl)
}

// readPump drains the connection so pings, pongs, and the close handshake
// are processed; clients never send application messages on this feed.
func (h *Hub) readPump(cl *client) {
	// cl.send is never closed; Publish may race a disconnect, and the
	// write pump exits on its own once the connection is gone.
	defer func() {
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps events from the hub to the WebSocket connection
func (cl *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case message, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
