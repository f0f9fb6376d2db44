package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSuggestionCreated  MessageType = "suggestion_created"
	MsgSuggestionResolved MessageType = "suggestion_resolved"
	MsgComplianceUpdate   MessageType = "compliance_update"
	MsgFormSubmitted      MessageType = "form_submitted"
	MsgReviewDecision     MessageType = "review_decision"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for form watchers. Several tabs
// or reviewers can watch the same form at once.
type Hub struct {
	// formID -> connection set
	formConns map[string]map[*Connection]struct{}
	// userID -> connection set, for decisions pushed to the owner
	userConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

type broadcastMessage struct {
	FormID  string // Empty means route by user instead
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		formConns:  make(map[string]map[*Connection]struct{}),
		userConns:  make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.formConns[conn.FormID] == nil {
				h.formConns[conn.FormID] = make(map[*Connection]struct{})
			}
			h.formConns[conn.FormID][conn] = struct{}{}
			if h.userConns[conn.UserID] == nil {
				h.userConns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.userConns[conn.UserID][conn] = struct{}{}
			log.Printf("User %s watching form %s", conn.UserID, conn.FormID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.formConns[conn.FormID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					if len(conns) == 0 {
						delete(h.formConns, conn.FormID)
					}
					if userSet, ok := h.userConns[conn.UserID]; ok {
						delete(userSet, conn)
						if len(userSet) == 0 {
							delete(h.userConns, conn.UserID)
						}
					}
					close(conn.Send)
					log.Printf("User %s stopped watching form %s", conn.UserID, conn.FormID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.FormID != "" {
				for conn := range h.formConns[msg.FormID] {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if msg.UserID != "" {
				for conn := range h.userConns[msg.UserID] {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToForm sends a message to everyone watching a form (implements service.Broadcaster)
func (h *Hub) BroadcastToForm(formID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &broadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToUser sends a message to all of a user's connections (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &broadcastMessage{
		UserID: userID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectForm closes all connections watching a form (implements service.Broadcaster)
func (h *Hub) DisconnectForm(formID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.formConns[formID] {
		if userSet, ok := h.userConns[conn.UserID]; ok {
			delete(userSet, conn)
			if len(userSet) == 0 {
				delete(h.userConns, conn.UserID)
			}
		}
		close(conn.Send)
	}
	delete(h.formConns, formID)
}
