package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	// client -> server
	MessageTypeConfigure MessageType = "configure"
	MessageTypeInput     MessageType = "input"
	MessageTypeSelect    MessageType = "select"
	MessageTypeDismiss   MessageType = "dismiss"

	// server -> client
	MessageTypeSuggestions  MessageType = "suggestions"
	MessageTypeSelected     MessageType = "selected"
	MessageTypeAirportAdded MessageType = "airport_added"
	MessageTypeError        MessageType = "error"
)

// Request is a message sent by the browser
type Request struct {
	Type  MessageType `json:"type"`
	Field string      `json:"field"`
	Text  string      `json:"text"`
	Index int         `json:"index"`
}

// Message is a message sent to the browser
type Message struct {
	Type        MessageType      `json:"type"`
	Field       string           `json:"field,omitempty"`
	Suggestions []models.Airport `json:"suggestions"`
	Value       string           `json:"value,omitempty"`
	Airport     *models.Airport  `json:"airport,omitempty"`
	Message     string           `json:"message,omitempty"`
	Timestamp   int64            `json:"timestamp"`
}

// MarshalJSON writes the suggestions key only on suggestions messages,
// where an empty list is sent as [] so the browser clears the field.
func (m Message) MarshalJSON() ([]byte, error) {
	type wire Message
	out := struct {
		wire
		Suggestions *[]models.Airport `json:"suggestions,omitempty"`
	}{wire: wire(m)}

	if m.Type == MessageTypeSuggestions {
		suggestions := m.Suggestions
		if suggestions == nil {
			suggestions = []models.Airport{}
		}
		out.Suggestions = &suggestions
	}
	return json.Marshal(out)
}

// Client represents a WebSocket client connection
type Client struct {
	id        uuid.UUID
	hub       *Hub
	conn      *websocket.Conn
	suggester *airport.Suggester

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// sendAll queues messages for the write pump. It reports false when the
// client is gone or too slow to keep up.
func (c *Client) sendAll(msgs []Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	for _, msg := range msgs {
		msg.Timestamp = time.Now().UnixMilli()
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("WebSocket: Failed to marshal message: %v", err)
			continue
		}
		select {
		case c.send <- data:
		default:
			return false
		}
	}
	return true
}

func suggestionsMessage(field string, suggestions []models.Airport) Message {
	if suggestions == nil {
		suggestions = []models.Airport{}
	}
	return Message{Type: MessageTypeSuggestions, Field: field, Suggestions: suggestions}
}

func errorMessage(err error) Message {
	return Message{Type: MessageTypeError, Message: err.Error()}
}

// handle applies one browser event to the session's suggester
func (c *Client) handle(req Request) []Message {
	switch req.Type {
	case MessageTypeConfigure:
		c.suggester.Configure(req.Field)
		return []Message{suggestionsMessage(req.Field, c.suggester.Suggestions(req.Field))}

	case MessageTypeInput:
		suggestions, err := c.suggester.OnInput(req.Field, req.Text)
		if err != nil {
			return []Message{errorMessage(err)}
		}
		return []Message{suggestionsMessage(req.Field, suggestions)}

	case MessageTypeSelect:
		value, err := c.suggester.Select(req.Field, req.Index)
		if err != nil {
			return []Message{errorMessage(err)}
		}
		return []Message{{Type: MessageTypeSelected, Field: req.Field, Value: value}}

	case MessageTypeDismiss:
		var msgs []Message
		for _, field := range c.suggester.Dismiss(req.Field) {
			msgs = append(msgs, suggestionsMessage(field, nil))
		}
		return msgs
	}

	return []Message{{Type: MessageTypeError, Message: "unknown message type " + string(req.Type)}}
}

// refresh re-runs every field's input after the airport list changed
func (c *Client) refresh(added []models.Airport) []Message {
	msgs := make([]Message, 0, len(added)+len(c.hub.fields))
	for i := range added {
		msgs = append(msgs, Message{Type: MessageTypeAirportAdded, Airport: &added[i]})
	}

	refreshed := c.suggester.Refresh()
	for _, field := range c.suggester.Fields() {
		msgs = append(msgs, suggestionsMessage(field, refreshed[field]))
	}
	return msgs
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket: Client %s read error: %v", c.id, err)
			}
			return
		}

		if !c.sendAll(c.handle(req)) {
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
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
