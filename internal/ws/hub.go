package ws

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Event names on the realtime channel.
const (
	EventJoinSession  = "join_session"
	EventLeaveSession = "leave_session"
	EventSystem       = "system"
)

// Event is the wire envelope in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type systemPayload struct {
	Message string `json:"message"`
}

type roomRef struct {
	Code string `json:"code"`
}

type membership struct {
	client *Client
	code   string
}

type roomMessage struct {
	code    string
	payload []byte
}

// Hub owns the in-memory room membership: session code -> subscriber set.
// All state is confined to the Run goroutine; callers talk to it over
// channels. Membership lives for the process lifetime only; clients rejoin
// after a restart.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	publish    chan roomMessage

	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		publish:    make(chan roomMessage, 256),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			h.drop(c)
		case m := <-h.join:
			if _, ok := h.clients[m.client]; !ok {
				continue
			}
			room := h.rooms[m.code]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[m.code] = room
			}
			if _, ok := room[m.client]; ok {
				continue
			}
			room[m.client] = struct{}{}
			m.client.rooms[m.code] = struct{}{}
			// Confirmation goes to the joiner only, not the room.
			if payload, err := encode(EventSystem, systemPayload{Message: "joined session " + m.code}); err == nil {
				h.deliver(m.client, payload)
			}
		case m := <-h.leave:
			if room := h.rooms[m.code]; room != nil {
				delete(room, m.client)
				if len(room) == 0 {
					delete(h.rooms, m.code)
				}
			}
			delete(m.client.rooms, m.code)
		case msg := <-h.publish:
			for c := range h.rooms[msg.code] {
				h.deliver(c, msg.payload)
			}
		}
	}
}

// deliver hands a payload to one subscriber without blocking the loop. A
// subscriber whose buffer is full is stale or too slow and gets pruned.
func (h *Hub) deliver(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for code := range c.rooms {
		if room := h.rooms[code]; room != nil {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	close(c.send)
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

func (h *Hub) Join(c *Client, code string) {
	h.join <- membership{client: c, code: code}
}

func (h *Hub) Leave(c *Client, code string) {
	h.leave <- membership{client: c, code: code}
}

// Publish fans payload out to every current member of the room. Best
// effort: no subscribers is fine, and a full publish queue drops the event
// rather than stall the caller.
func (h *Hub) Publish(code, event string, payload interface{}) {
	if h == nil {
		return
	}
	raw, err := encode(event, payload)
	if err != nil {
		h.logger.Warn("ws: failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.publish <- roomMessage{code: code, payload: raw}:
	default:
		h.logger.Warn("ws: publish queue full, event dropped",
			zap.String("code", code),
			zap.String("event", event),
		)
	}
}

func encode(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: data})
}
