package ws

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Envelope is the wire format for every server-to-client event.
type Envelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEnvelope stamps an event with the current time.
func NewEnvelope(event string, data interface{}) Envelope {
	return Envelope{Event: event, Data: data, Timestamp: time.Now()}
}

// CourseTopic returns the topic name for a course room.
func CourseTopic(courseID string) string {
	return "course_" + courseID
}

// Client is one live websocket connection.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan Envelope
}

// Reply delivers an event to this connection only.
func (c *Client) Reply(env Envelope) {
	c.deliver(env)
}

// deliver is non-blocking: the bus is best-effort, so a client that cannot
// drain its buffer loses the message instead of stalling the publisher.
func (c *Client) deliver(env Envelope) {
	select {
	case c.send <- env:
	default:
		logrus.WithFields(logrus.Fields{"client": c.ID, "event": env.Event}).
			Warn("Dropping event for slow websocket client")
	}
}

// Hub is the in-process notification bus: global broadcast plus
// course-scoped topics. Membership is mutated by join/leave/disconnect and
// read by every publish, so both maps sit behind one RWMutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	topics  map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		topics:  make(map[string]map[*Client]bool),
	}
}

// NewClient registers a connection with the hub.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan Envelope, 32),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	logrus.WithField("client", client.ID).Info("Websocket client connected")
	return client
}

// Remove detaches the client from the hub and from every topic it joined,
// then closes its outbound channel.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for topic, members := range h.topics {
		delete(members, client)
		if len(members) == 0 {
			delete(h.topics, topic)
		}
	}
	h.mu.Unlock()

	close(client.send)
	logrus.WithField("client", client.ID).Info("Websocket client disconnected")
}

// Join adds the client to a topic. Effective immediately for subsequent
// publishes; there is no backfill of earlier events.
func (h *Hub) Join(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	members, ok := h.topics[topic]
	if !ok {
		members = make(map[*Client]bool)
		h.topics[topic] = members
	}
	members[client] = true
}

// Leave removes the client from a topic. Leaving a topic the client never
// joined is a no-op.
func (h *Hub) Leave(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.topics, topic)
	}
}

// Broadcast delivers an event to every connected client.
func (h *Hub) Broadcast(env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.deliver(env)
	}
}

// PublishToTopic delivers an event to the clients currently joined to the
// topic.
func (h *Hub) PublishToTopic(topic string, env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.topics[topic] {
		client.deliver(env)
	}
}
