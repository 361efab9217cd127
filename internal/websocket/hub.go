package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"site-gallery-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries site broadcasts between instances.
const ClusterChannel = "gallery_events"

type Hub struct {
	// Registered clients: site slug -> connections watching that site
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance communication, nil on a single instance
	rdb *redis.Client

	// instanceId lets an instance ignore its own relayed messages
	instanceId string

	logger logger.ILogger
}

type clusterMessage struct {
	Origin     string          `json:"origin"`
	TargetSite string          `json:"target_site"`
	Message    json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

// Run processes registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SiteSlug] = append(h.clients[client.SiteSlug], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"site": client.SiteSlug, "user_id": client.UserId})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SiteSlug]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SiteSlug] = append(clients[:i], clients[i+1:]...)
			client.closeSend()
			break
		}
	}
	if len(h.clients[client.SiteSlug]) == 0 {
		delete(h.clients, client.SiteSlug)
	}
}

// ClientCount reports the live connections for a site.
func (h *Hub) ClientCount(siteSlug string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[siteSlug])
}

// BroadcastToSite sends {type, data} to every client of the site, here and on
// the other instances.
func (h *Hub) BroadcastToSite(siteSlug, eventType string, data interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode broadcast", map[string]interface{}{"site": siteSlug, "error": err.Error()})
		return
	}

	h.deliver(siteSlug, msg)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.instanceId, TargetSite: siteSlug, Message: msg})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to relay broadcast", map[string]interface{}{"site": siteSlug, "error": err.Error()})
		}
	}
}

// deliver never blocks: a client whose buffer is full is dropped. The read
// lock is held while sending so remove cannot close a channel mid-send.
func (h *Hub) deliver(siteSlug string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[siteSlug] {
		select {
		case client.Send <- msg:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"site": siteSlug})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliver(payload.TargetSite, payload.Message)
		}
	}
}
