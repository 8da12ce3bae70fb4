package realtime

import (
	"context"
	"encoding/json"

	"desidine-api/models"
	"desidine-api/pkg/logger"
)

// Event is the wire format pushed to order subscribers.
type Event struct {
	OrderID string             `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
}

// Hub fans order-status events out to websocket clients. Each client
// subscribes to exactly one order room.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	done       chan struct{}
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// subscribe adds the client to its order room. It reports false once the
// hub has shut down, so sends never block after Run returns.
func (h *Hub) subscribe(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// drop removes the client; a no-op once the hub has shut down.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run owns all room state; it must be the only goroutine touching h.rooms.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, room := range h.rooms {
				for client := range room {
					close(client.send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			return

		case client := <-h.register:
			room, ok := h.rooms[client.orderID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.orderID] = room
			}
			room[client] = true
			h.log.Infow("subscriber joined", "order_id", client.orderID, "room_size", len(room))

		case client := <-h.unregister:
			if room, ok := h.rooms[client.orderID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.orderID)
					}
				}
			}

		case event := <-h.events:
			room, ok := h.rooms[event.OrderID]
			if !ok {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Errorw("marshal order event", "error", err)
				continue
			}
			for client := range room {
				select {
				case client.send <- payload:
				default:
					// slow consumer, drop it rather than block the hub
					delete(room, client)
					close(client.send)
				}
			}
		}
	}
}

// PublishOrderStatus implements Publisher. Events are dropped when the
// hub's buffer is full; status pushes are fire-and-forget.
func (h *Hub) PublishOrderStatus(orderID string, status models.OrderStatus) {
	select {
	case h.events <- Event{OrderID: orderID, Status: status}:
	default:
		h.log.Warnw("event buffer full, dropping order status push", "order_id", orderID)
	}
}
