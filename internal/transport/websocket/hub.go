// Package websocket
package websocket

import (
	"context"
	"slices"

	"socprobe/internal/codec"
	"socprobe/internal/domain"
	"socprobe/internal/logger"
)

type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription

	events chan *domain.WsServerEvent
	done   chan struct{}

	log logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),

		events: make(chan *domain.WsServerEvent, 100),
		done:   make(chan struct{}),

		log: log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			close(h.done)
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))
			}

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			if !slices.Contains(domain.WsChannels(), sub.channel) {
				h.reply(sub.client, sub.channel, domain.WsEventError, "unknown channel")
				continue
			}
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.reply(sub.client, sub.channel, domain.WsEventSubscribed, nil)
			h.log.Debug("ws: client subscribed", "client_id", sub.client.ID, "channel", sub.channel)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					if len(subs) == 0 {
						delete(h.channels, sub.channel)
					}
					h.reply(sub.client, sub.channel, domain.WsEventUnsubscribed, nil)
					h.log.Debug("ws: client unsubscribed", "client_id", sub.client.ID, "channel", sub.channel)
				}
			}

		case event := <-h.events:
			h.handleEvent(event)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)

	for channel, subs := range h.channels {
		if _, subscribed := subs[client]; subscribed {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
	}
}

func (h *Hub) reply(client *Client, channel, event string, payload any) {
	message, err := codec.JSON.Marshal(&domain.WsServerEvent{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		h.log.Error("ws: failed to marshal reply", "error", err)
		return
	}

	select {
	case client.send <- message:
	default:
	}
}

func (h *Hub) handleEvent(event *domain.WsServerEvent) {
	subs, ok := h.channels[event.Channel]
	if !ok {
		return
	}

	message, err := codec.JSON.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "error", err)
		return
	}

	for client := range subs {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
			h.drop(client)
		}
	}
}

// send hands v to the run loop unless the hub has stopped.
func send[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}

// Broadcast queues an event for the subscribers of channel. It never
// blocks; events are dropped while the queue is full.
func (h *Hub) Broadcast(channel, event string, payload any) {
	select {
	case h.events <- &domain.WsServerEvent{Channel: channel, Event: event, Payload: payload}:
	default:
		h.log.Warn("ws: event queue full, dropping event", "channel", channel)
	}
}

// Publish fans a snapshot out to the snapshot channel and to each
// per-family channel.
func (h *Hub) Publish(s domain.Snapshot) {
	h.Broadcast(domain.WsChannelSnapshot, domain.WsEventSnapshot, s)
	h.Broadcast(domain.WsChannelCPU, domain.WsEventFamily, s.CPU)
	h.Broadcast(domain.WsChannelGPU, domain.WsEventFamily, s.GPU)
	h.Broadcast(domain.WsChannelMemory, domain.WsEventFamily, s.Memory)
	h.Broadcast(domain.WsChannelPower, domain.WsEventFamily, s.Power)
	h.Broadcast(domain.WsChannelThermal, domain.WsEventFamily, s.Thermal)
	h.Broadcast(domain.WsChannelDisk, domain.WsEventFamily, s.Disk)
	h.Broadcast(domain.WsChannelNetwork, domain.WsEventFamily, s.Network)
}
