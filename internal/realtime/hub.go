/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package realtime carries the websocket side channel: new-message pushes and
// the online-user broadcast. Delivery is best-effort by contract — nothing in
// the system may treat a successful emit as proof of delivery; the stores are
// the source of truth and offline clients catch up by fetching.
package realtime

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"connecto/internal/logging"
	"connecto/internal/presence"
)

// Event types pushed to clients.
const (
	EventNewMessage      = "newMessage"      // A direct message for this client's user
	EventNewGroupMessage = "newGroupMessage" // A message in a group room this client joined
	EventOnlineUsers     = "getOnlineUsers"  // Full list of online user ids, sent on every connect/disconnect
)

// Event is the envelope written to the socket.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// GroupRoom names the broadcast room of a group.
func GroupRoom(groupUUID string) string {
	return "group_" + groupUUID
}

// Hub maintains the set of active clients, the group rooms, and the presence
// registry. One hub per process; rooms and presence are process-local.
type Hub struct {
	registry presence.Registry

	mu      sync.RWMutex
	clients map[string]*Client            // conn id -> client
	rooms   map[string]map[string]*Client // room -> conn id -> client

	register   chan *Client
	unregister chan *Client

	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(registry presence.Registry, allowedOrigins []string) *Hub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Hub{
		registry:   registry,
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		log: logging.With("realtime-hub"),
	}
}

// Run processes connect/disconnect events until the context is canceled, then
// closes every client so the hub can be restarted cleanly.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			h.log.Info().Msg("realtime hub stopped")
			return ctx.Err()

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.connID] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.registry.Register(client.userUUID, client.connID)
	h.log.Info().Str("user", client.userUUID).Int("total_clients", total).Msg("websocket client connected")

	h.broadcastOnline()
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.connID]; ok {
		delete(h.clients, client.connID)
		close(client.send)
	}
	for room, members := range h.rooms {
		delete(members, client.connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	// The registry ignores this when a newer connection already replaced the
	// one going away, so a late disconnect cannot knock a live user offline.
	h.registry.Unregister(client.userUUID, client.connID)
	h.log.Info().Str("user", client.userUUID).Int("total_clients", total).Msg("websocket client disconnected")

	h.broadcastOnline()
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	for connID, client := range h.clients {
		close(client.send)
		delete(h.clients, connID)
		h.registry.Unregister(client.userUUID, client.connID)
	}
	h.rooms = make(map[string]map[string]*Client)
	h.mu.Unlock()
}

// broadcastOnline pushes the full online-user-id list to every client.
func (h *Hub) broadcastOnline() {
	event := Event{Type: EventOnlineUsers, Data: h.registry.Online()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- event:
		default:
			// Slow client, skip. Its next fetch catches it up.
		}
	}
}

// NotifyDirect emits a newMessage event to the receiver's active connection,
// if there is one. No queuing for offline users.
func (h *Hub) NotifyDirect(receiverUUID string, payload any) {
	connID, ok := h.registry.Lookup(receiverUUID)
	if !ok {
		return
	}

	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- Event{Type: EventNewMessage, Data: payload}:
	default:
		h.log.Warn().Str("user", receiverUUID).Msg("send buffer full, dropping direct notification")
	}
}

// NotifyGroup emits a newGroupMessage event to every connection subscribed to
// the group's room.
func (h *Hub) NotifyGroup(groupUUID string, payload any) {
	event := Event{Type: EventNewGroupMessage, Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[GroupRoom(groupUUID)] {
		select {
		case client.send <- event:
		default:
			h.log.Warn().Str("user", client.userUUID).Msg("send buffer full, dropping group notification")
		}
	}
}

// SubscribeGroup joins the user's active connection to the group room. Only
// the currently-active connection is subscribed, consistent with the
// registry's last-connect-wins policy.
func (h *Hub) SubscribeGroup(userUUID, groupUUID string) {
	connID, ok := h.registry.Lookup(userUUID)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[connID]
	if !ok {
		return
	}

	room := GroupRoom(groupUUID)
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][connID] = client
}

// ServeWS upgrades an HTTP request to a websocket connection and hands it to
// the hub. The user id travels in the query string, as the SPA client sets it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userUUID := r.URL.Query().Get("userId")
	if userUUID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h, conn, uuid.New().String(), userUUID)
	h.register <- client
	client.start()
}
