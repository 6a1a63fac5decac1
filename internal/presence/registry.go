/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package presence tracks which users currently hold a live realtime
// connection. Entries exist only in process memory: they are gone on restart
// and are never shared across instances.
package presence

import (
	"sort"
	"sync"
)

// Registry maps a user to its active connection. At most one connection per
// user is tracked: a second register for the same user overwrites the first
// (last-connect wins), and the replaced connection is not closed here.
type Registry interface {
	Register(userID, connID string)      // Records connID as the user's active connection
	Lookup(userID string) (string, bool) // Returns the active connection, if any
	Unregister(userID, connID string)    // Removes the entry, only if connID is still the active one
	Online() []string                    // Sorted list of user ids with an active connection
}

// In-memory implementation. The RWMutex is required here: unlike the
// cooperative single-thread runtime this design came from, connection
// handlers run on separate goroutines.
type memoryRegistry struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewMemoryRegistry() Registry {
	return &memoryRegistry{byUser: make(map[string]string)}
}

func (r *memoryRegistry) Register(userID, connID string) {
	if userID == "" {
		return
	}
	r.mu.Lock()
	r.byUser[userID] = connID
	r.mu.Unlock()
}

func (r *memoryRegistry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	connID, ok := r.byUser[userID]
	r.mu.RUnlock()
	return connID, ok
}

// Unregister drops the entry only when connID still matches the registered
// one. A bare delete would let the late disconnect of a replaced connection
// evict the entry of the connection that replaced it.
func (r *memoryRegistry) Unregister(userID, connID string) {
	r.mu.Lock()
	if current, ok := r.byUser[userID]; ok && current == connID {
		delete(r.byUser, userID)
	}
	r.mu.Unlock()
}

func (r *memoryRegistry) Online() []string {
	r.mu.RLock()
	users := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		users = append(users, userID)
	}
	r.mu.RUnlock()

	sort.Strings(users)
	return users
}
