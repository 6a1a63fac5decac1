/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package presence

import (
	"reflect"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("user-1", "conn-1")

	connID, ok := r.Lookup("user-1")
	if !ok {
		t.Errorf("user-1 should be online after Register")
	}
	if connID != "conn-1" {
		t.Errorf("Lookup should return conn-1, not %s", connID)
	}

	_, ok = r.Lookup("user-2")
	if ok {
		t.Errorf("user-2 was never registered, Lookup should fail")
	}
}

func TestLastConnectWins(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("user-1", "conn-1")
	r.Register("user-1", "conn-2")

	connID, ok := r.Lookup("user-1")
	if !ok {
		t.Errorf("user-1 should still be online")
	}
	if connID != "conn-2" {
		t.Errorf("the newer connection should win, got %s", connID)
	}
}

func TestUnregisterRemovesEntry(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("user-1", "conn-1")
	r.Unregister("user-1", "conn-1")

	if _, ok := r.Lookup("user-1"); ok {
		t.Errorf("user-1 should be offline after Unregister")
	}
}

// A reconnect replaces the old connection; when the old connection's
// disconnect arrives afterwards, it must not evict the new one.
func TestStaleDisconnectKeepsNewConnection(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("user-1", "conn-1")
	r.Register("user-1", "conn-2")
	r.Unregister("user-1", "conn-1")

	connID, ok := r.Lookup("user-1")
	if !ok {
		t.Fatalf("user-1 should still be online after the stale disconnect")
	}
	if connID != "conn-2" {
		t.Errorf("the active connection should be conn-2, not %s", connID)
	}
}

func TestOnlineIsSorted(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("charlie", "c1")
	r.Register("alice", "c2")
	r.Register("bob", "c3")

	got := r.Online()
	want := []string{"alice", "bob", "charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Online should return %v, got %v", want, got)
	}
}

func TestRegisterIgnoresEmptyUser(t *testing.T) {
	r := NewMemoryRegistry()

	r.Register("", "conn-1")

	if len(r.Online()) != 0 {
		t.Errorf("an empty user id should not be tracked")
	}
}
