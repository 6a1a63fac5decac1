/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"testing"

	"connecto/internal/entity"
)

func TestCreateGroupAddsCreator(t *testing.T) {
	admin := &entity.User{UUID: "admin-1", Role: entity.RoleAdmin}
	groups := newMockGroupRepo()
	svc := NewGroupService(groups, newMockUserRepo(admin), &mockNotifier{})

	group, err := svc.CreateGroup("Grief support", "support", "A safe space", "admin-1")
	if err != nil {
		t.Fatalf("creating a group should succeed, got %v", err)
	}

	if group.CreatedBy != "admin-1" {
		t.Errorf("the creator should be recorded")
	}
	if len(group.Members) != 1 || group.Members[0].UUID != "admin-1" {
		t.Errorf("the creator should be the first member")
	}

	member, _ := groups.IsMember(group.UUID, "admin-1")
	if !member {
		t.Errorf("the membership should be persisted")
	}
}

func TestJoinGroup(t *testing.T) {
	alice := &entity.User{UUID: "alice", Role: entity.RoleUser}
	group := &entity.ChatGroup{UUID: "group-1", Name: "Mindfulness"}
	groups := newMockGroupRepo(group)
	notifier := &mockNotifier{}
	svc := NewGroupService(groups, newMockUserRepo(alice), notifier)

	joined, err := svc.JoinGroup("alice", "group-1")
	if err != nil {
		t.Fatalf("joining should succeed, got %v", err)
	}
	if joined.UUID != "group-1" {
		t.Errorf("the joined group should be returned")
	}

	member, _ := groups.IsMember("group-1", "alice")
	if !member {
		t.Errorf("alice should now be a member")
	}
	if len(notifier.subscribed) != 1 || notifier.subscribed[0] != "alice:group-1" {
		t.Errorf("the active connection should be subscribed to the room, got %v", notifier.subscribed)
	}
}

// Joining twice is a no-op on membership, but the room subscription is renewed
// every time since a reconnect may have replaced the socket.
func TestJoinGroupIdempotent(t *testing.T) {
	alice := &entity.User{UUID: "alice", Role: entity.RoleUser}
	group := &entity.ChatGroup{UUID: "group-1", Name: "Mindfulness", Members: []*entity.User{alice}}
	groups := newMockGroupRepo(group)
	notifier := &mockNotifier{}
	svc := NewGroupService(groups, newMockUserRepo(alice), notifier)

	if _, err := svc.JoinGroup("alice", "group-1"); err != nil {
		t.Fatalf("re-joining should succeed, got %v", err)
	}

	if len(group.Members) != 1 {
		t.Errorf("membership should not be duplicated, got %d members", len(group.Members))
	}
	if len(notifier.subscribed) != 1 {
		t.Errorf("the room subscription should still be renewed")
	}
}

func TestJoinUnknownGroup(t *testing.T) {
	svc := NewGroupService(newMockGroupRepo(), newMockUserRepo(), &mockNotifier{})

	if _, err := svc.JoinGroup("alice", "no-such-group"); !errors.Is(err, ErrNotFound) {
		t.Errorf("joining an unknown group should fail with ErrNotFound, got %v", err)
	}
}
