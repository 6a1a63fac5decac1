/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"connecto/internal/entity"
	"connecto/internal/logging"
	"connecto/internal/repository"
)

// Notifier is the realtime side channel. Its methods return nothing on
// purpose: emission is best-effort and MUST NOT be treated as a delivery
// guarantee — the stores are the source of truth and offline recipients catch
// up by fetching.
type Notifier interface {
	NotifyDirect(receiverUUID string, payload any)  // Push a direct message event to the receiver, if connected
	NotifyGroup(groupUUID string, payload any)      // Push a group message event to the group's room
	SubscribeGroup(userUUID, groupUUID string)      // Join the user's active connection to the group's room
}

// Content of an outgoing message. At least one field must be non-empty;
// image/audio are URLs of media hosted by the upload collaborator.
type MessageContent struct {
	Text  string
	Image string
	Audio string
}

func (c MessageContent) empty() bool {
	return c.Text == "" && c.Image == "" && c.Audio == ""
}

// Service used to handle messages, both for DMs and group chats, plus the
// contact lists the SPA sidebar is built from.
type MessageService interface {
	SendDirect(senderUUID, receiverUUID string, content MessageContent) (*entity.Message, error)   // Persists a DM, then pushes it to the receiver if online
	GetConversation(userUUID, otherUUID string) ([]*entity.Message, error)                         // Retrieves the messages between two users, oldest first
	SendGroup(senderUUID, groupUUID string, content MessageContent) (*entity.GroupMessage, error)  // Persists a group message, then pushes it to the room
	GetGroupMessages(userUUID, groupUUID string) ([]*entity.GroupMessage, error)                   // Retrieves a group's messages; members only
	GetContacts(current *entity.User) ([]*entity.User, error)                                      // Sidebar: referred users for professionals, peers otherwise
	GetTherapists() ([]*entity.User, error)                                                        // Verified therapists shown to end users
}

type messageService struct {
	messages repository.MessageRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewMessageService(messages repository.MessageRepository, groups repository.GroupRepository, users repository.UserRepository, notifier Notifier) MessageService {
	return &messageService{
		messages: messages,
		groups:   groups,
		users:    users,
		notifier: notifier,
		logger:   logging.With("message-service"),
	}
}

func (m *messageService) SendDirect(senderUUID, receiverUUID string, content MessageContent) (*entity.Message, error) {
	if content.empty() {
		return nil, fmt.Errorf("%w: a message needs text, an image or an audio note", ErrInvalidInput)
	}
	if _, err := m.users.GetByUUID(receiverUUID); err != nil {
		return nil, fmt.Errorf("%w: receiver does not exist", ErrNotFound)
	}

	message := &entity.Message{
		UUID:         uuid.New().String(),
		SenderUUID:   senderUUID,
		ReceiverUUID: receiverUUID,
		Text:         content.Text,
		Image:        content.Image,
		Audio:        content.Audio,
		CreatedAt:    time.Now(),
	}
	if err := m.messages.CreateDirect(message); err != nil {
		return nil, err
	}

	// Best-effort push. When the receiver is offline the message is simply
	// waiting in the store for the next fetch.
	m.notifier.NotifyDirect(receiverUUID, message)

	return message, nil
}

func (m *messageService) GetConversation(userUUID, otherUUID string) ([]*entity.Message, error) {
	if _, err := m.users.GetByUUID(otherUUID); err != nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return m.messages.GetConversation(userUUID, otherUUID)
}

func (m *messageService) SendGroup(senderUUID, groupUUID string, content MessageContent) (*entity.GroupMessage, error) {
	if content.empty() {
		return nil, fmt.Errorf("%w: a message needs text, an image or an audio note", ErrInvalidInput)
	}
	if _, err := m.groups.GetByUUID(groupUUID); err != nil {
		return nil, fmt.Errorf("%w: group does not exist", ErrNotFound)
	}

	member, err := m.groups.IsMember(groupUUID, senderUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: you are not a member of this group", ErrForbidden)
	}

	message := &entity.GroupMessage{
		UUID:       uuid.New().String(),
		GroupUUID:  groupUUID,
		SenderUUID: senderUUID,
		Text:       content.Text,
		Image:      content.Image,
		Audio:      content.Audio,
		CreatedAt:  time.Now(),
	}
	if err := m.messages.CreateGroup(message); err != nil {
		return nil, err
	}

	m.notifier.NotifyGroup(groupUUID, message)

	return message, nil
}

func (m *messageService) GetGroupMessages(userUUID, groupUUID string) ([]*entity.GroupMessage, error) {
	if _, err := m.groups.GetByUUID(groupUUID); err != nil {
		return nil, fmt.Errorf("%w: group does not exist", ErrNotFound)
	}

	member, err := m.groups.IsMember(groupUUID, userUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: you are not a member of this group", ErrForbidden)
	}

	return m.messages.GetGroup(groupUUID)
}

// GetContacts builds the sidebar list: verified professionals see the end
// users that signed up with their code, end users see their peers.
func (m *messageService) GetContacts(current *entity.User) ([]*entity.User, error) {
	if current.Role.IsProfessional() && current.Status == entity.StatusVerified {
		return m.users.GetReferred(current.UUID)
	}
	return m.users.GetPeers(current.UUID)
}

func (m *messageService) GetTherapists() ([]*entity.User, error) {
	return m.users.GetByRoleAndStatus(entity.RoleTherapist, entity.StatusVerified)
}
