/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"connecto/internal/entity"
	"connecto/internal/genai"
)

// In-memory stand-ins for the repositories. A non-empty failOn makes the
// matching method return an error, and trace (when shared) records the call
// order across mocks.

type mockUserRepo struct {
	users  map[string]*entity.User
	failOn string
	trace  *[]string
}

func newMockUserRepo(users ...*entity.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.UUID] = u
	}
	return repo
}

func (m *mockUserRepo) record(op string) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, op)
	}
	if m.failOn == op {
		return fmt.Errorf("simulated %s failure", op)
	}
	return nil
}

func (m *mockUserRepo) Create(user *entity.User) error {
	if err := m.record("users.Create"); err != nil {
		return err
	}
	m.users[user.UUID] = user
	return nil
}

func (m *mockUserRepo) Save(user *entity.User) error {
	if err := m.record("users.Save"); err != nil {
		return err
	}
	m.users[user.UUID] = user
	return nil
}

func (m *mockUserRepo) Delete(uuid string) error {
	if err := m.record("users.Delete"); err != nil {
		return err
	}
	delete(m.users, uuid)
	return nil
}

func (m *mockUserRepo) GetByUUID(uuid string) (*entity.User, error) {
	if user, ok := m.users[uuid]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetForLogin(email string) (*entity.User, error) {
	return m.GetByEmail(email)
}

func (m *mockUserRepo) GetReferrer(code string) (*entity.User, error) {
	for _, user := range m.users {
		if user.ReferralCode == code && user.Status == entity.StatusVerified && user.Role != entity.RoleUser {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetAll() ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepo) GetPendingProfessionals() ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		if user.Status == entity.StatusPending && user.Role != entity.RoleUser && user.Role != entity.RoleAdmin {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *mockUserRepo) GetByRoleAndStatus(role entity.Role, status entity.Status) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		if user.Role == role && user.Status == status {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *mockUserRepo) GetPeers(excludeUUID string) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		if user.Role == entity.RoleUser && user.UUID != excludeUUID {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *mockUserRepo) GetReferred(referrerUUID string) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range m.users {
		if user.ReferredBy != nil && *user.ReferredBy == referrerUUID && user.Role == entity.RoleUser {
			users = append(users, user)
		}
	}
	return users, nil
}

type mockMessageRepo struct {
	direct []*entity.Message
	group  []*entity.GroupMessage
	failOn string
	trace  *[]string
}

func (m *mockMessageRepo) record(op string) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, op)
	}
	if m.failOn == op {
		return fmt.Errorf("simulated %s failure", op)
	}
	return nil
}

func (m *mockMessageRepo) CreateDirect(message *entity.Message) error {
	if err := m.record("messages.CreateDirect"); err != nil {
		return err
	}
	m.direct = append(m.direct, message)
	return nil
}

func (m *mockMessageRepo) GetConversation(a, b string) ([]*entity.Message, error) {
	var messages []*entity.Message
	for _, msg := range m.direct {
		if (msg.SenderUUID == a && msg.ReceiverUUID == b) || (msg.SenderUUID == b && msg.ReceiverUUID == a) {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (m *mockMessageRepo) DeleteByUser(userUUID string) error {
	return m.record("messages.DeleteByUser")
}

func (m *mockMessageRepo) CreateGroup(message *entity.GroupMessage) error {
	if err := m.record("messages.CreateGroup"); err != nil {
		return err
	}
	m.group = append(m.group, message)
	return nil
}

func (m *mockMessageRepo) GetGroup(groupUUID string) ([]*entity.GroupMessage, error) {
	var messages []*entity.GroupMessage
	for _, msg := range m.group {
		if msg.GroupUUID == groupUUID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (m *mockMessageRepo) DeleteGroupByUser(userUUID string) error {
	return m.record("messages.DeleteGroupByUser")
}

type mockGroupRepo struct {
	groups  map[string]*entity.ChatGroup
	members map[string]map[string]bool // group uuid -> user uuid -> member
	failOn  string
	trace   *[]string
}

func newMockGroupRepo(groups ...*entity.ChatGroup) *mockGroupRepo {
	repo := &mockGroupRepo{
		groups:  make(map[string]*entity.ChatGroup),
		members: make(map[string]map[string]bool),
	}
	for _, g := range groups {
		repo.groups[g.UUID] = g
		repo.members[g.UUID] = make(map[string]bool)
		for _, member := range g.Members {
			repo.members[g.UUID][member.UUID] = true
		}
	}
	return repo
}

func (m *mockGroupRepo) record(op string) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, op)
	}
	if m.failOn == op {
		return fmt.Errorf("simulated %s failure", op)
	}
	return nil
}

func (m *mockGroupRepo) Create(group *entity.ChatGroup) error {
	if err := m.record("groups.Create"); err != nil {
		return err
	}
	m.groups[group.UUID] = group
	m.members[group.UUID] = make(map[string]bool)
	for _, member := range group.Members {
		m.members[group.UUID][member.UUID] = true
	}
	return nil
}

func (m *mockGroupRepo) GetByUUID(uuid string) (*entity.ChatGroup, error) {
	if group, ok := m.groups[uuid]; ok {
		return group, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) GetAll() ([]*entity.ChatGroup, error) {
	groups := make([]*entity.ChatGroup, 0, len(m.groups))
	for _, group := range m.groups {
		groups = append(groups, group)
	}
	return groups, nil
}

func (m *mockGroupRepo) GetMembers(uuid string) ([]*entity.User, error) {
	group, ok := m.groups[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return group.Members, nil
}

func (m *mockGroupRepo) IsMember(uuid, userUUID string) (bool, error) {
	return m.members[uuid][userUUID], nil
}

func (m *mockGroupRepo) AddMember(uuid string, user *entity.User) error {
	if err := m.record("groups.AddMember"); err != nil {
		return err
	}
	group, ok := m.groups[uuid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	group.Members = append(group.Members, user)
	m.members[uuid][user.UUID] = true
	return nil
}

func (m *mockGroupRepo) RemoveMemberEverywhere(userUUID string) error {
	if err := m.record("groups.RemoveMemberEverywhere"); err != nil {
		return err
	}
	for _, members := range m.members {
		delete(members, userUUID)
	}
	return nil
}

type mockAuraRepo struct {
	chats    map[string]*entity.AuraChat
	messages []*entity.AuraMessage
	failOn   string
	trace    *[]string
}

func newMockAuraRepo() *mockAuraRepo {
	return &mockAuraRepo{chats: make(map[string]*entity.AuraChat)}
}

func (m *mockAuraRepo) record(op string) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, op)
	}
	if m.failOn == op {
		return fmt.Errorf("simulated %s failure", op)
	}
	return nil
}

func (m *mockAuraRepo) CreateChat(chat *entity.AuraChat) error {
	if err := m.record("aura.CreateChat"); err != nil {
		return err
	}
	m.chats[chat.UUID] = chat
	return nil
}

func (m *mockAuraRepo) GetChat(uuid, userUUID string) (*entity.AuraChat, error) {
	if chat, ok := m.chats[uuid]; ok && chat.UserUUID == userUUID {
		return chat, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuraRepo) GetChats(userUUID string) ([]*entity.AuraChat, error) {
	var chats []*entity.AuraChat
	for _, chat := range m.chats {
		if chat.UserUUID == userUUID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (m *mockAuraRepo) DeleteChat(uuid, userUUID string) error {
	if chat, ok := m.chats[uuid]; !ok || chat.UserUUID != userUUID {
		return gorm.ErrRecordNotFound
	}
	delete(m.chats, uuid)
	return nil
}

func (m *mockAuraRepo) DeleteChatsByUser(userUUID string) error {
	if err := m.record("aura.DeleteChatsByUser"); err != nil {
		return err
	}
	for uuid, chat := range m.chats {
		if chat.UserUUID == userUUID {
			delete(m.chats, uuid)
		}
	}
	return nil
}

func (m *mockAuraRepo) CreateMessage(message *entity.AuraMessage) error {
	if err := m.record("aura.CreateMessage"); err != nil {
		return err
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockAuraRepo) GetMessages(chatUUID string) ([]*entity.AuraMessage, error) {
	var messages []*entity.AuraMessage
	for _, msg := range m.messages {
		if msg.ChatUUID == chatUUID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// mockNotifier records emissions instead of pushing to sockets.
type mockNotifier struct {
	directTo   []string
	groupTo    []string
	subscribed []string
}

func (m *mockNotifier) NotifyDirect(receiverUUID string, payload any) {
	m.directTo = append(m.directTo, receiverUUID)
}

func (m *mockNotifier) NotifyGroup(groupUUID string, payload any) {
	m.groupTo = append(m.groupTo, groupUUID)
}

func (m *mockNotifier) SubscribeGroup(userUUID, groupUUID string) {
	m.subscribed = append(m.subscribed, userUUID+":"+groupUUID)
}

// mockGenerator returns a fixed reply or error and captures its arguments.
type mockGenerator struct {
	reply       string
	err         error
	lastPrompt  string
	lastHistory []genai.Turn
	calls       int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, history []genai.Turn) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastHistory = history
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}
