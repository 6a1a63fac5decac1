/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"connecto/internal/entity"
	"connecto/internal/logging"
	"connecto/internal/repository"
)

// Service used to handle groups and user-group interaction.
type GroupService interface {
	CreateGroup(name, groupType, description, creatorUUID string) (*entity.ChatGroup, error) // Creates a group with the creator as first member
	GetGroups() ([]*entity.ChatGroup, error)                                                 // Retrieves all groups with their members
	JoinGroup(userUUID, groupUUID string) (*entity.ChatGroup, error)                         // Adds the user to the group; a no-op when already a member
}

type groupService struct {
	groups   repository.GroupRepository
	users    repository.UserRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewGroupService(groups repository.GroupRepository, users repository.UserRepository, notifier Notifier) GroupService {
	return &groupService{
		groups:   groups,
		users:    users,
		notifier: notifier,
		logger:   logging.With("group-service"),
	}
}

func (g *groupService) CreateGroup(name, groupType, description, creatorUUID string) (*entity.ChatGroup, error) {
	creator, err := g.users.GetByUUID(creatorUUID)
	if err != nil {
		return nil, ErrNotFound
	}

	group := &entity.ChatGroup{
		UUID:        uuid.New().String(),
		Name:        name,
		Type:        groupType,
		Description: description,
		CreatedBy:   creator.UUID,
		CreatedAt:   time.Now(),
		Members:     []*entity.User{creator},
	}
	if err := g.groups.Create(group); err != nil {
		return nil, err
	}

	g.logger.Info().Str("group", group.UUID).Str("creator", creator.UUID).Msg("group created")
	return group, nil
}

func (g *groupService) GetGroups() ([]*entity.ChatGroup, error) {
	return g.groups.GetAll()
}

// JoinGroup is idempotent: joining a group you already belong to just returns
// the group. Either way, the user's active connection (when there is one) is
// subscribed to the group's broadcast room.
func (g *groupService) JoinGroup(userUUID, groupUUID string) (*entity.ChatGroup, error) {
	if _, err := g.groups.GetByUUID(groupUUID); err != nil {
		return nil, ErrNotFound
	}

	member, err := g.groups.IsMember(groupUUID, userUUID)
	if err != nil {
		return nil, err
	}

	if !member {
		user, err := g.users.GetByUUID(userUUID)
		if err != nil {
			return nil, ErrNotFound
		}
		if err := g.groups.AddMember(groupUUID, user); err != nil {
			return nil, err
		}
		g.logger.Info().Str("group", groupUUID).Str("user", userUUID).Msg("user joined group")
	}

	g.notifier.SubscribeGroup(userUUID, groupUUID)

	return g.groups.GetByUUID(groupUUID)
}
