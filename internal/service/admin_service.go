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

	"github.com/rs/zerolog"

	"connecto/internal/entity"
	"connecto/internal/logging"
	"connecto/internal/repository"
	"connecto/internal/verification"
)

// Service backing the admin console: account review and user removal.
type AdminService interface {
	GetAllUsers() ([]*entity.User, error)             // Every account in the system
	GetPendingUsers() ([]*entity.User, error)         // Professionals awaiting review
	VerifyUser(uuid string) (*entity.User, error)     // pending -> verified, stamps a referral code
	RejectUser(uuid string) (*entity.User, error)     // pending -> rejected, terminal
	DeleteUser(uuid string) error                     // Hard delete with cascading cleanup
}

type adminService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	groups   repository.GroupRepository
	aura     repository.AuraRepository
	logger   zerolog.Logger
}

func NewAdminService(users repository.UserRepository, messages repository.MessageRepository, groups repository.GroupRepository, aura repository.AuraRepository) AdminService {
	return &adminService{
		users:    users,
		messages: messages,
		groups:   groups,
		aura:     aura,
		logger:   logging.With("admin-service"),
	}
}

func (s *adminService) GetAllUsers() ([]*entity.User, error) {
	return s.users.GetAll()
}

func (s *adminService) GetPendingUsers() ([]*entity.User, error) {
	return s.users.GetPendingProfessionals()
}

func (s *adminService) VerifyUser(uuid string) (*entity.User, error) {
	user, err := s.users.GetByUUID(uuid)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := verification.Transition(user, verification.ActionVerify, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user", user.UUID).Str("role", string(user.Role)).Msg("account verified")
	return user, nil
}

func (s *adminService) RejectUser(uuid string) (*entity.User, error) {
	user, err := s.users.GetByUUID(uuid)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := verification.Transition(user, verification.ActionReject, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user", user.UUID).Msg("account rejected")
	return user, nil
}

// DeleteUser removes the account and everything that references it. The
// cleanup steps run sequentially and are NOT one transaction: a failure
// mid-way leaves the earlier deletions in place, and the error reports where
// it stopped.
func (s *adminService) DeleteUser(uuid string) error {
	user, err := s.users.GetByUUID(uuid)
	if err != nil {
		return ErrNotFound
	}
	if user.Role == entity.RoleAdmin {
		return fmt.Errorf("%w: admin accounts cannot be deleted", ErrForbidden)
	}

	if err := s.messages.DeleteByUser(uuid); err != nil {
		return fmt.Errorf("deleting direct messages: %w", err)
	}
	if err := s.messages.DeleteGroupByUser(uuid); err != nil {
		return fmt.Errorf("deleting group messages: %w", err)
	}
	if err := s.groups.RemoveMemberEverywhere(uuid); err != nil {
		return fmt.Errorf("removing group memberships: %w", err)
	}
	if err := s.aura.DeleteChatsByUser(uuid); err != nil {
		return fmt.Errorf("deleting AI conversations: %w", err)
	}
	if err := s.users.Delete(uuid); err != nil {
		return fmt.Errorf("deleting user record: %w", err)
	}

	s.logger.Info().Str("user", uuid).Msg("account deleted with cascade")
	return nil
}
