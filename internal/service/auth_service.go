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
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"connecto/internal/entity"
	"connecto/internal/logging"
	"connecto/internal/repository"
	"connecto/internal/verification"
)

// Service used for registration, login and account self-service.
type AuthService interface {
	Signup(fullName, email, password string, role entity.Role, referralCode string) (*entity.User, error) // Creates an account, applying the referral gate for end users
	Login(email, password string) (*entity.User, error)                                                   // Authenticates via credentials, returning the user entity if successful
	ValidateReferral(code string) error                                                                   // Checks that the code belongs to a verified professional
	UpdateProfile(userUUID, profilePic string) (*entity.User, error)                                      // Replaces the profile picture URL
	RequestVerification(userUUID, message string) error                                                   // Moves an unverified account back in front of the admins
	GenerateReferralCode(userUUID string) (string, error)                                                 // Stamps a fresh referral code on a verified professional
}

type authService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{
		users:  users,
		logger: logging.With("auth-service"),
	}
}

// Signup applies the referral-gated state machine: end users need a referral
// code owned by a verified professional and land directly in verified;
// professionals land in pending and wait for an admin. The admin role can
// never be self-assigned.
func (a *authService) Signup(fullName, email, password string, role entity.Role, referralCode string) (*entity.User, error) {
	if role == "" {
		role = entity.RoleUser
	}
	if role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: the admin role cannot be self-assigned", ErrForbidden)
	}

	var referredBy *string
	if role == entity.RoleUser {
		if referralCode == "" {
			return nil, fmt.Errorf("%w: a referral code is required for users", ErrInvalidInput)
		}
		referrer, err := a.users.GetReferrer(referralCode)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid referral code", ErrInvalidInput)
		}
		referredBy = &referrer.UUID
	}

	if _, err := a.users.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	user := &entity.User{
		UUID:       id,
		FullName:   fullName,
		Email:      email,
		Role:       role,
		Status:     verification.InitialStatus(role),
		ReferredBy: referredBy,
		CreatedAt:  time.Now(),

		Secret: entity.UserSecret{
			UserUUID: id,
			Hash:     string(hash),
		},
	}
	if role == entity.RoleUser {
		// Keep the code the user signed up with, so professionals can list
		// their referred users either way.
		user.ReferralCode = referralCode
	}

	if err := a.users.Create(user); err != nil {
		return nil, err
	}

	a.logger.Info().Str("user", user.UUID).Str("role", string(role)).Str("status", string(user.Status)).Msg("account created")
	return user, nil
}

func (a *authService) Login(email, password string) (*entity.User, error) {
	user, err := a.users.GetForLogin(email)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (a *authService) ValidateReferral(code string) error {
	if _, err := a.users.GetReferrer(code); err != nil {
		return fmt.Errorf("%w: invalid referral code", ErrInvalidInput)
	}
	return nil
}

func (a *authService) UpdateProfile(userUUID, profilePic string) (*entity.User, error) {
	user, err := a.users.GetByUUID(userUUID)
	if err != nil {
		return nil, ErrNotFound
	}

	user.ProfilePic = profilePic
	if err := a.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authService) RequestVerification(userUUID, message string) error {
	if message == "" {
		return fmt.Errorf("%w: a verification message is required", ErrInvalidInput)
	}

	user, err := a.users.GetByUUID(userUUID)
	if err != nil {
		return ErrNotFound
	}

	if err := verification.Transition(user, verification.ActionRequestReview, message); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := a.users.Save(user); err != nil {
		return err
	}

	a.logger.Info().Str("user", user.UUID).Bool("resubmitted", user.Resubmitted).Msg("verification requested")
	return nil
}

// GenerateReferralCode lets a verified professional rotate its own code.
func (a *authService) GenerateReferralCode(userUUID string) (string, error) {
	user, err := a.users.GetByUUID(userUUID)
	if err != nil {
		return "", ErrNotFound
	}
	if !user.Role.IsProfessional() || user.Status != entity.StatusVerified {
		return "", fmt.Errorf("%w: only verified professionals hold referral codes", ErrForbidden)
	}

	user.ReferralCode = verification.NewReferralCode(user.Role)
	if err := a.users.Save(user); err != nil {
		return "", err
	}
	return user.ReferralCode, nil
}
