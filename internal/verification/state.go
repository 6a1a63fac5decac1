/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package verification holds the account verification state machine in one
// place, instead of scattering status string comparisons across handlers.
package verification

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"connecto/internal/entity"
)

// Action that moves an account through the verification workflow.
type Action string

const (
	ActionVerify        Action = "verify"         // Admin approves a pending account
	ActionReject        Action = "reject"         // Admin rejects a pending account (terminal)
	ActionRequestReview Action = "request-review" // Unverified account asks for another look
)

// ErrInvalidTransition is returned when an action is not allowed from the
// account's current status.
var ErrInvalidTransition = errors.New("invalid verification transition")

// Allowed transitions. Anything not listed here is rejected.
var transitions = map[entity.Status]map[Action]entity.Status{
	entity.StatusPending: {
		ActionVerify: entity.StatusVerified,
		ActionReject: entity.StatusRejected,
	},
	entity.StatusUnverified: {
		ActionRequestReview: entity.StatusPending,
	},
}

// Next returns the status reached by applying action to the current status.
func Next(current entity.Status, action Action) (entity.Status, error) {
	next, ok := transitions[current][action]
	if !ok {
		return current, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// Transition applies the action to the user record, mutating status and the
// fields tied to it. Verification also stamps a fresh referral code; a review
// request records the attached message and marks the account as resubmitted,
// which lets admins tell a re-request apart from a first-time pending one.
func Transition(u *entity.User, action Action, message string) error {
	next, err := Next(u.Status, action)
	if err != nil {
		return err
	}

	switch action {
	case ActionVerify:
		u.ReferralCode = NewReferralCode(u.Role)
	case ActionRequestReview:
		if u.VerificationRequest {
			return fmt.Errorf("%w: a review request is already on file", ErrInvalidTransition)
		}
		u.VerificationRequest = true
		u.VerificationMessage = message
		u.Resubmitted = true
	}

	u.Status = next
	return nil
}

// InitialStatus is the status a freshly signed-up account lands in: end users
// with a valid referral are usable immediately, professionals wait for an
// admin.
func InitialStatus(role entity.Role) entity.Status {
	if role == entity.RoleUser {
		return entity.StatusVerified
	}
	return entity.StatusPending
}

// NewReferralCode builds a code like THE-4f09c2-8841: three-letter role
// prefix, six hex characters of randomness, last four digits of the unix time.
func NewReferralCode(role entity.Role) string {
	prefix := strings.ToUpper(string(role))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	buf := make([]byte, 3)
	rand.Read(buf)

	ts := fmt.Sprintf("%d", time.Now().Unix())
	return fmt.Sprintf("%s-%s-%s", prefix, hex.EncodeToString(buf), ts[len(ts)-4:])
}
