/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package verification

import (
	"errors"
	"regexp"
	"testing"

	"connecto/internal/entity"
)

func TestVerifyFromPending(t *testing.T) {
	user := &entity.User{Role: entity.RoleTherapist, Status: entity.StatusPending}

	if err := Transition(user, ActionVerify, ""); err != nil {
		t.Fatalf("verify from pending should succeed, got %v", err)
	}
	if user.Status != entity.StatusVerified {
		t.Errorf("status should be verified, got %s", user.Status)
	}
	if user.ReferralCode == "" {
		t.Errorf("verification should stamp a referral code")
	}
}

func TestRejectFromPending(t *testing.T) {
	user := &entity.User{Role: entity.RoleNGO, Status: entity.StatusPending}

	if err := Transition(user, ActionReject, ""); err != nil {
		t.Fatalf("reject from pending should succeed, got %v", err)
	}
	if user.Status != entity.StatusRejected {
		t.Errorf("status should be rejected, got %s", user.Status)
	}
}

func TestVerifyFromVerifiedFails(t *testing.T) {
	user := &entity.User{Role: entity.RoleTherapist, Status: entity.StatusVerified}

	err := Transition(user, ActionVerify, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("verify from verified should fail with ErrInvalidTransition, got %v", err)
	}
}

func TestRejectIsTerminal(t *testing.T) {
	user := &entity.User{Role: entity.RoleVolunteer, Status: entity.StatusRejected}

	for _, action := range []Action{ActionVerify, ActionReject, ActionRequestReview} {
		if err := Transition(user, action, ""); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from rejected should fail, got %v", action, err)
		}
	}
}

func TestRequestReview(t *testing.T) {
	user := &entity.User{Role: entity.RoleTherapist, Status: entity.StatusUnverified}

	if err := Transition(user, ActionRequestReview, "please look again"); err != nil {
		t.Fatalf("request-review from unverified should succeed, got %v", err)
	}
	if user.Status != entity.StatusPending {
		t.Errorf("status should be pending, got %s", user.Status)
	}
	if !user.VerificationRequest {
		t.Errorf("the review request flag should be set")
	}
	if user.VerificationMessage != "please look again" {
		t.Errorf("the message should be recorded, got %q", user.VerificationMessage)
	}
	if !user.Resubmitted {
		t.Errorf("the account should be marked as resubmitted")
	}
}

func TestRequestReviewOnlyOnce(t *testing.T) {
	user := &entity.User{
		Role:                entity.RoleTherapist,
		Status:              entity.StatusUnverified,
		VerificationRequest: true,
	}

	if err := Transition(user, ActionRequestReview, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("a second review request should fail, got %v", err)
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(entity.RoleUser); got != entity.StatusVerified {
		t.Errorf("end users should start verified, got %s", got)
	}
	for _, role := range []entity.Role{entity.RoleTherapist, entity.RoleNGO, entity.RoleVolunteer} {
		if got := InitialStatus(role); got != entity.StatusPending {
			t.Errorf("%s should start pending, got %s", role, got)
		}
	}
}

func TestReferralCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{1,3}-[0-9a-f]{6}-[0-9]{4}$`)

	for _, role := range []entity.Role{entity.RoleTherapist, entity.RoleNGO, entity.RoleVolunteer} {
		code := NewReferralCode(role)
		if !pattern.MatchString(code) {
			t.Errorf("referral code %q for %s does not match the expected shape", code, role)
		}
	}

	if code := NewReferralCode(entity.RoleTherapist); code[:3] != "THE" {
		t.Errorf("therapist codes should carry the THE prefix, got %q", code)
	}
}

func TestReferralCodesDiffer(t *testing.T) {
	a := NewReferralCode(entity.RoleTherapist)
	b := NewReferralCode(entity.RoleTherapist)
	if a == b {
		t.Errorf("two generated codes should not collide: %q", a)
	}
}
