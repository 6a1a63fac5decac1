/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"

	"connecto/internal/entity"
	"connecto/internal/service"
)

// mockAuthService returns canned results, recording the last call arguments.
type mockAuthService struct {
	user *entity.User
	err  error

	lastEmail string
	lastRole  entity.Role
}

func (m *mockAuthService) Signup(fullName, email, password string, role entity.Role, referralCode string) (*entity.User, error) {
	m.lastEmail = email
	m.lastRole = role
	return m.user, m.err
}

func (m *mockAuthService) Login(email, password string) (*entity.User, error) {
	m.lastEmail = email
	return m.user, m.err
}

func (m *mockAuthService) ValidateReferral(code string) error { return m.err }

func (m *mockAuthService) UpdateProfile(userUUID, profilePic string) (*entity.User, error) {
	return m.user, m.err
}

func (m *mockAuthService) RequestVerification(userUUID, message string) error { return m.err }

func (m *mockAuthService) GenerateReferralCode(userUUID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "THE-abc123-0001", nil
}

func testStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret"))
}

func TestSignupHandler(t *testing.T) {
	svc := &mockAuthService{user: &entity.User{UUID: "user-1", Email: "alice@example.com", Role: entity.RoleUser}}
	h := NewAuthHandler(svc, testStore())

	body := `{"fullName":"Alice","email":"alice@example.com","password":"secret1","role":"user","referralCode":"THE-abc123-0001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup should answer 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastEmail != "alice@example.com" {
		t.Errorf("the service should receive the request email")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Errorf("signup should issue a session cookie")
	}
}

func TestSignupHandlerRejectsBadBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testStore())

	cases := []string{
		`{`, // malformed JSON
		`{"fullName":"Alice","email":"not-an-email","password":"secret1"}`,
		`{"fullName":"Alice","email":"alice@example.com","password":"123"}`,    // too short
		`{"fullName":"Alice","email":"a@b.com","password":"secret1","role":"admin"}`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Signup(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q should answer 400, got %d", body, rec.Code)
		}
	}
}

func TestLoginHandlerWrongCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{err: service.ErrUnauthorized}, testStore())

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong credentials should answer 401, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("the error body should be JSON: %v", err)
	}
	if payload["message"] == "" {
		t.Errorf("the error body should carry a message field")
	}
}

// Boot without SESSION_SECRET succeeds, but no session can be issued.
func TestLoginHandlerWithoutSessionSecret(t *testing.T) {
	svc := &mockAuthService{user: &entity.User{UUID: "user-1"}}
	h := NewAuthHandler(svc, nil)

	body := `{"email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("login without a configured secret should answer 500, got %d", rec.Code)
	}
}

func TestValidateReferralHandler(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testStore())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate-referral", strings.NewReader(`{"referralCode":"THE-abc123-0001"}`))
	rec := httptest.NewRecorder()

	h.ValidateReferral(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("a valid referral should answer 200, got %d", rec.Code)
	}

	var payload map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("the body should be JSON: %v", err)
	}
	if !payload["valid"] {
		t.Errorf("the body should report the code as valid")
	}
}
