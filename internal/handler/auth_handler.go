/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"github.com/gorilla/sessions"

	"connecto/internal/entity"
	"connecto/internal/middleware"
	"connecto/internal/service"
)

type signupRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"omitempty,oneof=user therapist ngo volunteer"`
	ReferralCode string `json:"referralCode"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	ProfilePic string `json:"profilePic" validate:"required,url"`
}

type validateReferralRequest struct {
	ReferralCode string `json:"referralCode" validate:"required"`
}

type requestVerificationRequest struct {
	Message string `json:"message" validate:"required"`
}

type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore // nil when SESSION_SECRET is not set
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
	}
}

// issueSession writes the session cookie for the given user. Fails when the
// server was started without a SESSION_SECRET.
func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *entity.User) error {
	if h.cookieStore == nil {
		return service.ErrUnauthorized
	}
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["user_uuid"] = user.UUID
	return session.Save(r, w)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var request signupRequest
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.authService.Signup(request.FullName, request.Email, request.Password, entity.Role(request.Role), request.ReferralCode)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.issueSession(w, r, user); err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not establish session")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.authService.Login(request.Email, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.issueSession(w, r, user); err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not establish session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cookieStore != nil {
		session, _ := h.cookieStore.Get(r, middleware.SessionName)
		session.Options.MaxAge = -1
		session.Save(r, w)
	}
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// Check returns the authenticated user, for the SPA's session restore.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request updateProfileRequest
	if !decodeBody(w, r, &request) {
		return
	}

	updated, err := h.authService.UpdateProfile(user.UUID, request.ProfilePic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) ValidateReferral(w http.ResponseWriter, r *http.Request) {
	var request validateReferralRequest
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.authService.ValidateReferral(request.ReferralCode); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *AuthHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request requestVerificationRequest
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.authService.RequestVerification(user.UUID, request.Message); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Verification request submitted")
}

// GenerateReferral rotates the caller's referral code. Verified professionals
// only; the service enforces that.
func (h *AuthHandler) GenerateReferral(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	code, err := h.authService.GenerateReferralCode(user.UUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"referralCode": code})
}
