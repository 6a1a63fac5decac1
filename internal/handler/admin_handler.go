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

	"github.com/gorilla/mux"

	"connecto/internal/middleware"
	"connecto/internal/service"
)

type createGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
}

// Handler for the admin console. All routes are gated by the admin middleware.
type AdminHandler struct {
	adminService service.AdminService
	groupService service.GroupService
}

func NewAdminHandler(adminService service.AdminService, groupService service.GroupService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		groupService: groupService,
	}
}

func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.GetAllUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.GetPendingUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminService.VerifyUser(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminService.RejectUser(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteUser(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request createGroupRequest
	if !decodeBody(w, r, &request) {
		return
	}

	group, err := h.groupService.CreateGroup(request.Name, request.Type, request.Description, admin.UUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *AdminHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.GetGroups()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
