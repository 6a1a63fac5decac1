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

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image" validate:"omitempty,url"`
	Audio string `json:"audio" validate:"omitempty,url"`
}

func (r sendMessageRequest) content() service.MessageContent {
	return service.MessageContent{Text: r.Text, Image: r.Image, Audio: r.Audio}
}

// Handler for the messaging surface: sidebar contacts, DMs and group chats.
type MessageHandler struct {
	messageService service.MessageService
	groupService   service.GroupService
}

func NewMessageHandler(messageService service.MessageService, groupService service.GroupService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		groupService:   groupService,
	}
}

func (h *MessageHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	users, err := h.messageService.GetContacts(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *MessageHandler) GetTherapists(w http.ResponseWriter, r *http.Request) {
	therapists, err := h.messageService.GetTherapists()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, therapists)
}

func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	messages, err := h.messageService.GetConversation(user.UUID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request sendMessageRequest
	if !decodeBody(w, r, &request) {
		return
	}

	message, err := h.messageService.SendDirect(user.UUID, mux.Vars(r)["id"], request.content())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.GetGroups()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *MessageHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	group, err := h.groupService.JoinGroup(user.UUID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *MessageHandler) GetGroupMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	messages, err := h.messageService.GetGroupMessages(user.UUID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) SendGroupMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request sendMessageRequest
	if !decodeBody(w, r, &request) {
		return
	}

	message, err := h.messageService.SendGroup(user.UUID, mux.Vars(r)["id"], request.content())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}
