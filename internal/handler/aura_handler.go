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

	"connecto/internal/entity"
	"connecto/internal/middleware"
	"connecto/internal/service"
)

type auraMessageRequest struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
	AudioURL string `json:"audioUrl" validate:"omitempty,url"`
}

func (r auraMessageRequest) content() service.MessageContent {
	return service.MessageContent{Text: r.Message, Image: r.ImageURL, Audio: r.AudioURL}
}

type createChatResponse struct {
	Chat     *entity.AuraChat      `json:"chat"`
	Messages []*entity.AuraMessage `json:"messages"`
}

// Handler for the AI companion conversations.
type AuraHandler struct {
	auraService service.AuraService
}

func NewAuraHandler(auraService service.AuraService) *AuraHandler {
	return &AuraHandler{auraService: auraService}
}

func (h *AuraHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request auraMessageRequest
	if !decodeBody(w, r, &request) {
		return
	}

	chat, messages, err := h.auraService.CreateChat(r.Context(), user.UUID, request.content())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createChatResponse{Chat: chat, Messages: messages})
}

func (h *AuraHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	var request auraMessageRequest
	if !decodeBody(w, r, &request) {
		return
	}

	reply, err := h.auraService.ContinueChat(r.Context(), user.UUID, mux.Vars(r)["id"], request.content())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (h *AuraHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	chats, err := h.auraService.GetChats(user.UUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *AuraHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	messages, err := h.auraService.GetMessages(user.UUID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *AuraHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
		return
	}

	if err := h.auraService.DeleteChat(user.UUID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Chat deleted successfully")
}
