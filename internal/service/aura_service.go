/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"connecto/internal/entity"
	"connecto/internal/genai"
	"connecto/internal/logging"
	"connecto/internal/repository"
)

// Number of prior turns replayed to the model on each call. Older turns stay
// in the store but are not sent upstream.
const historyLimit = 10

// Reply for voice notes, which the model cannot hear.
const voiceNoteAck = "I received your voice message. How can I help you today?"

// Served when the upstream model is unreachable or misconfigured, so the
// companion never answers with an error.
var fallbackReplies = []string{
	"I'm here to listen and support you. Tell me more about what's on your mind.",
	"Mental wellness is about finding balance in our thoughts, feelings and actions. How can I help you today?",
	"I appreciate you reaching out. Building mental resilience takes time and practice - I'm here to help.",
	"Sometimes talking through our challenges helps us see them more clearly. What specifically are you struggling with?",
	"Self-care looks different for everyone. Let's explore what might work best for your situation.",
}

// Service backing the AI companion: per-user conversations where every user
// turn gets a model turn appended synchronously.
type AuraService interface {
	CreateChat(ctx context.Context, userUUID string, content MessageContent) (*entity.AuraChat, []*entity.AuraMessage, error) // Opens a conversation with an initial exchange
	ContinueChat(ctx context.Context, userUUID, chatUUID string, content MessageContent) (*entity.AuraMessage, error)         // Appends a user turn and returns the model turn
	GetChats(userUUID string) ([]*entity.AuraChat, error)                                                                     // Lists the user's conversations, newest first
	GetMessages(userUUID, chatUUID string) ([]*entity.AuraMessage, error)                                                     // Retrieves a conversation's turns, oldest first
	DeleteChat(userUUID, chatUUID string) error                                                                               // Removes a conversation and its turns
}

type auraService struct {
	chats     repository.AuraRepository
	generator genai.Generator
	logger    zerolog.Logger
}

func NewAuraService(chats repository.AuraRepository, generator genai.Generator) AuraService {
	return &auraService{
		chats:     chats,
		generator: generator,
		logger:    logging.With("aura-service"),
	}
}

// chatTitle derives a conversation title from its opening content.
func chatTitle(content MessageContent) string {
	switch {
	case content.Text != "":
		if len(content.Text) > 30 {
			return content.Text[:30] + "..."
		}
		return content.Text
	case content.Audio != "":
		return "Voice message"
	case content.Image != "":
		return "Image analysis"
	}
	return "Aura Chat"
}

func (s *auraService) CreateChat(ctx context.Context, userUUID string, content MessageContent) (*entity.AuraChat, []*entity.AuraMessage, error) {
	if content.empty() {
		return nil, nil, fmt.Errorf("%w: a message needs text, an image or an audio note", ErrInvalidInput)
	}

	chat := &entity.AuraChat{
		UUID:      uuid.New().String(),
		UserUUID:  userUUID,
		Title:     chatTitle(content),
		CreatedAt: time.Now(),
	}
	if err := s.chats.CreateChat(chat); err != nil {
		return nil, nil, err
	}

	if _, err := s.appendExchange(ctx, chat.UUID, content, nil); err != nil {
		return nil, nil, err
	}

	messages, err := s.chats.GetMessages(chat.UUID)
	if err != nil {
		return nil, nil, err
	}
	return chat, messages, nil
}

func (s *auraService) ContinueChat(ctx context.Context, userUUID, chatUUID string, content MessageContent) (*entity.AuraMessage, error) {
	if content.empty() {
		return nil, fmt.Errorf("%w: a message needs text, an image or an audio note", ErrInvalidInput)
	}

	if _, err := s.chats.GetChat(chatUUID, userUUID); err != nil {
		return nil, fmt.Errorf("%w: chat does not exist", ErrNotFound)
	}

	prior, err := s.chats.GetMessages(chatUUID)
	if err != nil {
		return nil, err
	}

	history := make([]genai.Turn, 0, len(prior))
	for _, m := range prior {
		if m.Text == "" {
			continue
		}
		history = append(history, genai.Turn{Role: string(m.Role), Text: m.Text})
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	return s.appendExchange(ctx, chatUUID, content, history)
}

// appendExchange stores the user turn, obtains a reply and stores the model
// turn. The reply never fails: upstream errors degrade to a canned response.
func (s *auraService) appendExchange(ctx context.Context, chatUUID string, content MessageContent, history []genai.Turn) (*entity.AuraMessage, error) {
	userTurn := &entity.AuraMessage{
		UUID:      uuid.New().String(),
		ChatUUID:  chatUUID,
		Role:      entity.AuraRoleUser,
		Text:      content.Text,
		Img:       content.Image,
		Audio:     content.Audio,
		CreatedAt: time.Now(),
	}
	if err := s.chats.CreateMessage(userTurn); err != nil {
		return nil, err
	}

	var reply string
	if content.Text != "" || content.Image != "" {
		prompt := content.Text
		if prompt == "" {
			prompt = "The user shared an image with you."
		}
		generated, err := s.generator.Generate(ctx, prompt, history)
		if err != nil {
			s.logger.Warn().Err(err).Str("chat", chatUUID).Msg("model call failed, serving fallback")
			generated = fallbackReplies[rand.Intn(len(fallbackReplies))]
		}
		reply = generated
	} else {
		// Audio-only turn: acknowledge without a model call.
		reply = voiceNoteAck
	}

	modelTurn := &entity.AuraMessage{
		UUID:      uuid.New().String(),
		ChatUUID:  chatUUID,
		Role:      entity.AuraRoleModel,
		Text:      reply,
		CreatedAt: time.Now(),
	}
	if err := s.chats.CreateMessage(modelTurn); err != nil {
		return nil, err
	}
	return modelTurn, nil
}

func (s *auraService) GetChats(userUUID string) ([]*entity.AuraChat, error) {
	return s.chats.GetChats(userUUID)
}

func (s *auraService) GetMessages(userUUID, chatUUID string) ([]*entity.AuraMessage, error) {
	if _, err := s.chats.GetChat(chatUUID, userUUID); err != nil {
		return nil, fmt.Errorf("%w: chat does not exist", ErrNotFound)
	}
	return s.chats.GetMessages(chatUUID)
}

func (s *auraService) DeleteChat(userUUID, chatUUID string) error {
	if err := s.chats.DeleteChat(chatUUID, userUUID); err != nil {
		return fmt.Errorf("%w: chat does not exist", ErrNotFound)
	}
	return nil
}
