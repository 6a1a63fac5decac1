/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Author of an AuraMessage: either the end user or the model.
type AuraRole string

const (
	AuraRoleUser  AuraRole = "user"
	AuraRoleModel AuraRole = "model"
)

// A conversation between one user and the AI companion.
type AuraChat struct {
	UUID      string    `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	UserUUID  string    `gorm:"index;not null" json:"userId"`     // Owner of the conversation
	Title     string    `gorm:"not null" json:"title"`            // Derived from the first message
	CreatedAt time.Time `gorm:"not null;index" json:"created-at"` // Time of creation
}

// One turn inside an AuraChat. Turns accumulate in creation order, no
// alternation is enforced.
type AuraMessage struct {
	UUID      string    `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	ChatUUID  string    `gorm:"index;not null" json:"chatId"`     // Conversation the turn belongs to
	Role      AuraRole  `gorm:"not null" json:"role"`             // Who produced the turn
	Text      string    `json:"text,omitempty"`                   // Text body
	Img       string    `json:"img,omitempty"`                    // URL of an attached image
	Audio     string    `json:"audio,omitempty"`                  // URL of an attached voice note
	CreatedAt time.Time `gorm:"not null;index" json:"created-at"` // Time of creation
}
