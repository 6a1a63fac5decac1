/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a direct message between two users. Append-only: messages are
// never edited, they only go away when a user is deleted by an admin.
type Message struct {
	UUID         string    `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	SenderUUID   string    `gorm:"index;not null" json:"senderId"`   // UUID of the user that sent the message
	ReceiverUUID string    `gorm:"index;not null" json:"receiverId"` // UUID of the user that receives it
	Text         string    `json:"text,omitempty"`                   // Text body
	Image        string    `json:"image,omitempty"`                  // URL of an attached image
	Audio        string    `json:"audio,omitempty"`                  // URL of an attached voice note
	CreatedAt    time.Time `gorm:"not null;index" json:"created-at"` // Time of creation
}

// HasContent reports whether at least one of text/image/audio is present.
// Messages with none of the three are rejected at send time.
func (m *Message) HasContent() bool {
	return m.Text != "" || m.Image != "" || m.Audio != ""
}
