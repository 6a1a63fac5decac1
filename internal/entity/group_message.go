/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a message sent inside a group chat. The sender must be a member
// of the group at the moment of sending.
type GroupMessage struct {
	UUID       string    `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	GroupUUID  string    `gorm:"index;not null" json:"groupId"`    // UUID of the group the message belongs to
	SenderUUID string    `gorm:"index;not null" json:"sender"`     // UUID of the member that sent it
	Text       string    `json:"text,omitempty"`                   // Text body
	Image      string    `json:"image,omitempty"`                  // URL of an attached image
	Audio      string    `json:"audio,omitempty"`                  // URL of an attached voice note
	CreatedAt  time.Time `gorm:"not null;index" json:"created-at"` // Time of creation
}

// HasContent reports whether at least one of text/image/audio is present.
func (m *GroupMessage) HasContent() bool {
	return m.Text != "" || m.Image != "" || m.Audio != ""
}
