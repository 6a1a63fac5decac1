/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"connecto/internal/entity"

	"gorm.io/gorm"
)

// This repository is used to manipulate messages, both direct and group ones.
// Messages are append-only: the only delete path is the cascade that runs
// when an admin removes a user.
type MessageRepository interface {
	CreateDirect(message *entity.Message) error                        // Inserts a direct message
	GetConversation(a, b string) ([]*entity.Message, error)            // Retrieves the messages exchanged between two users, oldest first
	DeleteByUser(userUUID string) error                                // Deletes every direct message sent or received by the user

	CreateGroup(message *entity.GroupMessage) error                    // Inserts a group message
	GetGroup(groupUUID string) ([]*entity.GroupMessage, error)         // Retrieves the messages of a group chat, oldest first
	DeleteGroupByUser(userUUID string) error                           // Deletes every group message sent by the user
}

// Implementation of the repository using a SQLite DB
type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) CreateDirect(message *entity.Message) error {
	return repo.db.Create(message).Error
}

func (repo *SQLiteMessageRepository) GetConversation(a, b string) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.db.
		Where("(sender_uuid = ? AND receiver_uuid = ?) OR (sender_uuid = ? AND receiver_uuid = ?)", a, b, b, a).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (repo *SQLiteMessageRepository) DeleteByUser(userUUID string) error {
	return repo.db.
		Where("sender_uuid = ? OR receiver_uuid = ?", userUUID, userUUID).
		Delete(&entity.Message{}).Error
}

func (repo *SQLiteMessageRepository) CreateGroup(message *entity.GroupMessage) error {
	return repo.db.Create(message).Error
}

func (repo *SQLiteMessageRepository) GetGroup(groupUUID string) ([]*entity.GroupMessage, error) {
	var messages []*entity.GroupMessage
	err := repo.db.Where("group_uuid = ?", groupUUID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (repo *SQLiteMessageRepository) DeleteGroupByUser(userUUID string) error {
	return repo.db.Where("sender_uuid = ?", userUUID).Delete(&entity.GroupMessage{}).Error
}
