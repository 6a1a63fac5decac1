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

// This repository holds the AI companion conversations and their turns.
type AuraRepository interface {
	CreateChat(chat *entity.AuraChat) error                       // Inserts a conversation
	GetChat(uuid, userUUID string) (*entity.AuraChat, error)      // Retrieves a conversation, scoped to its owner
	GetChats(userUUID string) ([]*entity.AuraChat, error)         // Retrieves every conversation of the user, newest first
	DeleteChat(uuid, userUUID string) error                       // Deletes a conversation and its turns, scoped to its owner
	DeleteChatsByUser(userUUID string) error                      // Deletes the user's conversations and their turns

	CreateMessage(message *entity.AuraMessage) error              // Appends a turn to a conversation
	GetMessages(chatUUID string) ([]*entity.AuraMessage, error)   // Retrieves the turns of a conversation, oldest first
}

// Implementation of the repository using a SQLite DB
type SQLiteAuraRepository struct {
	db *gorm.DB
}

func NewSQLiteAuraRepository(db *gorm.DB) AuraRepository {
	return &SQLiteAuraRepository{db}
}

func (repo *SQLiteAuraRepository) CreateChat(chat *entity.AuraChat) error {
	return repo.db.Create(chat).Error
}

func (repo *SQLiteAuraRepository) GetChat(uuid, userUUID string) (*entity.AuraChat, error) {
	var chat entity.AuraChat
	err := repo.db.Where("UUID = ? AND user_uuid = ?", uuid, userUUID).First(&chat).Error
	return &chat, err
}

func (repo *SQLiteAuraRepository) GetChats(userUUID string) ([]*entity.AuraChat, error) {
	var chats []*entity.AuraChat
	err := repo.db.Where("user_uuid = ?", userUUID).Order("created_at DESC").Find(&chats).Error
	return chats, err
}

func (repo *SQLiteAuraRepository) DeleteChat(uuid, userUUID string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("UUID = ? AND user_uuid = ?", uuid, userUUID).Delete(&entity.AuraChat{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("chat_uuid = ?", uuid).Delete(&entity.AuraMessage{}).Error
	})
}

func (repo *SQLiteAuraRepository) DeleteChatsByUser(userUUID string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var chats []*entity.AuraChat
		if err := tx.Where("user_uuid = ?", userUUID).Find(&chats).Error; err != nil {
			return err
		}
		for _, chat := range chats {
			if err := tx.Where("chat_uuid = ?", chat.UUID).Delete(&entity.AuraMessage{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_uuid = ?", userUUID).Delete(&entity.AuraChat{}).Error
	})
}

func (repo *SQLiteAuraRepository) CreateMessage(message *entity.AuraMessage) error {
	return repo.db.Create(message).Error
}

func (repo *SQLiteAuraRepository) GetMessages(chatUUID string) ([]*entity.AuraMessage, error) {
	var messages []*entity.AuraMessage
	err := repo.db.Where("chat_uuid = ?", chatUUID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}
