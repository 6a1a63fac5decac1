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

// This repository is used to manipulate the groups and user-group relations.
type GroupRepository interface {
	Create(group *entity.ChatGroup) error // Inserts a group, members included

	GetByUUID(uuid string) (*entity.ChatGroup, error)  // Retrieves the group with the given uuid, WITH its members
	GetAll() ([]*entity.ChatGroup, error)              // Retrieves all the groups, each WITH the list of members
	GetMembers(uuid string) ([]*entity.User, error)    // Retrieves the members of the group with given uuid
	IsMember(uuid, userUUID string) (bool, error)      // Checks whether the user belongs to the group

	AddMember(uuid string, user *entity.User) error // Adds a user to the group
	RemoveMemberEverywhere(userUUID string) error   // Removes the user from every group it belongs to
}

// Implementation of the repository using a SQLite DB
type SQLiteGroupRepository struct {
	db *gorm.DB
}

func NewSQLiteGroupRepository(db *gorm.DB) GroupRepository {
	return &SQLiteGroupRepository{db}
}

func (repo *SQLiteGroupRepository) Create(group *entity.ChatGroup) error {
	return repo.db.Omit("Members.*").Create(group).Error
}

func (repo *SQLiteGroupRepository) GetByUUID(uuid string) (*entity.ChatGroup, error) {
	var group entity.ChatGroup
	err := repo.db.Preload("Members").Where("UUID = ?", uuid).First(&group).Error
	return &group, err
}

func (repo *SQLiteGroupRepository) GetAll() ([]*entity.ChatGroup, error) {
	var groups []*entity.ChatGroup
	err := repo.db.Preload("Members").Find(&groups).Error
	return groups, err
}

func (repo *SQLiteGroupRepository) GetMembers(uuid string) ([]*entity.User, error) {
	var group entity.ChatGroup
	err := repo.db.Preload("Members").Where("UUID = ?", uuid).First(&group).Error
	return group.Members, err
}

func (repo *SQLiteGroupRepository) IsMember(uuid, userUUID string) (bool, error) {
	var count int64
	err := repo.db.
		Table("group_members").
		Where("chat_group_uuid = ? AND user_uuid = ?", uuid, userUUID).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteGroupRepository) AddMember(uuid string, user *entity.User) error {
	group := entity.ChatGroup{UUID: uuid}
	return repo.db.Model(&group).Association("Members").Append(user)
}

func (repo *SQLiteGroupRepository) RemoveMemberEverywhere(userUUID string) error {
	return repo.db.Exec("DELETE FROM group_members WHERE user_uuid = ?", userUUID).Error
}
