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

// This repository is used to manipulate the users in the system.
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user (and its secret) in the repository
	Save(user *entity.User) error   // Persists changes to an existing user
	Delete(uuid string) error       // Hard-deletes the user record

	GetByUUID(uuid string) (*entity.User, error)      // Retrieves the user with the given uuid
	GetByEmail(email string) (*entity.User, error)    // Retrieves the user with the given email
	GetForLogin(email string) (*entity.User, error)   // Retrieves the user WITH its secret, hence, used for login
	GetReferrer(code string) (*entity.User, error)    // Retrieves the verified professional owning the referral code

	GetAll() ([]*entity.User, error)                              // Retrieves every user
	GetPendingProfessionals() ([]*entity.User, error)             // Retrieves professionals awaiting admin review
	GetByRoleAndStatus(role entity.Role, status entity.Status) ([]*entity.User, error) // Retrieves users matching role and status
	GetPeers(excludeUUID string) ([]*entity.User, error)          // Retrieves every end user except the given one
	GetReferred(referrerUUID string) ([]*entity.User, error)      // Retrieves end users referred by the given professional
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return repo.db.Create(user).Error
}

func (repo *SQLiteUserRepository) Save(user *entity.User) error {
	return repo.db.Save(user).Error
}

func (repo *SQLiteUserRepository) Delete(uuid string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_uuid = ?", uuid).Delete(&entity.UserSecret{}).Error; err != nil {
			return err
		}
		return tx.Where("UUID = ?", uuid).Delete(&entity.User{}).Error
	})
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("UUID = ?", uuid).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetForLogin(email string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Preload("Secret").Where("email = ?", email).First(&user).Error
	return &user, err
}

// The referral gate: only codes owned by a verified non-user account resolve.
func (repo *SQLiteUserRepository) GetReferrer(code string) (*entity.User, error) {
	var user entity.User
	err := repo.db.
		Where("referral_code = ? AND status = ? AND role <> ?", code, entity.StatusVerified, entity.RoleUser).
		First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetPendingProfessionals() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.
		Where("status = ? AND role NOT IN ?", entity.StatusPending, []entity.Role{entity.RoleUser, entity.RoleAdmin}).
		Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetByRoleAndStatus(role entity.Role, status entity.Status) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Where("role = ? AND status = ?", role, status).Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetPeers(excludeUUID string) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Where("role = ? AND UUID <> ?", entity.RoleUser, excludeUUID).Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetReferred(referrerUUID string) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Where("referred_by = ? AND role = ?", referrerUUID, entity.RoleUser).Find(&users).Error
	return users, err
}
