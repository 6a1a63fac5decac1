/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Role of an account. Professionals (everything except "user" and "admin")
// go through the verification workflow before they can operate.
type Role string

const (
	RoleUser      Role = "user"
	RoleTherapist Role = "therapist"
	RoleNGO       Role = "ngo"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// IsProfessional reports whether the role is a verifiable professional one.
func (r Role) IsProfessional() bool {
	return r == RoleTherapist || r == RoleNGO || r == RoleVolunteer
}

// Verification status of an account. See the verification package for the
// allowed transitions.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
	StatusRejected   Status = "rejected"
)

// User entity. The password hash lives in a separate UserSecret record so a
// plain SELECT on users never carries it.
type User struct {
	UUID       string    `gorm:"primaryKey" json:"uuid"`              // Unique identifier
	FullName   string    `gorm:"not null" json:"fullName"`            // Display name
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`   // Login identifier, unique
	ProfilePic string    `json:"profilePic"`                          // URL of the profile picture (hosted externally)
	Role       Role      `gorm:"not null;default:user" json:"role"`   // Account role
	Status     Status    `gorm:"not null;index" json:"status"`        // Verification status
	CreatedAt  time.Time `gorm:"not null;index" json:"created-at"`    // Time of creation
	UpdatedAt  time.Time `gorm:"not null" json:"updated-at"`          // Time of last modification

	ReferralCode string  `gorm:"index" json:"referralCode,omitempty"` // Code handed out by a verified professional, empty until verification
	ReferredBy   *string `gorm:"index" json:"referredBy,omitempty"`   // UUID of the professional whose code was used at signup

	VerificationRequest bool   `gorm:"default:false" json:"verificationRequest"` // A self-service review request is on file
	VerificationMessage string `json:"verificationMessage,omitempty"`            // Free-text note attached to the review request
	Resubmitted         bool   `gorm:"default:false" json:"resubmitted"`         // Pending again after having been sent back to unverified

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID;constraint:OnDelete:CASCADE" json:"-"`
}
