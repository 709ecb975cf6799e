package model

import "time"

// Role values accepted by the role-update operation.
const (
	RoleMember        = "member"
	RoleModerator     = "moderator"
	RoleAdministrator = "administrator"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleModerator, RoleAdministrator:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string `json:"first_name,omitempty" gorm:"size:255"`
	LastName     string `json:"last_name,omitempty" gorm:"size:255"`

	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsSuperuser bool   `json:"is_superuser" gorm:"default:false;index"`
	IsDeleted   bool   `json:"-" gorm:"default:false;index"`
	Role        string `json:"role" gorm:"size:50;default:'member'"`

	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	// Optional profile fields.
	ProfilePicture string     `json:"profile_picture,omitempty" gorm:"size:255"`
	PhoneNumber    string     `json:"phone_number,omitempty" gorm:"size:20"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	Bio            string     `json:"bio,omitempty" gorm:"type:text"`
	Country        string     `json:"country,omitempty" gorm:"size:100"`
	City           string     `json:"city,omitempty" gorm:"size:100"`
	PostalCode     string     `json:"postal_code,omitempty" gorm:"size:20"`
	AddressLine    string     `json:"address_line,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        string `json:"role"`
}

// Public converts a User to its public projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Role:        u.Role,
	}
}
