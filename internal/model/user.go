package model

import "time"

// Role names match the values carried by invitation codes.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
	RoleStaff   Role = "Staff"
)

// User is keyed by username. The role flags are independent booleans: an
// account may hold zero or all three roles at once.
type User struct {
	Username      string `gorm:"size:50;primaryKey" json:"username"`
	Password      string `gorm:"size:255;not null" json:"-"`
	FirstName     string `gorm:"size:100" json:"first_name"`
	MiddleName    string `gorm:"size:100" json:"middle_name"`
	LastName      string `gorm:"size:100" json:"last_name"`
	PreferredName string `gorm:"size:100" json:"preferred_name"`
	Email         string `gorm:"size:100;not null" json:"email"`
	IsAdmin       bool   `gorm:"not null;default:false" json:"is_admin"`
	IsStudent     bool   `gorm:"not null;default:false" json:"is_student"`
	IsStaff       bool   `gorm:"not null;default:false" json:"is_staff"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// HasRole reports whether the account holds the given role.
func (u *User) HasRole(role Role) bool {
	switch role {
	case RoleAdmin:
		return u.IsAdmin
	case RoleStudent:
		return u.IsStudent
	case RoleStaff:
		return u.IsStaff
	}
	return false
}

// DisplayName prefers the preferred name over the legal first name.
func (u *User) DisplayName() string {
	if u.PreferredName != "" {
		return u.PreferredName
	}
	return u.FirstName
}
