package model

import "time"

// InvitationCode binds an email to a role until it is redeemed or swept.
type InvitationCode struct {
	Code      string    `gorm:"size:16;primaryKey" json:"code"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OneTimePasscode is keyed by email: issuing a new passcode for the same
// address replaces the previous one. Passcode stays empty until issued.
type OneTimePasscode struct {
	Email     string    `gorm:"size:100;primaryKey" json:"email"`
	Passcode  string    `gorm:"size:16;not null;default:''" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
