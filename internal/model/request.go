package model

import "time"

// SystemRequest is a staff-authored request to the admin. The requester is
// nulled if the account is deleted; the request itself stays.
type SystemRequest struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Requester     *string `gorm:"size:50" json:"requester,omitempty"`
	RequesterUser *User   `gorm:"foreignKey:Requester;references:Username;constraint:OnDelete:SET NULL" json:"-"`
	Title         string  `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Content       string  `gorm:"type:text" json:"content"`
	Checked       bool    `gorm:"not null;default:false" json:"checked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
