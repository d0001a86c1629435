package model

import "time"

// Message is a direct message between two accounts. Sender and receiver are
// nulled rather than the message being deleted when either account goes
// away.
type Message struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Sender       *string `gorm:"size:50" json:"sender,omitempty"`
	SenderUser   *User   `gorm:"foreignKey:Sender;references:Username;constraint:OnDelete:SET NULL" json:"-"`
	Receiver     *string `gorm:"size:50" json:"receiver,omitempty"`
	ReceiverUser *User   `gorm:"foreignKey:Receiver;references:Username;constraint:OnDelete:SET NULL" json:"-"`
	Subject      string  `gorm:"size:255" json:"subject"`
	Content      string  `gorm:"type:text" json:"content"`
	IsRead       bool    `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
