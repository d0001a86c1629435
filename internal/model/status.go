package model

// PostReadStatus holds exactly one row per (user, post) pair once the user
// has touched the post. Rows are created lazily by upsert and cascade away
// with either parent.
type PostReadStatus struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex:idx_post_status_user_post" json:"username"`
	User     User   `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	PostID   uint   `gorm:"not null;uniqueIndex:idx_post_status_user_post" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	IsRead   bool   `gorm:"not null;default:false" json:"is_read"`
	Upvotes  int    `gorm:"not null;default:0" json:"upvotes"`
}

// ReplyReadStatus mirrors PostReadStatus without the upvote counter.
type ReplyReadStatus struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex:idx_reply_status_user_reply" json:"username"`
	User     User   `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	ReplyID  uint   `gorm:"not null;uniqueIndex:idx_reply_status_user_reply" json:"reply_id"`
	Reply    Reply  `gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE" json:"-"`
	IsRead   bool   `gorm:"not null;default:false" json:"is_read"`
}

// StudentStatus is the 1:1 counter row behind the reputation engine,
// created zeroed when a student registers. The aggregate counters are
// rewritten on refresh; promotions and violations only move on staff
// action.
type StudentStatus struct {
	Username string `gorm:"size:50;primaryKey" json:"username"`
	User     User   `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`

	Posts           int `gorm:"not null;default:0" json:"posts"`
	Replies         int `gorm:"not null;default:0" json:"replies"`
	ViewsReceived   int `gorm:"not null;default:0" json:"views_received"`
	RepliesReceived int `gorm:"not null;default:0" json:"replies_received"`
	UpvotesReceived int `gorm:"not null;default:0" json:"upvotes_received"`
	Promotions      int `gorm:"not null;default:0" json:"promotions"`
	Violations      int `gorm:"not null;default:0" json:"violations"`
}
