package models

import "time"

// Subscription links a user to a company they follow. The composite primary
// key gives the "subscribed" collection set semantics.
type Subscription struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CompanyID uint64    `gorm:"primarykey" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// SavedPost is a post bookmarked by a user, set semantics as Subscription.
type SavedPost struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	PostID    uint64    `gorm:"primarykey" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
