package models

import (
	"time"

	"gorm.io/gorm"
)

type ResponseStatus string

const (
	ResponseStatusUnderReview ResponseStatus = "Under Review"
	ResponseStatusRejected    ResponseStatus = "Rejected"
	ResponseStatusShortlisted ResponseStatus = "Shortlisted"
)

// Response is a user's application to a post. The (UserID, PostID) pair is
// unique: a user applies to a post at most once. Resume and skills are
// snapshots taken at application time, not references to the live profile.
type Response struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	UserID     uint64         `gorm:"not null;uniqueIndex:idx_responses_user_post" json:"user_id"`
	PostID     uint64         `gorm:"not null;uniqueIndex:idx_responses_user_post;index" json:"post_id"`
	ResumeName string         `gorm:"type:varchar(255)" json:"resume_name"`
	ResumeURL  string         `gorm:"type:varchar(512)" json:"resume_url"`
	Skills     []string       `gorm:"serializer:json" json:"skills"`
	Status     ResponseStatus `gorm:"type:varchar(20);not null;default:'Under Review'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
