package models

import (
	"time"

	"gorm.io/gorm"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusDisabled AccountStatus = "Disabled"
	AccountStatusPending  AccountStatus = "Pending"
)

type User struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Firstname         string         `gorm:"type:varchar(100);not null" json:"firstname"`
	Lastname          string         `gorm:"type:varchar(100);not null" json:"lastname"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"type:varchar(255);not null" json:"-"`
	Bio               string         `gorm:"type:text" json:"bio"`
	ProfilePicture    string         `gorm:"type:varchar(512)" json:"profile_picture"`
	ResumeName        string         `gorm:"type:varchar(255)" json:"resume_name"`
	ResumeURL         string         `gorm:"type:varchar(512)" json:"resume_url"`
	StreetAddress     string         `gorm:"type:varchar(255)" json:"street_address"`
	StateID           *uint64        `json:"state_id"`
	Status            AccountStatus  `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	YearsOfExperience int            `json:"years_of_experience"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	State         *State         `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Skills        []UserSkill    `gorm:"foreignKey:UserID" json:"skills,omitempty"`
	Tags          []Tag          `gorm:"many2many:user_tags" json:"tags,omitempty"`
	Responses     []Response     `gorm:"foreignKey:UserID" json:"-"`
	SavedPosts    []SavedPost    `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"-"`
}

// UserSkill is one entry of a user's skill set, at most one row per skill name.
type UserSkill struct {
	UserID uint64 `gorm:"primarykey" json:"-"`
	Name   string `gorm:"primarykey;type:varchar(100)" json:"name"`
	Years  int    `gorm:"not null" json:"years"`
}
