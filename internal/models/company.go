package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	Description    string         `gorm:"type:text" json:"description"`
	ProfilePicture string         `gorm:"type:varchar(512)" json:"profile_picture"`
	StreetAddress  string         `gorm:"type:varchar(255)" json:"street_address"`
	StateID        *uint64        `json:"state_id"`
	Status         AccountStatus  `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	Subscribers    int64          `gorm:"not null;default:0" json:"subscribers"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	State *State `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Tags  []Tag  `gorm:"many2many:company_tags" json:"tags,omitempty"`
	Posts []Post `gorm:"foreignKey:CompanyID" json:"posts,omitempty"`
}
