package models

import (
	"time"

	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusActive    PostStatus = "Active"
	PostStatusSuspended PostStatus = "Suspended"
	PostStatusDeleted   PostStatus = "Deleted"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-Time"
	EmploymentPartTime EmploymentType = "Part-Time"
	EmploymentContract EmploymentType = "Contract"
)

type Post struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	EmploymentType    EmploymentType `gorm:"type:varchar(20);not null" json:"employment_type"`
	Requirements      []string       `gorm:"serializer:json" json:"requirements"`
	Salary            int64          `json:"salary"`
	StreetAddress     string         `gorm:"type:varchar(255)" json:"street_address"`
	StateID           *uint64        `json:"state_id"`
	CompanyID         uint64         `gorm:"not null;index;<-:create" json:"company_id"`
	Status            PostStatus     `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	NumberOfResponses int64          `gorm:"not null;default:0;index" json:"number_of_responses"`
	Skills            []string       `gorm:"serializer:json" json:"skills"`
	YearsOfExperience int            `json:"years_of_experience"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company   Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	State     *State     `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Tags      []Tag      `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Responses []Response `gorm:"foreignKey:PostID" json:"responses,omitempty"`
}

// Listable reports whether the post may appear in public listings and search.
func (p *Post) Listable() bool {
	return p.Status == PostStatusActive
}

// AcceptsResponses reports whether users may still apply. Suspended posts keep
// accepting applications; only Deleted is terminal.
func (p *Post) AcceptsResponses() bool {
	return p.Status != PostStatusDeleted
}
