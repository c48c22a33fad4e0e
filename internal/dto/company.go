package dto

import (
	"github.com/hiremeo/job-board-api/internal/models"
)

// CompanyDTO is the company account representation returned by auth and
// profile endpoints.
type CompanyDTO struct {
	ID             uint64               `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Description    string               `json:"description"`
	ProfilePicture string               `json:"profile_picture"`
	StreetAddress  string               `json:"street_address"`
	State          *models.State        `json:"state,omitempty"`
	Status         models.AccountStatus `json:"status"`
	Subscribers    int64                `json:"subscribers"`
	Tags           []models.Tag         `json:"tags"`
}

// ToCompanyDTO converts a company model to its API representation
func ToCompanyDTO(company models.Company) CompanyDTO {
	tags := company.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return CompanyDTO{
		ID:             company.ID,
		Name:           company.Name,
		Email:          company.Email,
		Description:    company.Description,
		ProfilePicture: company.ProfilePicture,
		StreetAddress:  company.StreetAddress,
		State:          company.State,
		Status:         company.Status,
		Subscribers:    company.Subscribers,
		Tags:           tags,
	}
}

// AuthCompanyResponse is the company login/signup payload: token plus account.
type AuthCompanyResponse struct {
	Token   string     `json:"token"`
	Company CompanyDTO `json:"company"`
}

// CompanyPublicDTO is the public company profile including its active posts.
type CompanyPublicDTO struct {
	CompanyDTO
	Posts []models.Post `json:"posts"`
}
