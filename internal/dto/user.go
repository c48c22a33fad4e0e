package dto

import (
	"github.com/hiremeo/job-board-api/internal/models"
)

// UserDTO is the user account representation returned by auth and profile
// endpoints. The password hash never leaves the models layer.
type UserDTO struct {
	ID                uint64               `json:"id"`
	Firstname         string               `json:"firstname"`
	Lastname          string               `json:"lastname"`
	Email             string               `json:"email"`
	Bio               string               `json:"bio"`
	ProfilePicture    string               `json:"profile_picture"`
	ResumeName        string               `json:"resume_name"`
	ResumeURL         string               `json:"resume_url"`
	StreetAddress     string               `json:"street_address"`
	State             *models.State        `json:"state,omitempty"`
	Status            models.AccountStatus `json:"status"`
	YearsOfExperience int                  `json:"years_of_experience"`
	Skills            []models.UserSkill   `json:"skills"`
	Tags              []models.Tag         `json:"tags"`
}

// ToUserDTO converts a user model to its API representation
func ToUserDTO(user models.User) UserDTO {
	skills := user.Skills
	if skills == nil {
		skills = []models.UserSkill{}
	}
	tags := user.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return UserDTO{
		ID:                user.ID,
		Firstname:         user.Firstname,
		Lastname:          user.Lastname,
		Email:             user.Email,
		Bio:               user.Bio,
		ProfilePicture:    user.ProfilePicture,
		ResumeName:        user.ResumeName,
		ResumeURL:         user.ResumeURL,
		StreetAddress:     user.StreetAddress,
		State:             user.State,
		Status:            user.Status,
		YearsOfExperience: user.YearsOfExperience,
		Skills:            skills,
		Tags:              tags,
	}
}

// AuthUserResponse is the login/signup payload: token plus account.
type AuthUserResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
