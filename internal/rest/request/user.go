package request

import "github.com/inkpress/inkpress/domain"

type Register struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate carries the optional profile fields. Empty fields are
// left untouched.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Image    string `json:"image"`
	Bio      string `json:"bio"`
}

func (r *ProfileUpdate) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Image:    r.Image,
		Bio:      r.Bio,
	}
}
