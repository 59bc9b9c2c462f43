package response

import "github.com/inkpress/inkpress/domain"

const dateTimeFormat = "2006-01-02 15:04:05"

// User is the public shape of an account. The password hash never
// leaves the service layer.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromDomain: Domain -> Response
func NewUserFromDomain(u *domain.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Bio:       u.Bio,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(dateTimeFormat),
		UpdatedAt: u.UpdatedAt.Format(dateTimeFormat),
	}
}

// Auth is the register/login payload: the bearer token plus the account
// it belongs to.
type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
