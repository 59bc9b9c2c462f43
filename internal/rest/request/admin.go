package request

import "github.com/inkpress/inkpress/domain"

// AdminUserUpdate is the back-office user patch. The role, when given,
// must pass the registered userrole validation.
type AdminUserUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role" binding:"omitempty,userrole"`
}

func (r *AdminUserUpdate) ToPatch() domain.AdminUserPatch {
	return domain.AdminUserPatch{
		Name:  r.Name,
		Email: r.Email,
		Role:  domain.Role(r.Role),
	}
}

type Category struct {
	Name string `json:"name" binding:"required"`
}
