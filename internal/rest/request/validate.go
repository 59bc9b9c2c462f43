package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/inkpress/inkpress/domain"
)

// RegisterValidations hooks the custom rules into gin's binding
// validator. Called once from main.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("userrole", validUserRole)
	}
}

func validUserRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).Valid()
}
