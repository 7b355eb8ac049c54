package validate

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO against its validate tags
func Struct(s interface{}) error {
	return v.Struct(s)
}
