package usecase

import (
	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/go-playground/validator/v10"
)

// validate is only used for single-value format checks; aggregation and
// messages are ours so that every violation is reported at once.
var validate = validator.New()

type violations []domain.Violation

func (v *violations) check(field string, value string, tag, message string) {
	if err := validate.Var(value, tag); err != nil {
		*v = append(*v, domain.Violation{Field: field, Message: message})
	}
}

// checkPresent runs check only when the optional value was supplied.
func (v *violations) checkPresent(field string, value *string, tag, message string) {
	if value != nil {
		v.check(field, *value, tag, message)
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: v}
}

const (
	msgRequired = "is required"
	msgEmail    = "must be a valid email address"
)
