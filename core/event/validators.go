package event

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
)

var (
	eventTypeTag  = "eventtype"
	eventTypeText = "invalid event type"
)

// InitValidators registers event-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(eventTypeTag, eventTypeValidation)
	core.RegisterCustomTranslation(validate, translator, eventTypeTag, eventTypeText)
}

func eventTypeValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, t := range Types {
		if val == t {
			return true
		}
	}
	return false
}
