package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
)

var (
	classTypeTag  = "classtype"
	classTypeText = "invalid class type"

	sessionBoundsText = "session end must be after its start"
)

// InitValidators registers course-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(classTypeTag, classTypeValidation)
	core.RegisterCustomTranslation(validate, translator, classTypeTag, classTypeText)
	core.RegisterCustomTranslation(validate, translator, "gtfield", sessionBoundsText)
}

// classTypeValidation checks that the value is one of the known class types.
func classTypeValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, ct := range ClassTypes {
		if val == ct {
			return true
		}
	}
	return false
}
