package paper

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

var (
	phaseTag  = "phase"
	phaseText = "{0} must be one of: " + strings.Join(Phases, ", ")
)

// InitValidators registers the paper validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(phaseTag, func(fl validator.FieldLevel) bool {
		return IsPhase(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, phaseTag, phaseText)
}
