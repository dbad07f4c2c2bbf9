package video

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

var (
	youtubeURLTag  = "youtubeurl"
	youtubeURLText = "{0} must be a YouTube video link"
)

// InitValidators registers the video validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(youtubeURLTag, youtubeURLValidation)
	core.RegisterCustomTranslation(validate, translator, youtubeURLTag, youtubeURLText)
}

func youtubeURLValidation(fl validator.FieldLevel) bool {
	_, ok := YouTubeID(fl.Field().String())
	return ok
}
