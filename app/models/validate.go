package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// slugPattern matches the characters allowed in category slugs and
// usernames: latin letters, digits, hyphen and underscore.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}
