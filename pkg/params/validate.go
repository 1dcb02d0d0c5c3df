package params

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// fieldListPattern matches comma-separated lowercase identifiers, or nothing.
	fieldListPattern = regexp.MustCompile(`^([a-z_][a-z_0-9]*(,[a-z_][a-z_0-9]*)*)?$`)

	// apiHintPattern matches vMAJOR or vMAJOR.MINOR, or nothing.
	apiHintPattern = regexp.MustCompile(`^(v[0-9]+(\.[0-9]+)?)?$`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator with the custom tags registered.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		mustRegister(validate, "fieldlist", fieldListPattern)
		mustRegister(validate, "apihint", apiHintPattern)
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// describe turns a failed validator tag into a message for clients.
func describe(tag, param string) string {
	switch tag {
	case "email":
		return "must be a valid e-mail address"
	case "fieldlist":
		return "must be a comma-separated list of field names matching [a-z_][a-z_0-9]*"
	case "apihint":
		return "must have the form vMAJOR or vMAJOR.MINOR"
	case "min":
		return "must be greater than or equal to " + param
	default:
		return "violates constraint " + tag
	}
}
