package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	attCodeTag   = "attcode"
	attCodeText  = "only uppercase letters and digits are allowed (3-20 characters)"
	attCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

	ymdTag  = "ymd"
	ymdText = "must be a date in YYYY-MM-DD format"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	Translator, _ = uni.GetTranslator("en")

	Validate = validator.New()
	initValidators(Validate, Translator)
}

// initValidators instantiates the validator for use.
func initValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(attCodeTag, attCodeValidation)
	RegisterCustomTranslation(validate, translator, attCodeTag, attCodeText)

	_ = validate.RegisterValidation(ymdTag, ymdValidation)
	RegisterCustomTranslation(validate, translator, ymdTag, ymdText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// attCodeValidation only allows normalized attendance/class codes.
func attCodeValidation(fl validator.FieldLevel) bool {
	return attCodeRegex.MatchString(fl.Field().String())
}

// ymdValidation only allows strict, parseable YYYY-MM-DD dates.
func ymdValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !IsYMD(s) {
		return false
	}
	_, err := ParseYMD(s)
	return err == nil
}
