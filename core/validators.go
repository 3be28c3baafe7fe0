package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	yesNoTag  = "yesno"
	yesNoText = "must be one of: yes, no"

	yearMonthTag  = "yearmonth"
	yearMonthText = "must be a month formatted as YYYY-MM"

	requiredText = "this field is required"
)

// Validator checks structs against their `validate` tags and reports field-scoped errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator instantiates the validator for use.
func NewValidator() *Validator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	v := &Validator{validate: validator.New(), translator: translator}
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)

	// Use JSON tag names for errors instead of Go struct names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = v.validate.RegisterValidation(notBlankTag, notBlankValidation)
	v.RegisterCustomTranslation(notBlankTag, notBlankText)
	_ = v.validate.RegisterValidation(yesNoTag, yesNoValidation)
	v.RegisterCustomTranslation(yesNoTag, yesNoText)
	_ = v.validate.RegisterValidation(yearMonthTag, yearMonthValidation)
	v.RegisterCustomTranslation(yearMonthTag, yearMonthText)

	for _, tag := range []string{"required", "required_if", "required_unless", "required_with"} {
		v.RegisterCustomTranslation(tag, requiredText, true)
	}
	return v
}

// Engine exposes the underlying validator, for packages registering their own rules.
func (v *Validator) Engine() *validator.Validate { return v.validate }

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func (v *Validator) RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Validate checks `s` and returns nil or a *ValidationError keyed by json field paths.
// `s` is never modified.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err // malformed input, e.g. not a struct
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		flds = append(flds, FieldError{Field: fieldPath(fe), Error: fe.Translate(v.translator)})
	}
	return NewValidationError(nil, flds...)
}

// fieldPath drops the root struct name from the error namespace: "Education.exitDate" -> "exitDate".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// yesNoValidation allows "yes", "no" and the empty string (use `required` to forbid the latter).
func yesNoValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "yes", "no":
		return true
	}
	return false
}

// yearMonthValidation allows the empty string or a "2006-01" formatted month.
func yearMonthValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}
