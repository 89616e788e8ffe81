package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	defaultOnce sync.Once
	defaultV    *validator.Validate
)

// New returns a validator with the custom tags of this module registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	MustRegisterTags(v)
	return v
}

// Default returns a shared validator. validator.Validate is safe for
// concurrent use once tags are registered.
func Default() *validator.Validate {
	defaultOnce.Do(func() {
		defaultV = New()
	})
	return defaultV
}

// MustRegisterTags registers every custom tag and alias on v.
func MustRegisterTags(v *validator.Validate) {
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	for alias, tags := range customAliases {
		v.RegisterAlias(alias, tags)
	}
}

// jsonName reports fields by their wire name.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
