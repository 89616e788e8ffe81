package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Room names: letters, digits, hyphens and underscores, at most 128 chars.
var roomNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

var customTags = map[string]validator.Func{
	"roomname": ValidateRoomName,
	"known":    ValidateKnown,
	"utf8":     ValidateUTF8,
}

var customAliases = map[string]string{
	"privacy": "oneof=public private",
}

func ValidateRoomName(fl validator.FieldLevel) bool {
	return roomNameRegex.MatchString(fl.Field().String())
}

// Enum is implemented by closed string sets.
type Enum interface {
	Valid() bool
}

// ValidateKnown accepts values whose Valid method reports true.
func ValidateKnown(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanInterface() {
		return false
	}
	e, ok := field.Interface().(Enum)
	return ok && e.Valid()
}

// ValidateUTF8 rejects strings that JSON encoding would rewrite.
func ValidateUTF8(fl validator.FieldLevel) bool {
	return utf8.ValidString(fl.Field().String())
}
