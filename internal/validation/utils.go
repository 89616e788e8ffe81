package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Summary joins failing fields and tags, e.g. "room_name(roomname), lang(known)".
func Summary(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, e.Field()+"("+e.Tag()+")")
	}
	return strings.Join(parts, ", ")
}
