// Package ginvalid installs the custom validation tags into gin's binding engine.
package ginvalid

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/imtaco/dailyco-go/internal/validation"
)

var setupOnce sync.Once

// Setup registers the module tags and aliases with gin once per process.
func Setup() {
	setupOnce.Do(func() {
		v, err := engine()
		if err != nil {
			panic(err)
		}
		validation.MustRegisterTags(v)
	})
}

func engine() (*validator.Validate, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v, nil
	}
	return nil, errors.New("validator engine is not of type *validator.Validate")
}
