package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

// RegisterValidators adds the domain enum tags to gin's binding validator:
// layout_mode, content_type and zone.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"layout_mode": func(fl validator.FieldLevel) bool {
			return model.LayoutMode(fl.Field().String()).Valid()
		},
		"content_type": func(fl validator.FieldLevel) bool {
			return model.ContentType(fl.Field().String()).Valid()
		},
		"zone": func(fl validator.FieldLevel) bool {
			return model.Zone(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}
