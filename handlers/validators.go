package handlers

import (
	"fmt"
	"sync"

	"gym-management-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding rules to gin's validator.
// Registration runs once; later calls return the first outcome.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerOn(binding.Validator.Engine())
	})
	return registerErr
}

func registerOn(engine interface{}) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding engine is %T, not *validator.Validate", engine)
	}
	if err := v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return models.IsTimeSlot(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register timeslot rule: %w", err)
	}
	return nil
}
