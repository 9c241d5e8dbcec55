// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"jainvest/internal/models"
)

var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 .&_-]{0,29}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("content_status", validateContentStatus)
		_ = v.RegisterValidation("symbol", validateSymbol)
		_ = v.RegisterValidation("date", validateDate)
	}
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

// Only review outcomes are accepted; items are created pending.
func validateContentStatus(fl validator.FieldLevel) bool {
	switch models.ContentStatus(fl.Field().String()) {
	case models.ContentApproved, models.ContentRejected:
		return true
	}
	return false
}

func validateSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
