// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"cashflow/internal/models"
)

// usernameRegex allows letters, digits and @/./+/-/_ characters.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("username", validateUsername)
		_ = v.RegisterValidation("reference_kind", validateReferenceKind)
		_ = v.RegisterValidation("date", validateDate)
	}
}

// IsMoney reports whether s is a decimal amount that fits DECIMAL(12,2).
func IsMoney(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return models.ValidAmount(d)
}

func validateMoney(fl validator.FieldLevel) bool {
	return IsMoney(fl.Field().String())
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func validateReferenceKind(fl validator.FieldLevel) bool {
	_, ok := models.ParseReferenceKind(fl.Field().String())
	return ok
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}
