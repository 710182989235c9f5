package handlers

import (
	"errors"
	"sync"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the domain binding tags (category, billing, kpi) to
// gin's validator. It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = errors.Join(
			v.RegisterValidation("category", validCategory),
			v.RegisterValidation("billing", validBillingType),
			v.RegisterValidation("kpi", validKPIType),
		)
	})
	return registerErr
}

func validCategory(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).IsValid()
}

func validBillingType(fl validator.FieldLevel) bool {
	return domain.BillingType(fl.Field().String()).IsValid()
}

func validKPIType(fl validator.FieldLevel) bool {
	_, err := domain.ParseKPIType(fl.Field().String())
	return err == nil
}
