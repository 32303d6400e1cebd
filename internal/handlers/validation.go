package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerCustomValidators attaches custom binding validators to gin's
// validator engine. Safe to call once at startup.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// dp2 accepts monetary decimals with at most two decimal places.
	_ = v.RegisterValidation("dp2", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.Equal(d.Round(2))
	})
}
