package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) error {
	// currency_code: трехбуквенный код валюты в верхнем регистре
	if err := v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		return len(code) == 3 && code == strings.ToUpper(code)
	}); err != nil {
		return err
	}

	// money: строковая денежная сумма, парсится в decimal и строго > 0
	if err := v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return amount.IsPositive()
	}); err != nil {
		return err
	}

	return nil
}
