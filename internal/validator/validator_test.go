package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moneyPayload struct {
	Amount   string `json:"amount" validate:"required,money"`
	Currency string `json:"currency" validate:"required,currency_code"`
}

func TestValidate_MoneyRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&moneyPayload{Amount: "1500.0000", Currency: "INR"}))
	assert.NoError(t, v.Validate(&moneyPayload{Amount: "0.0001", Currency: "USD"}))

	cases := []string{"0", "-10", "abc", "10,50"}
	for _, amount := range cases {
		err := v.Validate(&moneyPayload{Amount: amount, Currency: "INR"})
		require.Error(t, err, "сумма %q должна быть отвергнута", amount)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "amount")
	}
}

func TestValidate_CurrencyCodeRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&moneyPayload{Amount: "10", Currency: "EUR"}))

	for _, code := range []string{"inr", "IN", "INRR", "us"} {
		err := v.Validate(&moneyPayload{Amount: "10", Currency: code})
		assert.Error(t, err, "код валюты %q должен быть отвергнут", code)
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&moneyPayload{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "amount")
	assert.Contains(t, vErr.Errors, "currency")
}
