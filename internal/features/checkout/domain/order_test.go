package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"", "card", "cash"} {
		m, err := ParsePaymentMethod(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, PaymentMethod(raw), m)
	}

	_, err := ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, ErrUnknownPayment)
}

func TestValidateAddressStep(t *testing.T) {
	t.Run("BothMissing", func(t *testing.T) {
		errs := ValidateAddressStep(OrderForm{})
		assert.False(t, errs.Valid())
		assert.Contains(t, errs, "payment")
		assert.Contains(t, errs, "address")
	})

	t.Run("PaymentOnly", func(t *testing.T) {
		errs := ValidateAddressStep(OrderForm{Payment: PaymentCard})
		assert.Contains(t, errs, "address")
		assert.NotContains(t, errs, "payment")
	})

	t.Run("Valid", func(t *testing.T) {
		errs := ValidateAddressStep(OrderForm{Payment: PaymentCard, Address: "Main St"})
		assert.True(t, errs.Valid())
	})

	t.Run("CashIsValidToo", func(t *testing.T) {
		errs := ValidateAddressStep(OrderForm{Payment: PaymentCash, Address: "Main St 5"})
		assert.True(t, errs.Valid())
	})
}

func TestValidateContactsStep(t *testing.T) {
	t.Run("BothMissing", func(t *testing.T) {
		errs := ValidateContactsStep(OrderForm{})
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "phone")
	})

	t.Run("BothMalformed", func(t *testing.T) {
		errs := ValidateContactsStep(OrderForm{Email: "bad", Phone: "123"})
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "phone")
	})

	t.Run("Valid", func(t *testing.T) {
		errs := ValidateContactsStep(OrderForm{Email: "a@b.com", Phone: "+1 234 567 8901"})
		assert.True(t, errs.Valid())
	})

	t.Run("Emails", func(t *testing.T) {
		valid := []string{"a@b.com", "john.doe+tag@example.co", "x_y%z@sub.domain.org"}
		for _, email := range valid {
			errs := ValidateContactsStep(OrderForm{Email: email, Phone: "1234567890"})
			assert.NotContains(t, errs, "email", email)
		}

		invalid := []string{"bad", "@no-local.com", "no-at.com", "a@b", "a b@c.com"}
		for _, email := range invalid {
			errs := ValidateContactsStep(OrderForm{Email: email, Phone: "1234567890"})
			assert.Contains(t, errs, "email", email)
		}
	})

	t.Run("Phones", func(t *testing.T) {
		valid := []string{"+1 234 567 8901", "1234567890", "+7 (999) 123-4567", "999.123.4567"}
		for _, phone := range valid {
			errs := ValidateContactsStep(OrderForm{Email: "a@b.com", Phone: phone})
			assert.NotContains(t, errs, "phone", phone)
		}

		invalid := []string{"123", "phone", "12 34", "+"}
		for _, phone := range invalid {
			errs := ValidateContactsStep(OrderForm{Email: "a@b.com", Phone: phone})
			assert.Contains(t, errs, "phone", phone)
		}
	})
}
