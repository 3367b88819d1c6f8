package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// PaymentMethod is the payment option chosen during the address step.
type PaymentMethod string

const (
	// PaymentUnset means no method has been chosen yet.
	PaymentUnset PaymentMethod = ""
	// PaymentCard is payment by card online.
	PaymentCard PaymentMethod = "card"
	// PaymentCash is payment in cash on receipt.
	PaymentCash PaymentMethod = "cash"
)

// ErrUnknownPayment is returned for payment values outside the enum.
var ErrUnknownPayment = errors.New("unknown payment method")

// ParsePaymentMethod validates a raw payment value.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch m := PaymentMethod(value); m {
	case PaymentUnset, PaymentCard, PaymentCash:
		return m, nil
	default:
		return PaymentUnset, fmt.Errorf("%w: %q", ErrUnknownPayment, value)
	}
}

// OrderForm is the draft checkout input, filled field by field across the
// two checkout steps. It persists between submission attempts.
type OrderForm struct {
	Payment PaymentMethod `json:"payment"`
	Address string        `json:"address"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
}

// Order is the finalized purchase request: the form merged with a snapshot
// of the cart's item ids and amount. Built exactly once per submission
// attempt and never mutated after.
type Order struct {
	OrderForm
	// Items holds the product ids of every cart entry.
	Items []string `json:"items"`
	// Total is the cart amount at submission time.
	Total int `json:"total"`
}

// OrderResult is the server-assigned confirmation of a completed order.
type OrderResult struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// FormErrors is a structured validation error set keyed by field name.
type FormErrors map[string]string

// Valid reports whether the error set is empty.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

var (
	// emailPattern accepts a standard local@domain.tld shape.
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,4}$`)
	// phonePattern accepts loosely delimited national/international numbers:
	// optional +, optional country code, separators, 10-11 significant digits.
	phonePattern = regexp.MustCompile(`^\+?(\d{1,3})?[- .]?\(?\d{2,3}\)?[- .]?\d{3}[- .]?\d{4}$`)
)

// ValidateAddressStep checks the delivery step: a payment method must be
// chosen and the address must be non-empty.
func ValidateAddressStep(form OrderForm) FormErrors {
	errs := FormErrors{}
	if form.Payment == PaymentUnset {
		errs["payment"] = "Choose a payment method"
	}
	if form.Address == "" {
		errs["address"] = "Address is required"
	}
	return errs
}

// ValidateContactsStep checks the contact step: email and phone must both
// be present and well-formed.
func ValidateContactsStep(form OrderForm) FormErrors {
	errs := FormErrors{}
	if form.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Enter a valid email"
	}
	if form.Phone == "" {
		errs["phone"] = "Phone is required"
	} else if !phonePattern.MatchString(form.Phone) {
		errs["phone"] = "Enter a valid phone number"
	}
	return errs
}
