package model

import (
	"regexp"

	"storefront/internal/core/eventbus"
	"storefront/internal/features/checkout/domain"
)

const (
	// TopicFormErrorsChanged fires when a checkout step is validated.
	// Payload: domain.FormErrors.
	TopicFormErrorsChanged = "form:errors-changed"
	// TopicOrderCompleted fires after a completed order is recorded.
	// Payload: domain.OrderResult.
	TopicOrderCompleted = "order:completed"
)

// FieldChangePattern matches every per-field checkout intent topic,
// e.g. "order.address:change". Subscribing once via pattern keeps the
// orchestration uniform across fields.
var FieldChangePattern = regexp.MustCompile(`^order\.[a-z]+:change$`)

// FieldChangeTopic builds the intent topic for a single form field.
func FieldChangeTopic(field string) string {
	return "order." + field + ":change"
}

// FieldChange is the payload of a per-field checkout intent.
type FieldChange struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Model owns the draft checkout form and the history of completed orders
// for one shopping session.
type Model struct {
	bus       *eventbus.Bus
	form      domain.OrderForm
	completed []domain.OrderResult
}

// New creates an order model with an empty draft form.
func New(bus *eventbus.Bus) *Model {
	return &Model{bus: bus}
}

// SetPayment updates the draft payment method. No validation happens here;
// steps are validated when submitted.
func (m *Model) SetPayment(method domain.PaymentMethod) {
	m.form.Payment = method
}

// SetAddress updates the draft delivery address.
func (m *Model) SetAddress(value string) {
	m.form.Address = value
}

// SetEmail updates the draft contact email.
func (m *Model) SetEmail(value string) {
	m.form.Email = value
}

// SetPhone updates the draft contact phone.
func (m *Model) SetPhone(value string) {
	m.form.Phone = value
}

// Form returns the current draft.
func (m *Model) Form() domain.OrderForm {
	return m.form
}

// ResetState restores the draft form to its empty defaults. Idempotent;
// the completed-order history is untouched.
func (m *Model) ResetState() {
	m.form = domain.OrderForm{}
}

// RecordCompletedOrder appends the confirmation to the history and emits
// TopicOrderCompleted with the recorded entry. The payload is looked up by
// id in the history rather than taken as the last element; the list may
// hold same-id duplicates across retries.
func (m *Model) RecordCompletedOrder(result domain.OrderResult) {
	m.completed = append(m.completed, result)

	for _, entry := range m.completed {
		if entry.ID == result.ID {
			m.bus.Emit(TopicOrderCompleted, entry)
			return
		}
	}
}

// CompletedOrders returns a copy of the append-only order history.
func (m *Model) CompletedOrders() []domain.OrderResult {
	out := make([]domain.OrderResult, len(m.completed))
	copy(out, m.completed)
	return out
}
