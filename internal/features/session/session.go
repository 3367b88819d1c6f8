package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/core/eventbus"
	"storefront/internal/core/logger"
	catalogdomain "storefront/internal/features/catalog/domain"
	catalogmodel "storefront/internal/features/catalog/model"
	checkoutdomain "storefront/internal/features/checkout/domain"
	checkoutmodel "storefront/internal/features/checkout/model"
	"storefront/internal/features/checkout/ports"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyInCart is returned when the previewed product is in the cart;
	// the preview's add control is disabled in that case.
	ErrAlreadyInCart = errors.New("product already in cart")
	// ErrEmptyCart is returned when checkout is started with an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrValidation is returned when a checkout step fails validation.
	// The field-level detail is in the session's FormErrors.
	ErrValidation = errors.New("validation failed")
)

// Session is the orchestration layer for one shopper: it owns a private
// event bus, the catalog and order models, and the flow state machine.
// All mutation goes through the session's mutex, preserving the
// single-threaded dispatch model even under concurrent HTTP handlers.
type Session struct {
	id        string
	mu        sync.Mutex
	bus       *eventbus.Bus
	catalog   *catalogmodel.Model
	order     *checkoutmodel.Model
	fsm       *FSM
	submitter ports.OrderSubmitter
	log       *zap.Logger

	formErrors checkoutdomain.FormErrors
	lastOrder  *checkoutdomain.OrderResult
}

// New creates a session seeded with the shared catalog list and wires the
// bus subscriptions: one pattern subscription for every per-field checkout
// intent, plus the model change events the session tracks for snapshots.
func New(id string, list catalogdomain.ProductList, submitter ports.OrderSubmitter) *Session {
	bus := eventbus.New()

	s := &Session{
		id:         id,
		bus:        bus,
		catalog:    catalogmodel.New(bus),
		order:      checkoutmodel.New(bus),
		fsm:        NewFSM(),
		submitter:  submitter,
		log:        logger.Get().With(zap.String("session_id", id)),
		formErrors: checkoutdomain.FormErrors{},
	}

	bus.SubscribeMatch(checkoutmodel.FieldChangePattern, s.onFieldChange)
	bus.Subscribe(checkoutmodel.TopicFormErrorsChanged, s.onFormErrors)
	bus.Subscribe(checkoutmodel.TopicOrderCompleted, s.onOrderCompleted)
	bus.Subscribe(catalogmodel.TopicCartChanged, s.onCartChanged)

	s.catalog.SetCatalog(list)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Bus exposes the session's event bus for render-boundary adapters that
// want to observe model change events directly.
func (s *Session) Bus() *eventbus.Bus {
	return s.bus
}

// onFieldChange routes an order.<field>:change intent to the draft form.
// Handlers run inside Emit, under the lock of the emitting operation.
func (s *Session) onFieldChange(payload any) {
	change, ok := payload.(checkoutmodel.FieldChange)
	if !ok {
		s.log.Warn("Ignoring malformed field change payload")
		return
	}

	switch change.Field {
	case "payment":
		method, err := checkoutdomain.ParsePaymentMethod(change.Value)
		if err != nil {
			s.log.Warn("Ignoring unknown payment method", zap.String("value", change.Value))
			return
		}
		s.order.SetPayment(method)
	case "address":
		s.order.SetAddress(change.Value)
	case "email":
		s.order.SetEmail(change.Value)
	case "phone":
		s.order.SetPhone(change.Value)
	default:
		s.log.Warn("Ignoring unknown form field", zap.String("field", change.Field))
	}
}

func (s *Session) onFormErrors(payload any) {
	if errs, ok := payload.(checkoutdomain.FormErrors); ok {
		s.formErrors = errs
	}
}

func (s *Session) onOrderCompleted(payload any) {
	if result, ok := payload.(checkoutdomain.OrderResult); ok {
		s.lastOrder = &result
	}
}

func (s *Session) onCartChanged(payload any) {
	s.log.Debug("Cart changed",
		zap.Int("items", s.catalog.Cart().Total),
		zap.Int("amount", s.catalog.CartAmount()),
	)
}

// fire applies a flow event, annotating rejections with context.
func (s *Session) fire(event Event) error {
	state := s.fsm.Current()
	if _, err := s.fsm.Fire(event); err != nil {
		s.log.Debug("Rejected flow event",
			zap.String("event", event.String()),
			zap.String("state", state.String()),
		)
		return fmt.Errorf("%s in state %s: %w", event, state, ErrInvalidTransition)
	}
	return nil
}

// SelectProduct opens a preview for the product with the given id.
// Ids absent from the catalog are reported and skipped without touching
// the flow state.
func (s *Session) SelectProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.catalog.FindByID(id)
	if err != nil {
		s.log.Warn("Selected product not in catalog", zap.String("product_id", id))
		return fmt.Errorf("select %s: %w", id, err)
	}

	if err := s.fire(EventSelectItem); err != nil {
		return err
	}

	s.catalog.SelectItem(product)
	return nil
}

// AddToCart appends the previewed product to the cart. The same product
// cannot be added twice from a preview, and priceless products are refused
// at the model boundary.
func (s *Session) AddToCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, ok := s.catalog.SelectedItem()
	if !ok {
		return catalogdomain.ErrNoSelection
	}
	if s.catalog.IsInCart(selected) {
		return fmt.Errorf("%s: %w", selected.ID, ErrAlreadyInCart)
	}

	return s.catalog.AddSelectedToCart()
}

// RemoveFromCart removes one unit of the product from the cart.
func (s *Session) RemoveFromCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.RemoveFromCart(id); err != nil {
		s.log.Warn("Removing product not in cart", zap.String("product_id", id))
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return nil
}

// OpenCart opens the cart view.
func (s *Session) OpenCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(EventOpenCart)
}

// Cancel closes whatever modal content is open and returns to browsing.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(EventCancel)
}

// StartCheckout begins the checkout flow. Unreachable with an empty cart.
func (s *Session) StartCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.Cart().Total == 0 {
		return ErrEmptyCart
	}
	return s.fire(EventStartCheckout)
}

// SetField publishes a per-field checkout intent onto the bus. The pattern
// subscription wired at construction routes it into the draft form.
func (s *Session) SetField(field, value string) error {
	switch field {
	case "payment", "address", "email", "phone":
	default:
		return fmt.Errorf("unknown form field: %q", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bus.Emit(checkoutmodel.FieldChangeTopic(field), checkoutmodel.FieldChange{
		Field: field,
		Value: value,
	})
	return nil
}

// SubmitAddress validates the delivery step and advances to contacts.
// The resulting error set is published as form:errors-changed either way.
func (s *Session) SubmitAddress() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := checkoutdomain.ValidateAddressStep(s.order.Form())
	s.bus.Emit(checkoutmodel.TopicFormErrorsChanged, errs)
	if !errs.Valid() {
		return ErrValidation
	}

	return s.fire(EventSubmitAddress)
}

// SubmitContacts validates the contact step in place.
func (s *Session) SubmitContacts() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := checkoutdomain.ValidateContactsStep(s.order.Form())
	s.bus.Emit(checkoutmodel.TopicFormErrorsChanged, errs)
	if !errs.Valid() {
		return ErrValidation
	}

	return s.fire(EventSubmitContacts)
}

// SubmitOrder builds the order snapshot (cart ids + amount merged into the
// draft form), posts it, and on success clears the cart, resets the form
// and moves to the confirmation screen. On failure the cart and draft are
// left intact so the shopper can retry.
func (s *Session) SubmitOrder(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fsm.Current() != StateCheckoutContacts {
		return fmt.Errorf("%s in state %s: %w", EventConfirmOrder, s.fsm.Current(), ErrInvalidTransition)
	}
	// The cart may have been emptied after checkout started.
	if s.catalog.Cart().Total == 0 {
		return ErrEmptyCart
	}

	form := s.order.Form()
	errs := checkoutdomain.ValidateAddressStep(form)
	for field, msg := range checkoutdomain.ValidateContactsStep(form) {
		errs[field] = msg
	}
	s.bus.Emit(checkoutmodel.TopicFormErrorsChanged, errs)
	if !errs.Valid() {
		return ErrValidation
	}

	order := checkoutdomain.Order{
		OrderForm: form,
		Items:     s.catalog.CartItemIDs(),
		Total:     s.catalog.CartAmount(),
	}

	result, err := s.submitter.Submit(ctx, order)
	if err != nil {
		s.log.Error("Order submission failed", zap.Error(err))
		return fmt.Errorf("submit order: %w", err)
	}

	s.catalog.ClearCart()
	s.catalog.ClearSelection()
	s.order.ResetState()
	s.order.RecordCompletedOrder(result)
	s.formErrors = checkoutdomain.FormErrors{}

	return s.fire(EventConfirmOrder)
}

// Acknowledge closes the confirmation screen and returns to browsing.
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(EventAcknowledge)
}

// CompletedOrders returns the session's order history.
func (s *Session) CompletedOrders() []checkoutdomain.OrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.CompletedOrders()
}

// Preview is the selection part of a snapshot. CanAddToCart mirrors the
// preview's action control: disabled for priceless items and items already
// in the cart.
type Preview struct {
	catalogdomain.Product
	CanAddToCart bool `json:"can_add_to_cart"`
}

// Snapshot is the full render-ready view of a session.
type Snapshot struct {
	SessionID  string                      `json:"session_id"`
	State      string                      `json:"state"`
	Catalog    catalogdomain.ProductList   `json:"catalog"`
	Cart       catalogdomain.ProductList   `json:"cart"`
	CartAmount int                         `json:"cart_amount"`
	Selection  *Preview                    `json:"selection,omitempty"`
	Form       checkoutdomain.OrderForm    `json:"form"`
	FormErrors checkoutdomain.FormErrors   `json:"form_errors"`
	LastOrder  *checkoutdomain.OrderResult `json:"last_order,omitempty"`
}

// Snapshot returns the current render-ready view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:  s.id,
		State:      s.fsm.Current().String(),
		Catalog:    s.catalog.Catalog(),
		Cart:       s.catalog.Cart(),
		CartAmount: s.catalog.CartAmount(),
		Form:       s.order.Form(),
		FormErrors: s.formErrors,
		LastOrder:  s.lastOrder,
	}

	if selected, ok := s.catalog.SelectedItem(); ok {
		snap.Selection = &Preview{
			Product:      selected,
			CanAddToCart: selected.Purchasable() && !s.catalog.IsInCart(selected),
		}
	}

	return snap
}
