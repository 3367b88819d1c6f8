package session

import "errors"

// ErrInvalidTransition is returned when an event is not defined for the
// current state. The state is left untouched.
var ErrInvalidTransition = errors.New("invalid transition")

// State is one step of the shopping flow. The flow is a cycle:
// browsing -> preview -> cart -> checkout address -> checkout contacts ->
// order confirmed -> browsing.
type State int

const (
	StateBrowsing State = iota
	StatePreviewOpen
	StateCartOpen
	StateCheckoutAddress
	StateCheckoutContacts
	StateOrderConfirmed
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StatePreviewOpen:
		return "preview"
	case StateCartOpen:
		return "cart"
	case StateCheckoutAddress:
		return "checkout_address"
	case StateCheckoutContacts:
		return "checkout_contacts"
	case StateOrderConfirmed:
		return "order_confirmed"
	default:
		return "unknown"
	}
}

// Event is a user intent driving the flow forward.
type Event int

const (
	// EventSelectItem opens (or replaces) a product preview.
	EventSelectItem Event = iota
	// EventOpenCart opens the cart from browsing or a preview.
	EventOpenCart
	// EventStartCheckout begins checkout from an open, non-empty cart.
	EventStartCheckout
	// EventSubmitAddress completes the delivery step.
	EventSubmitAddress
	// EventSubmitContacts validates the contact step in place.
	EventSubmitContacts
	// EventConfirmOrder records a successful order submission.
	EventConfirmOrder
	// EventAcknowledge closes the confirmation and returns to browsing.
	EventAcknowledge
	// EventCancel closes whatever modal content is open.
	EventCancel
)

// String returns a readable event name for logs.
func (e Event) String() string {
	switch e {
	case EventSelectItem:
		return "select_item"
	case EventOpenCart:
		return "open_cart"
	case EventStartCheckout:
		return "start_checkout"
	case EventSubmitAddress:
		return "submit_address"
	case EventSubmitContacts:
		return "submit_contacts"
	case EventConfirmOrder:
		return "confirm_order"
	case EventAcknowledge:
		return "acknowledge"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// transitions is the full flow table. Guards that depend on model state
// (non-empty cart, valid form steps) are enforced by the Session before it
// fires the event; the table itself only encodes reachability.
var transitions = map[State]map[Event]State{
	StateBrowsing: {
		EventSelectItem: StatePreviewOpen,
		EventOpenCart:   StateCartOpen,
	},
	StatePreviewOpen: {
		EventSelectItem: StatePreviewOpen,
		EventOpenCart:   StateCartOpen,
		EventCancel:     StateBrowsing,
	},
	StateCartOpen: {
		EventStartCheckout: StateCheckoutAddress,
		EventCancel:        StateBrowsing,
	},
	StateCheckoutAddress: {
		EventSubmitAddress: StateCheckoutContacts,
		EventCancel:        StateBrowsing,
	},
	StateCheckoutContacts: {
		EventSubmitContacts: StateCheckoutContacts,
		EventConfirmOrder:   StateOrderConfirmed,
		EventCancel:         StateBrowsing,
	},
	StateOrderConfirmed: {
		EventAcknowledge: StateBrowsing,
	},
}

// FSM tracks the current flow state.
type FSM struct {
	current State
}

// NewFSM starts in StateBrowsing.
func NewFSM() *FSM {
	return &FSM{current: StateBrowsing}
}

// Current returns the current state.
func (f *FSM) Current() State {
	return f.current
}

// Fire applies the event. Undefined (state, event) pairs return
// ErrInvalidTransition and leave the state unchanged.
func (f *FSM) Fire(event Event) (State, error) {
	next, ok := transitions[f.current][event]
	if !ok {
		return f.current, ErrInvalidTransition
	}
	f.current = next
	return next, nil
}
