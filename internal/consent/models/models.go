package models

// Type labels a single kind of consent a user can give or withdraw.
// The vocabulary is closed: adding a type is a code change here, never a data
// migration of stored events.
type Type string

const (
	TypeEmailNotifications Type = "email_notifications"
	TypeSMSNotifications   Type = "sms_notifications"
)

// validTypes is the single source of truth for the consent vocabulary.
var validTypes = map[Type]bool{
	TypeEmailNotifications: true,
	TypeSMSNotifications:   true,
}

// AllTypes returns the vocabulary in a stable order.
func AllTypes() []Type {
	return []Type{TypeEmailNotifications, TypeSMSNotifications}
}

// IsValid checks if the consent type is one of the supported enum values.
func (t Type) IsValid() bool {
	return validTypes[t]
}

// Assertion is a single (type, enabled) opinion expressed within one event.
type Assertion struct {
	Type    Type `json:"id"`
	Enabled bool `json:"enabled"`
}

// State is the derived consent snapshot for a user: one entry per known type,
// nil meaning the type was never asserted. It is always recomputed from the
// ordered event history and never persisted.
type State map[Type]*bool

// NewState returns a state with every known type unset.
func NewState() State {
	s := make(State, len(validTypes))
	for _, t := range AllTypes() {
		s[t] = nil
	}
	return s
}

// Apply records an assertion: the last writer for a type wins unconditionally.
func (s State) Apply(a Assertion) {
	enabled := a.Enabled
	s[a.Type] = &enabled
}
