package rental

import "fmt"

// Validation error kinds surfaced to the form layer.
const (
	KindInvalidCardNumber      = "invalidCardNumber"
	KindBadExpiryFormat        = "badExpiryFormat"
	KindInvalidMonth           = "invalidMonth"
	KindCardExpired            = "cardExpired"
	KindInvalidCVV             = "invalidCVV"
	KindMissingField           = "missingField"
	KindReturnBeforeCollection = "returnBeforeCollection"
	KindReturnInPast           = "returnInPast"
)

// Form field names used to key validation errors.
const (
	FieldCardNumber     = "cardNumber"
	FieldExpiryDate     = "expiryDate"
	FieldCVV            = "cvv"
	FieldCollectionDate = "collectiondate"
	FieldReturnDate     = "returndate"
)

// FieldError is a recoverable validation failure tied to a single form
// field. Validators return nil on success; they never panic or throw.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newFieldError(field, kind, msg string) *FieldError {
	return &FieldError{Field: field, Kind: kind, Message: msg}
}

// ValidationErrors accumulates field-keyed failures from one submit attempt.
type ValidationErrors map[string]*FieldError

func (v ValidationErrors) add(err *FieldError) {
	if err != nil {
		v[err.Field] = err
	}
}

// PersistenceError wraps a storage read/write failure. It is reportable but
// never fatal: the in-memory state stays authoritative for the session.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("rental persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
