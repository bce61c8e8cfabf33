package rental

import (
	"context"
	"sync"
	"time"

	"bookrental/models"

	"go.uber.org/zap"
)

// BookingSessionService defines the interface for managing a stateful
// booking session: open a draft for a book, merge form edits, then submit
// (validate and commit to the ledger) or cancel.
type BookingSessionService interface {
	Begin(book models.Book) *models.BookingDraft
	Update(fields DraftUpdate) *models.BookingDraft
	Peek() *models.BookingDraft
	Errors() ValidationErrors
	Submit(ctx context.Context) (*models.RentalRecord, ValidationErrors, error)
	Cancel()
	History() []models.RentalRecord
	MarkReturned(ctx context.Context, id int64) error
}

// DefaultBookingSessionService implements BookingSessionService. It
// exclusively owns one draft tracker and one ledger, injected at session
// start; neither is reachable through ambient globals.
type DefaultBookingSessionService struct {
	Drafts *DraftTracker
	Ledger *Ledger
	Logger *zap.Logger
	Now    func() time.Time // defaults to time.Now

	mu   sync.Mutex // guards errs
	errs ValidationErrors
}

// NewBookingSessionService wires a session service around its draft tracker
// and ledger.
func NewBookingSessionService(drafts *DraftTracker, ledger *Ledger, logger *zap.Logger) *DefaultBookingSessionService {
	return &DefaultBookingSessionService{
		Drafts: drafts,
		Ledger: ledger,
		Logger: logger,
		Now:    time.Now,
	}
}
