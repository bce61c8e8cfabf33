package rental

import (
	"context"
	"strings"
	"time"

	"bookrental/models"

	"go.uber.org/zap"
)

// Begin opens a booking session for the given book. Any prior live draft is
// discarded; there is never more than one booking in flight.
func (s *DefaultBookingSessionService) Begin(book models.Book) *models.BookingDraft {
	s.setErrors(nil)
	return s.Drafts.Begin(book)
}

// Update merges form edits into the live draft. Called on every keystroke
// or selection by the form layer.
func (s *DefaultBookingSessionService) Update(fields DraftUpdate) *models.BookingDraft {
	return s.Drafts.Update(fields)
}

// Peek exposes a read-only snapshot of the draft for recovery readers.
func (s *DefaultBookingSessionService) Peek() *models.BookingDraft {
	return s.Drafts.Peek()
}

// Errors returns the field-keyed failures from the last rejected submit,
// or nil if the last submit succeeded (or none happened yet).
func (s *DefaultBookingSessionService) Errors() ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func (s *DefaultBookingSessionService) setErrors(errs ValidationErrors) {
	s.mu.Lock()
	s.errs = errs
	s.mu.Unlock()
}

// Submit validates the draft and, if everything passes, commits an
// immutable RentalRecord to the ledger and clears the draft. On any
// validation failure the draft is kept, the accumulated errors are returned
// and exposed via Errors(), and the renter can correct and resubmit.
//
// Submit with no live draft is collaborator misuse and panics.
func (s *DefaultBookingSessionService) Submit(ctx context.Context) (*models.RentalRecord, ValidationErrors, error) {
	draft := s.Drafts.Peek()
	if draft == nil {
		panic("rental: Submit called with no live draft")
	}

	now := s.now()
	errs := s.validate(draft, now)
	if len(errs) > 0 {
		s.setErrors(errs)
		s.Logger.Debug("rental submit rejected",
			zap.String("sessionId", draft.SessionID),
			zap.Int("errorCount", len(errs)))
		return nil, errs, nil
	}
	s.setErrors(nil)

	record := buildRecord(draft, now)
	id, perr := s.Ledger.Append(ctx, record)
	if perr != nil {
		// Storage failure is reportable but never blocks the commit; the
		// in-memory ledger remains authoritative for the session.
		s.Logger.Warn("ledger mirror write failed after commit", zap.Error(perr))
	}
	record.ID = id

	s.Drafts.Clear()
	s.Logger.Info("rental committed",
		zap.Int64("rentalId", id),
		zap.String("book", record.Book.Title),
		zap.String("paymentStatus", record.PaymentStatus))
	return &record, nil, perr
}

// Cancel abandons the session: the draft is cleared, the ledger untouched.
// It is unconditional and safe to call in any state.
func (s *DefaultBookingSessionService) Cancel() {
	s.setErrors(nil)
	s.Drafts.Clear()
}

// History returns the committed rentals in commit order.
func (s *DefaultBookingSessionService) History() []models.RentalRecord {
	return s.Ledger.ListAll()
}

// MarkReturned records that a rented book came back.
func (s *DefaultBookingSessionService) MarkReturned(ctx context.Context, id int64) error {
	return s.Ledger.MarkReturned(ctx, id)
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// validate runs the period check always and the card checks only when the
// renter chose to pay now, accumulating every failure.
func (s *DefaultBookingSessionService) validate(draft *models.BookingDraft, now time.Time) ValidationErrors {
	errs := make(ValidationErrors)

	for field, value := range map[string]string{
		"name":    draft.Renter.Name,
		"email":   draft.Renter.Email,
		"phone":   draft.Renter.Phone,
		"address": draft.Renter.Address,
	} {
		if strings.TrimSpace(value) == "" {
			errs.add(newFieldError(field, KindMissingField, "This field is required"))
		}
	}
	if draft.Period.CollectionDate.IsZero() {
		errs.add(newFieldError(FieldCollectionDate, KindMissingField, "Collection date is required"))
	}
	if draft.Period.ReturnDate.IsZero() {
		errs.add(newFieldError(FieldReturnDate, KindMissingField, "Return date is required"))
	}
	errs.add(ValidatePeriod(draft.Period, models.DateOf(now)))

	switch draft.Payment.Kind {
	case models.PayLater:
		// Nothing to check; payment settles at collection.
	case models.PayNow:
		card := draft.Payment.Card
		if card == nil {
			card = &models.CardInfo{}
		}
		errs.add(ValidateCardNumber(card.Number))
		errs.add(ValidateExpiry(card.Expiry, now))
		errs.add(ValidateCVV(card.CVV, DetectNetwork(card.Number)))
	default:
		errs.add(newFieldError("payment", KindMissingField, "Choose a payment method"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// buildRecord snapshots the draft into an immutable record. Everything is
// copied by value so later draft mutation cannot corrupt a committed
// rental; of the card only network, last four digits and expiry survive.
func buildRecord(draft *models.BookingDraft, now time.Time) models.RentalRecord {
	payment := models.PaymentSnapshot{Kind: draft.Payment.Kind}
	paymentStatus := models.PaymentPending
	if draft.Payment.Kind == models.PayNow {
		paymentStatus = models.PaymentPaid
		if card := draft.Payment.Card; card != nil {
			number := cleanCardNumber(card.Number)
			payment.Network = DetectNetwork(number)
			if len(number) >= 4 {
				payment.CardLast4 = number[len(number)-4:]
			}
			payment.CardExpiry = card.Expiry
		}
	}

	return models.RentalRecord{
		Book:          draft.Book,
		Renter:        draft.Renter,
		Period:        draft.Period,
		Payment:       payment,
		Status:        models.RentalActive,
		PaymentStatus: paymentStatus,
		CreatedAt:     now,
	}
}
