package rental

import (
	"context"
	"encoding/json"
	"sync"

	"bookrental/models"
	"bookrental/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftUpdate carries a partial set of form fields. Nil fields are left
// untouched; the field names mirror the rental form inputs.
type DraftUpdate struct {
	Name           *string      `json:"name,omitempty"`
	Email          *string      `json:"email,omitempty"`
	Phone          *string      `json:"phone,omitempty"`
	Address        *string      `json:"address,omitempty"`
	CollectionDate *models.Date `json:"collectiondate,omitempty"`
	ReturnDate     *models.Date `json:"returndate,omitempty"`
	PaymentKind    *string      `json:"paymentKind,omitempty"` // "now" or "later"
	CardNumber     *string      `json:"cardNumber,omitempty"`
	ExpiryDate     *string      `json:"expiryDate,omitempty"`
	CVV            *string      `json:"cvv,omitempty"`
	FinalPage      *bool        `json:"isFinalPage,omitempty"`
}

// DraftTracker owns the single live booking draft. It mirrors the draft to
// the store under DraftKey while one is live and removes the key on clear,
// so an abandonment-recovery reader can resume an unfinished booking.
type DraftTracker struct {
	mu     sync.Mutex
	draft  *models.BookingDraft
	store  Store
	logger *zap.Logger
}

// NewDraftTracker returns a tracker with no live draft.
func NewDraftTracker(store Store) *DraftTracker {
	return &DraftTracker{
		store:  store,
		logger: utils.GetLogger(),
	}
}

// Begin opens a fresh draft for the given book, discarding any prior live
// draft. Drafts never stack.
func (t *DraftTracker) Begin(book models.Book) *models.BookingDraft {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.draft = &models.BookingDraft{
		SessionID: uuid.New().String(),
		Book:      book,
	}
	t.mirrorLocked()
	return copyDraft(t.draft)
}

// Update merges the given fields into the live draft. Panics if no draft is
// live: that is collaborator misuse, not user input.
func (t *DraftTracker) Update(fields DraftUpdate) *models.BookingDraft {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draft == nil {
		panic("rental: Update called with no live draft")
	}
	d := t.draft

	if fields.Name != nil {
		d.Renter.Name = *fields.Name
	}
	if fields.Email != nil {
		d.Renter.Email = *fields.Email
	}
	if fields.Phone != nil {
		d.Renter.Phone = *fields.Phone
	}
	if fields.Address != nil {
		d.Renter.Address = *fields.Address
	}
	if fields.CollectionDate != nil {
		d.Period.CollectionDate = *fields.CollectionDate
		// A return date at or before the new collection date is cleared,
		// forcing re-entry rather than silently keeping an invalid range.
		if !d.Period.ReturnDate.IsZero() && !d.Period.ReturnDate.After(d.Period.CollectionDate) {
			d.Period.ReturnDate = models.Date{}
		}
	}
	if fields.ReturnDate != nil {
		d.Period.ReturnDate = *fields.ReturnDate
	}
	if fields.PaymentKind != nil {
		d.Payment.Kind = *fields.PaymentKind
		if d.Payment.Kind == models.PayNow && d.Payment.Card == nil {
			d.Payment.Card = &models.CardInfo{}
		}
		if d.Payment.Kind == models.PayLater {
			d.Payment.Card = nil
		}
		// Choosing a payment method means the renter reached the final
		// confirmation step.
		d.IsFinalPage = true
	}
	if fields.CardNumber != nil {
		if d.Payment.Card == nil {
			d.Payment.Card = &models.CardInfo{}
		}
		d.Payment.Card.Number = *fields.CardNumber
		d.Payment.Card.Network = DetectNetwork(*fields.CardNumber)
	}
	if fields.ExpiryDate != nil {
		if d.Payment.Card == nil {
			d.Payment.Card = &models.CardInfo{}
		}
		d.Payment.Card.Expiry = *fields.ExpiryDate
	}
	if fields.CVV != nil {
		if d.Payment.Card == nil {
			d.Payment.Card = &models.CardInfo{}
		}
		d.Payment.Card.CVV = *fields.CVV
	}
	if fields.FinalPage != nil {
		d.IsFinalPage = *fields.FinalPage
	}

	t.mirrorLocked()
	return copyDraft(d)
}

// Peek returns a read-only snapshot of the live draft, or nil when none is
// live. Callers never see the tracker's own instance.
func (t *DraftTracker) Peek() *models.BookingDraft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyDraft(t.draft)
}

// Active reports whether a draft is live.
func (t *DraftTracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft != nil
}

// Clear resets to "no active draft". Submit-success and cancel both land
// here and converge to the identical cleared state.
func (t *DraftTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.draft = nil
	if err := t.store.Del(context.Background(), DraftKey); err != nil {
		t.logger.Warn("failed to remove draft mirror", zap.Error(err))
	}
}

// mirrorLocked writes the live draft to the store. Failures are logged and
// swallowed: the in-memory draft stays authoritative for the session.
func (t *DraftTracker) mirrorLocked() {
	data, err := json.Marshal(t.draft)
	if err != nil {
		t.logger.Warn("failed to marshal draft mirror", zap.Error(err))
		return
	}
	if err := t.store.Set(context.Background(), DraftKey, string(data)); err != nil {
		t.logger.Warn("failed to write draft mirror", zap.Error(err))
	}
}

func copyDraft(d *models.BookingDraft) *models.BookingDraft {
	if d == nil {
		return nil
	}
	out := *d
	if d.Payment.Card != nil {
		card := *d.Payment.Card
		out.Payment.Card = &card
	}
	return &out
}
