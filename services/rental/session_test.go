package rental

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookrental/models"
	"bookrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(store Store) *DefaultBookingSessionService {
	svc := NewBookingSessionService(NewDraftTracker(store), NewLedger(store), utils.GetLogger())
	svc.Now = func() time.Time {
		return time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func fillRenter(svc *DefaultBookingSessionService) {
	svc.Update(DraftUpdate{
		Name:    strptr("Paul Atreides"),
		Email:   strptr("paul@arrakis.org"),
		Phone:   strptr("555-0100"),
		Address: strptr("Arrakeen Palace"),
	})
}

func TestSubmitPayLaterEndToEnd(t *testing.T) {
	store := newMemStore()
	svc := newTestSession(store)

	svc.Begin(dune)
	fillRenter(svc)
	svc.Update(DraftUpdate{
		CollectionDate: dateptr(2024, time.July, 1),
		ReturnDate:     dateptr(2024, time.July, 15),
		PaymentKind:    strptr(models.PayLater),
	})

	record, verrs, err := svc.Submit(context.Background())
	require.Nil(t, verrs)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, models.RentalActive, record.Status)
	assert.Equal(t, models.PaymentPending, record.PaymentStatus)
	assert.Equal(t, "Dune", record.Book.Title)
	assert.Equal(t, models.NewDate(2024, time.July, 1), record.Period.CollectionDate)

	assert.Len(t, svc.History(), 1)
	assert.Nil(t, svc.Peek(), "draft cleared on commit")
	assert.Nil(t, svc.Errors())
	assert.False(t, store.has(DraftKey), "draft mirror removed")
	assert.True(t, store.has(LedgerKey), "ledger mirrored")
}

func TestSubmitPayNowMarksPaid(t *testing.T) {
	svc := newTestSession(newMemStore())

	svc.Begin(dune)
	fillRenter(svc)
	svc.Update(DraftUpdate{
		CollectionDate: dateptr(2024, time.July, 1),
		ReturnDate:     dateptr(2024, time.July, 15),
		PaymentKind:    strptr(models.PayNow),
		CardNumber:     strptr("4532 0151 1283 0366"),
		ExpiryDate:     strptr("12/30"),
		CVV:            strptr("123"),
	})

	record, verrs, err := svc.Submit(context.Background())
	require.Nil(t, verrs)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, record.PaymentStatus)
	assert.Equal(t, models.NetworkVisa, record.Payment.Network)
	assert.Equal(t, "0366", record.Payment.CardLast4)
	assert.Equal(t, "12/30", record.Payment.CardExpiry)
}

func TestSubmitRejectedKeepsDraftForCorrection(t *testing.T) {
	svc := newTestSession(newMemStore())

	svc.Begin(dune)
	fillRenter(svc)
	svc.Update(DraftUpdate{
		CollectionDate: dateptr(2024, time.July, 1),
		ReturnDate:     dateptr(2024, time.July, 15),
		PaymentKind:    strptr(models.PayNow),
		CardNumber:     strptr("4532015112830367"), // fails Luhn
		ExpiryDate:     strptr("01/20"),            // expired
		CVV:            strptr("12"),               // too short
	})

	record, verrs, _ := svc.Submit(context.Background())
	assert.Nil(t, record)
	require.NotNil(t, verrs)
	assert.Equal(t, KindInvalidCardNumber, verrs[FieldCardNumber].Kind)
	assert.Equal(t, KindCardExpired, verrs[FieldExpiryDate].Kind)
	assert.Equal(t, KindInvalidCVV, verrs[FieldCVV].Kind)

	assert.NotNil(t, svc.Peek(), "draft kept after rejection")
	assert.Equal(t, verrs, svc.Errors())
	assert.Empty(t, svc.History(), "nothing committed")

	// Correct the fields and resubmit.
	svc.Update(DraftUpdate{
		CardNumber: strptr("4532015112830366"),
		ExpiryDate: strptr("12/30"),
		CVV:        strptr("123"),
	})
	record, verrs, err := svc.Submit(context.Background())
	require.Nil(t, verrs)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Nil(t, svc.Errors(), "errors cleared on success")
}

func TestSubmitRejectsInvalidPeriod(t *testing.T) {
	svc := newTestSession(newMemStore())

	svc.Begin(dune)
	fillRenter(svc)
	svc.Update(DraftUpdate{
		CollectionDate: dateptr(2024, time.July, 10),
		PaymentKind:    strptr(models.PayLater),
	})
	// Slip an equal return date past the tracker's clearing rule.
	svc.Update(DraftUpdate{ReturnDate: dateptr(2024, time.July, 10)})

	record, verrs, _ := svc.Submit(context.Background())
	assert.Nil(t, record)
	require.NotNil(t, verrs)
	assert.Equal(t, KindReturnBeforeCollection, verrs[FieldReturnDate].Kind)
}

func TestSubmitRequiresRenterAndPayment(t *testing.T) {
	svc := newTestSession(newMemStore())
	svc.Begin(dune)

	record, verrs, _ := svc.Submit(context.Background())
	assert.Nil(t, record)
	require.NotNil(t, verrs)
	for _, field := range []string{"name", "email", "phone", "address", FieldCollectionDate, FieldReturnDate, "payment"} {
		if assert.Contains(t, verrs, field) {
			assert.Equal(t, KindMissingField, verrs[field].Kind, "field %s", field)
		}
	}
}

func TestSubmitTwiceCommitsOnce(t *testing.T) {
	svc := newTestSession(newMemStore())

	fill := func() {
		svc.Begin(dune)
		fillRenter(svc)
		svc.Update(DraftUpdate{
			CollectionDate: dateptr(2024, time.July, 1),
			ReturnDate:     dateptr(2024, time.July, 15),
			PaymentKind:    strptr(models.PayLater),
		})
	}

	fill()
	first, _, err := svc.Submit(context.Background())
	require.NoError(t, err)

	// The same booking submitted again from a fresh draft.
	fill()
	second, _, err := svc.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, svc.History(), 1, "exactly one ledger entry")
}

func TestCancelClearsDraftWithoutCommit(t *testing.T) {
	store := newMemStore()
	svc := newTestSession(store)

	svc.Begin(dune)
	fillRenter(svc)
	svc.Cancel()

	assert.Nil(t, svc.Peek())
	assert.Empty(t, svc.History())
	assert.False(t, store.has(DraftKey))

	// Cancel is unconditional; a second call is harmless.
	svc.Cancel()
}

func TestSubmitWithoutDraftPanics(t *testing.T) {
	svc := newTestSession(newMemStore())
	assert.Panics(t, func() {
		svc.Submit(context.Background())
	})
}

func TestMarkReturnedThroughSession(t *testing.T) {
	svc := newTestSession(newMemStore())

	svc.Begin(dune)
	fillRenter(svc)
	svc.Update(DraftUpdate{
		CollectionDate: dateptr(2024, time.July, 1),
		ReturnDate:     dateptr(2024, time.July, 15),
		PaymentKind:    strptr(models.PayLater),
	})
	record, _, err := svc.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.MarkReturned(context.Background(), record.ID))
	assert.Equal(t, models.RentalReturned, svc.History()[0].Status)
}

func TestErrorsSafeUnderConcurrentReads(t *testing.T) {
	svc := newTestSession(newMemStore())
	svc.Begin(dune)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					svc.Errors()
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		_, verrs, err := svc.Submit(context.Background())
		require.NotEmpty(t, verrs)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	assert.NotNil(t, svc.Peek(), "rejected submits keep the draft")
}
