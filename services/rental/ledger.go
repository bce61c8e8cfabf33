package rental

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"bookrental/models"
	"bookrental/utils"

	"go.uber.org/zap"
)

// ErrRentalNotFound is returned when no ledger entry matches the id.
var ErrRentalNotFound = errors.New("rental not found")

// Ledger is the append-only collection of committed rentals. The in-memory
// sequence is authoritative for the session; after every mutation it is
// mirrored to the store under LedgerKey as a JSON array in commit order.
type Ledger struct {
	mu      sync.Mutex
	records []models.RentalRecord
	nextID  int64
	store   Store
	logger  *zap.Logger
}

// NewLedger returns an empty ledger backed by the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{
		nextID: 1,
		store:  store,
		logger: utils.GetLogger(),
	}
}

// Rehydrate loads the mirrored ledger from the store, if present. The id
// counter resumes past the highest loaded id. A read failure is reported
// but leaves an empty, usable ledger.
func (l *Ledger) Rehydrate(ctx context.Context) error {
	data, err := l.store.Get(ctx, LedgerKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "read", Err: err}
	}

	var records []models.RentalRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return &PersistenceError{Op: "decode", Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records
	for _, r := range records {
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
	}
	return nil
}

// Append commits a record, assigns it a unique monotonic id and returns the
// id. Submitting the same booking twice (same book title, renter email and
// collection date) is a no-op that returns the existing id, so double-clicks
// and retried commits cannot duplicate entries. The returned error, if any,
// is a non-fatal *PersistenceError from the mirror write.
func (l *Ledger) Append(ctx context.Context, record models.RentalRecord) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.records {
		if existing.Book.Title == record.Book.Title &&
			existing.Renter.Email == record.Renter.Email &&
			existing.Period.CollectionDate == record.Period.CollectionDate {
			return existing.ID, nil
		}
	}

	record.ID = l.nextID
	l.nextID++
	l.records = append(l.records, record)

	return record.ID, l.mirrorLocked(ctx)
}

// ListAll returns the committed rentals in insertion order. The caller gets
// copies; ledger entries are never handed out by reference.
func (l *Ledger) ListAll() []models.RentalRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.RentalRecord, len(l.records))
	copy(out, l.records)
	return out
}

// GetByID returns a copy of a single committed rental.
func (l *Ledger) GetByID(id int64) (*models.RentalRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, ErrRentalNotFound
}

// MarkReturned flips a rental's status from active to returned. This is the
// only permitted change to a committed record; identity, order and every
// other field stay fixed. Already-returned rentals are left as they are.
func (l *Ledger) MarkReturned(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			if l.records[i].Status == models.RentalReturned {
				return nil
			}
			l.records[i].Status = models.RentalReturned
			return l.mirrorLocked(ctx)
		}
	}
	return ErrRentalNotFound
}

// Len reports the number of committed rentals.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// mirrorLocked writes the full sequence to the store. The error is reported
// to the caller but never treated as fatal; there is no retry.
func (l *Ledger) mirrorLocked(ctx context.Context) error {
	data, err := json.Marshal(l.records)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: fmt.Errorf("marshal ledger: %w", err)}
	}
	if err := l.store.Set(ctx, LedgerKey, string(data)); err != nil {
		l.logger.Warn("failed to write ledger mirror", zap.Error(err))
		return &PersistenceError{Op: "write", Err: err}
	}
	return nil
}
