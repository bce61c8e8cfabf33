package models

import "time"

// RenterInfo identifies the person renting a book. All fields are required
// and presence-checked at commit; format validation belongs to the form layer.
type RenterInfo struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

// RentalPeriod is the requested collection/return date pair.
// Invariant: ReturnDate is strictly after CollectionDate.
type RentalPeriod struct {
	CollectionDate Date `bson:"collectionDate" json:"collectionDate"`
	ReturnDate     Date `bson:"returnDate" json:"returnDate"`
}

// BookingDraft is the mutable in-progress booking form state. At most one
// draft is live at a time; it is cleared on submit-success or cancel.
type BookingDraft struct {
	SessionID   string        `json:"sessionId"`
	Book        Book          `json:"book"`
	Renter      RenterInfo    `json:"renter"`
	Period      RentalPeriod  `json:"period"`
	Payment     PaymentMethod `json:"payment"`
	IsFinalPage bool          `json:"isFinalPage"`
}

// Rental statuses.
const (
	RentalActive   = "active"
	RentalReturned = "returned"
)

// Payment statuses.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
)

// RentalRecord is a committed rental. Once appended to the ledger it is
// owned by the ledger; the only permitted transition afterwards is
// status active -> returned.
type RentalRecord struct {
	ID            int64           `bson:"id" json:"id"`
	Book          Book            `bson:"book" json:"book"`
	Renter        RenterInfo      `bson:"renter" json:"renter"`
	Period        RentalPeriod    `bson:"period" json:"period"`
	Payment       PaymentSnapshot `bson:"payment" json:"payment"`
	Status        string          `bson:"status" json:"status"`               // "active" or "returned"
	PaymentStatus string          `bson:"paymentStatus" json:"paymentStatus"` // "paid" iff paid now, else "pending"
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
}
