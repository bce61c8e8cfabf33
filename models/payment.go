package models

// CardNetwork is the card-issuing scheme inferred from the number's prefix.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkAmex       CardNetwork = "amex"
	NetworkDiscover   CardNetwork = "discover"
	NetworkUnknown    CardNetwork = "unknown"
)

// Payment kinds.
const (
	PayNow   = "now"
	PayLater = "later"
)

// CardInfo carries the raw card fields entered on the form. Card data is
// validated syntactically only and is never sent to a payment network.
type CardInfo struct {
	Number  string      `json:"cardNumber"`
	Expiry  string      `json:"expiryDate"` // "MM/YY"
	CVV     string      `json:"cvv"`
	Network CardNetwork `json:"network,omitempty"`
}

// PaymentMethod is a tagged variant: Kind "now" carries card details,
// Kind "later" carries none.
type PaymentMethod struct {
	Kind string    `json:"kind"`
	Card *CardInfo `json:"card,omitempty"`
}

// PaymentSnapshot is what a committed rental retains about payment.
// Only the network and the last four digits survive the commit; full card
// numbers are never persisted.
type PaymentSnapshot struct {
	Kind       string      `bson:"kind" json:"kind"`
	Network    CardNetwork `bson:"network,omitempty" json:"network,omitempty"`
	CardLast4  string      `bson:"cardLast4,omitempty" json:"cardLast4,omitempty"`
	CardExpiry string      `bson:"cardExpiry,omitempty" json:"cardExpiry,omitempty"`
}
