package domain

import "time"

// TransactionStatus represents the current status of a checkout transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether no further status transitions are permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSucceeded || s == TransactionStatusFailed
}

// PaymentDuration is the financial term of the cover in months. It is
// distinct from the financing provider's own installment count.
type PaymentDuration int

const (
	PaymentDuration12 PaymentDuration = 12
	PaymentDuration24 PaymentDuration = 24
	PaymentDuration36 PaymentDuration = 36
)

// Valid reports whether the duration is one of the offered terms.
func (d PaymentDuration) Valid() bool {
	return d == PaymentDuration12 || d == PaymentDuration24 || d == PaymentDuration36
}

// CustomerSnapshot is a point-in-time copy of the customer taken when the
// transaction is created. It is never mutated afterwards; a correction
// creates a new transaction.
type CustomerSnapshot struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Address   Address
}

// Address is a structured postal address.
type Address struct {
	FlatNumber     string
	BuildingName   string
	BuildingNumber string
	Street         string
	Town           string
	County         string
	Postcode       string
	Country        string
}

// VehicleSnapshot is a point-in-time copy of the vehicle being covered.
type VehicleSnapshot struct {
	Registration    string
	Make            string
	Model           string
	FuelType        string
	Transmission    string
	Mileage         int
	ManufactureYear int // 0 when not supplied
}

// Transaction is the durable record of one checkout attempt. It is the
// only bridge back to the checkout context once the browser has navigated
// away to the provider's site.
type Transaction struct {
	OrderReference   string // unique, immutable; embeds plan code and a timestamp
	PlanID           string
	PaymentDuration  PaymentDuration
	Customer         CustomerSnapshot
	Vehicle          VehicleSnapshot
	ProtectionAddons map[string]bool
	ClaimLimit       int
	DiscountCode     string
	VoluntaryExcess  int
	FinalAmount      float64 // total for the whole cover period
	Status           TransactionStatus
	RedirectTarget   string
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
