package entity

import (
	"github.com/google/uuid"
)

// Payable is anything a payment can be recorded against.
type Payable interface {
	PaymentReferenceID() uuid.UUID
	PayableType() string
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentProvider string

const (
	PaymentProviderCash PaymentProvider = "cash"
	PaymentProviderCard PaymentProvider = "card"
)

type Payment struct {
	Base
	PayableID     uuid.UUID       `db:"payable_id"`
	PayableType   string          `db:"payable_type"`
	Provider      PaymentProvider `db:"provider_name"`
	Value         int64           `db:"value"`
	Status        PaymentStatus   `db:"status"`
	TransactionID *string         `db:"provider_transaction_id"`
}
