package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InstallmentStatusType string

const (
	InstallmentStatusPending   InstallmentStatusType = "PENDING"
	InstallmentStatusPaid      InstallmentStatusType = "PAID"
	InstallmentStatusDelayed   InstallmentStatusType = "DELAYED"
	InstallmentStatusCancelled InstallmentStatusType = "CANCELLED"
)

// Installment is one scheduled payment within a reservation's billing
// obligation. The schedule is generated once at reservation creation and
// never regenerated; only the status of individual rows changes.
type Installment struct {
	ID            uuid.UUID             `json:"id"`
	ReservationID uuid.UUID             `json:"reservation_id"`
	Amount        decimal.Decimal       `json:"amount"`
	DueDate       time.Time             `json:"due_date"`
	Status        InstallmentStatusType `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
