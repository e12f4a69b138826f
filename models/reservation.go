package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatusType string

const (
	ReservationStatusActive    ReservationStatusType = "ACTIVE"
	ReservationStatusExpired   ReservationStatusType = "EXPIRED"
	ReservationStatusCancelled ReservationStatusType = "CANCELLED"
)

type PaymentFrequencyType string

const (
	FrequencyMonthly   PaymentFrequencyType = "MONTHLY"
	FrequencyQuarterly PaymentFrequencyType = "QUARTERLY"
	FrequencyTriannual PaymentFrequencyType = "TRIANNUAL"
	FrequencyBiannual  PaymentFrequencyType = "BIANNUAL"
	FrequencyAnnual    PaymentFrequencyType = "ANNUAL"
)

// IntervalMonths returns the number of months between installments for the
// frequency, or 0 for an unknown value.
func (f PaymentFrequencyType) IntervalMonths() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyTriannual:
		return 4
	case FrequencyBiannual:
		return 6
	case FrequencyAnnual:
		return 12
	}
	return 0
}

type DepositStatusType string

const (
	DepositStatusUnpaid   DepositStatusType = "UNPAID"
	DepositStatusPaid     DepositStatusType = "PAID"
	DepositStatusReturned DepositStatusType = "RETURNED"
)

// Reservation is the authoritative record of who occupies a unit and for
// which interval. Never physically deleted; lifecycle is soft via Status.
type Reservation struct {
	Versioned

	ID       uuid.UUID `json:"id"`
	UnitID   uuid.UUID `json:"unit_id"`
	TenantID uuid.UUID `json:"tenant_id"`

	StartDate time.Time             `json:"start_date"`
	EndDate   time.Time             `json:"end_date"`
	Status    ReservationStatusType `json:"status"`

	PaymentFrequency PaymentFrequencyType `json:"payment_frequency"`

	IncludesDeposit      bool              `json:"includes_deposit"`
	DepositAmount        decimal.Decimal   `json:"deposit_amount"`
	DepositPaymentMethod string            `json:"deposit_payment_method,omitempty"`
	DepositStatus        DepositStatusType `json:"deposit_status"`
	DepositPaidDate      *time.Time        `json:"deposit_paid_date,omitempty"`
	DepositReturnedDate  *time.Time        `json:"deposit_returned_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) GetID() string {
	return r.ID.String()
}

// Overlaps reports whether the reservation's [StartDate, EndDate] range
// intersects [start, end], bounds inclusive.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
