package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarkey/leasing-service/models"
)

// Lease dates travel as calendar days, not instants.
const DateLayout = "2006-01-02"

type CreateReservationRequest struct {
	UnitID           uuid.UUID `json:"unit_id" validate:"required"`
	TenantID         uuid.UUID `json:"tenant_id" validate:"required"`
	StartDate        string    `json:"start_date" validate:"required"`
	EndDate          string    `json:"end_date" validate:"required"`
	PaymentFrequency string    `json:"payment_frequency" validate:"required"`

	IncludesDeposit      bool            `json:"includes_deposit"`
	DepositAmount        decimal.Decimal `json:"deposit_amount"`
	DepositPaymentMethod string          `json:"deposit_payment_method"`
}

type CreateReservationResponse struct {
	Reservation  *models.Reservation  `json:"reservation"`
	Installments []models.Installment `json:"installments"`
}

type UpdateDepositStatusRequest struct {
	NewStatus string  `json:"new_status" validate:"required"`
	Date      *string `json:"date,omitempty"`
}
