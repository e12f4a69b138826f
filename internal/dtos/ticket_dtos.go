package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTicketRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" validate:"required"`
	Type          string    `json:"type" validate:"required"`
	Description   string    `json:"description"`
	ActorID       uuid.UUID `json:"actor_id"`
	ActorRole     string    `json:"actor_role"`
}

type UpdateTicketStatusRequest struct {
	NewStatus string    `json:"new_status" validate:"required"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
}

type CreateExpenseFromTicketRequest struct {
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	ResponsibleParty string          `json:"responsible_party" validate:"required"`
	Description      string          `json:"description"`
}

type CreateExpenseRequest struct {
	UnitID           *uuid.UUID      `json:"unit_id,omitempty"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	ResponsibleParty string          `json:"responsible_party" validate:"required"`
	Description      string          `json:"description"`
}
