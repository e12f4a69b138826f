package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBuildingRequest struct {
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address" validate:"required"`
}

type CreateUnitRequest struct {
	UnitNumber  string          `json:"unit_number" validate:"required"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"required"`
}

type UpdateUnitStatusRequest struct {
	NewStatus string    `json:"new_status" validate:"required"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
}

// UnitTransitionResponse reports the unit after a status change plus the
// maintenance ticket that was auto-created, when one was.
type UnitTransitionResponse struct {
	Unit            any        `json:"unit"`
	CreatedTicketID *uuid.UUID `json:"created_ticket_id,omitempty"`
}
