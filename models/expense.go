package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResponsiblePartyType string

const (
	ResponsibleOwner  ResponsiblePartyType = "OWNER"
	ResponsibleTenant ResponsiblePartyType = "TENANT"
)

// Expense tags who pays for work on a building, optionally pinned to a
// specific unit and service ticket. Consumer-boundary entity only; the
// lifecycle core just writes the linkage flag on the ticket.
type Expense struct {
	ID               uuid.UUID            `json:"id"`
	BuildingID       uuid.UUID            `json:"building_id"`
	UnitID           *uuid.UUID           `json:"unit_id,omitempty"`
	ServiceTicketID  *uuid.UUID           `json:"service_ticket_id,omitempty"`
	Amount           decimal.Decimal      `json:"amount"`
	ResponsibleParty ResponsiblePartyType `json:"responsible_party"`
	Description      string               `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
