package models

import (
	"time"

	"github.com/google/uuid"
)

type TicketType string

const (
	TicketTypeFinancial      TicketType = "FINANCIAL"
	TicketTypeMaintenance    TicketType = "MAINTENANCE"
	TicketTypeAdministrative TicketType = "ADMINISTRATIVE"
)

// ValidTicketType reports whether t is one of the closed ticket types.
func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketTypeFinancial, TicketTypeMaintenance, TicketTypeAdministrative:
		return true
	}
	return false
}

type TicketStatusType string

const (
	TicketStatusPending    TicketStatusType = "PENDING"
	TicketStatusInProgress TicketStatusType = "IN_PROGRESS"
	TicketStatusCompleted  TicketStatusType = "COMPLETED"
	TicketStatusRejected   TicketStatusType = "REJECTED"
)

// ticketStatusPriority orders statuses so transitions can never regress.
// Completed and rejected share the top rank; both are terminal.
var ticketStatusPriority = map[TicketStatusType]int{
	TicketStatusPending:    1,
	TicketStatusInProgress: 2,
	TicketStatusCompleted:  3,
	TicketStatusRejected:   3,
}

// allowedTicketTransitions is the closed set of legal (from, to) pairs.
var allowedTicketTransitions = map[TicketStatusType][]TicketStatusType{
	TicketStatusPending:    {TicketStatusInProgress, TicketStatusRejected},
	TicketStatusInProgress: {TicketStatusCompleted, TicketStatusRejected},
}

// Priority returns the numeric rank of s, or 0 for an unknown value.
func (s TicketStatusType) Priority() int {
	return ticketStatusPriority[s]
}

// Terminal reports whether s admits no further transitions.
func (s TicketStatusType) Terminal() bool {
	return s == TicketStatusCompleted || s == TicketStatusRejected
}

// CanTransitionTo reports whether s -> target is in the allowed set.
func (s TicketStatusType) CanTransitionTo(target TicketStatusType) bool {
	for _, t := range allowedTicketTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TicketHistoryEntry is one append-only audit record on a ticket. The full
// trail is reconstructable from the history; entries are never rewritten.
type TicketHistoryEntry struct {
	Status    TicketStatusType `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	ActorID   uuid.UUID        `json:"actor_id"`
	ActorRole string           `json:"actor_role,omitempty"`
}

// ServiceTicket tracks a maintenance, financial, or administrative request
// tied to a reservation. The link is a back-reference, not ownership: a
// ticket may outlive a cancelled reservation for record-keeping.
type ServiceTicket struct {
	Versioned

	ID            uuid.UUID        `json:"id"`
	ReservationID uuid.UUID        `json:"reservation_id"`
	Type          TicketType       `json:"type"`
	Status        TicketStatusType `json:"status"`
	Description   string           `json:"description,omitempty"`

	History []TicketHistoryEntry `json:"history"`

	IsExpenseCreated bool `json:"is_expense_created"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *ServiceTicket) GetID() string {
	return t.ID.String()
}

// Open reports whether the ticket still needs attention (pending or
// in-progress). Used by the idempotent maintenance auto-create.
func (t *ServiceTicket) Open() bool {
	return t.Status == TicketStatusPending || t.Status == TicketStatusInProgress
}
