package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// TicketService validates and applies service-ticket status transitions and
// owns the append-only history log.
type TicketService struct {
	ticketRepo repositories.ServiceTicketRepository
	resRepo    repositories.ReservationRepository
	clock      clock.Clock
}

func NewTicketService(
	ticketRepo repositories.ServiceTicketRepository,
	resRepo repositories.ReservationRepository,
	clk clock.Clock,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		resRepo:    resRepo,
		clock:      clk,
	}
}

// CreateTicket opens a new ticket for a reservation, with the initial
// PENDING entry already in the history.
func (s *TicketService) CreateTicket(
	ctx context.Context,
	reservationID uuid.UUID,
	ticketType models.TicketType,
	description string,
	actor Actor,
) (*models.ServiceTicket, error) {
	if !models.ValidTicketType(ticketType) {
		return nil, utils.ErrInvalidStatus
	}
	res, err := s.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, utils.ErrNotFound
	}

	ticket := s.newTicket(reservationID, ticketType, description, actor)
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// EnsureOpenMaintenanceTicket returns the reservation's open maintenance
// ticket, creating one when none exists. Idempotent: calling it repeatedly
// while a PENDING or IN_PROGRESS ticket is open never creates a duplicate.
func (s *TicketService) EnsureOpenMaintenanceTicket(
	ctx context.Context,
	reservationID uuid.UUID,
	actor Actor,
) (*models.ServiceTicket, bool, error) {
	existing, err := s.ticketRepo.FindOpenMaintenance(ctx, reservationID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	ticket := s.newTicket(reservationID, models.TicketTypeMaintenance,
		"Auto-created: unit entered maintenance", actor)
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, false, err
	}
	return ticket, true, nil
}

// TransitionStatus applies one status change. Rejected when the target is a
// priority regression, the current state is terminal, or the (from, to) pair
// is not in the allowed set. On success the change is appended to history.
func (s *TicketService) TransitionStatus(
	ctx context.Context,
	ticketID uuid.UUID,
	newStatus models.TicketStatusType,
	actor Actor,
) (*models.ServiceTicket, error) {
	if newStatus.Priority() == 0 {
		return nil, utils.ErrInvalidStatus
	}

	err := s.ticketRepo.UpdateWithRetry(ctx, ticketID, func(t *models.ServiceTicket) error {
		if t.Status.Terminal() {
			return utils.ErrTicketTerminal
		}
		if newStatus.Priority() < t.Status.Priority() {
			return utils.ErrInvalidTransition
		}
		if !t.Status.CanTransitionTo(newStatus) {
			return utils.ErrInvalidTransition
		}
		t.Status = newStatus
		t.History = append(t.History, models.TicketHistoryEntry{
			Status:    newStatus,
			Timestamp: s.clock.Now(),
			ActorID:   actor.ID,
			ActorRole: actor.Role,
		})
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// GetTicket loads one ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID uuid.UUID) (*models.ServiceTicket, error) {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrNotFound
	}
	return t, nil
}

// ListByReservation returns every ticket linked to the reservation,
// including ones that outlived a cancellation.
func (s *TicketService) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*models.ServiceTicket, error) {
	return s.ticketRepo.ListByReservationID(ctx, reservationID)
}

func (s *TicketService) newTicket(
	reservationID uuid.UUID,
	ticketType models.TicketType,
	description string,
	actor Actor,
) *models.ServiceTicket {
	now := s.clock.Now()
	return &models.ServiceTicket{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Type:          ticketType,
		Status:        models.TicketStatusPending,
		Description:   description,
		History: []models.TicketHistoryEntry{{
			Status:    models.TicketStatusPending,
			Timestamp: now,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
		}},
	}
}
