package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/utils"
)

func TestCreateTicketRequiresReservation(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))

	_, err := env.tickets.CreateTicket(context.Background(), uuid.New(), models.TicketTypeFinancial, "late payment", staffActor())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateTicketRejectsUnknownType(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	_, err := env.tickets.CreateTicket(context.Background(), out.Reservation.ID, models.TicketType("PLUMBING"), "", staffActor())
	require.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestTicketStatusHappyPath(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	actor := staffActor()
	ticket, err := env.tickets.CreateTicket(context.Background(), out.Reservation.ID, models.TicketTypeMaintenance, "leaking faucet", actor)
	require.NoError(t, err)
	require.Equal(t, models.TicketStatusPending, ticket.Status)
	require.Len(t, ticket.History, 1)

	ticket, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusInProgress, actor)
	require.NoError(t, err)
	require.Equal(t, models.TicketStatusInProgress, ticket.Status)

	ticket, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusCompleted, actor)
	require.NoError(t, err)
	require.Equal(t, models.TicketStatusCompleted, ticket.Status)
	require.Len(t, ticket.History, 3)
	require.Equal(t, actor.ID, ticket.History[2].ActorID)
	require.Equal(t, day(2024, 3, 1), ticket.History[2].Timestamp)
}

func TestTicketStatusRejectsIllegalMoves(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	actor := staffActor()
	ticket, err := env.tickets.CreateTicket(context.Background(), out.Reservation.ID, models.TicketTypeMaintenance, "", actor)
	require.NoError(t, err)

	// Skipping straight to completed is not an allowed pair.
	_, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusCompleted, actor)
	require.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusType("ARCHIVED"), actor)
	require.ErrorIs(t, err, utils.ErrInvalidStatus)

	ticket, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusInProgress, actor)
	require.NoError(t, err)

	// No regression back to pending.
	_, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusPending, actor)
	require.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusRejected, actor)
	require.NoError(t, err)

	// Terminal states admit nothing further.
	_, err = env.tickets.TransitionStatus(context.Background(), ticket.ID, models.TicketStatusInProgress, actor)
	require.ErrorIs(t, err, utils.ErrTicketTerminal)
}

func TestTicketStatusUnknownTicket(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))

	_, err := env.tickets.TransitionStatus(context.Background(), uuid.New(), models.TicketStatusInProgress, staffActor())
	require.ErrorIs(t, err, utils.ErrNotFound)
}
