package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/utils"
)

func staffActor() Actor {
	return Actor{ID: uuid.New(), Role: "MANAGER"}
}

func TestEnterMaintenanceAutoCreatesTicket(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	result, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.NoError(t, err)
	require.Equal(t, models.OccupancyMaintenance, result.Unit.OccupancyStatus)
	require.NotNil(t, result.CreatedTicketID)

	ticket, err := env.tickets.GetTicket(context.Background(), *result.CreatedTicketID)
	require.NoError(t, err)
	require.Equal(t, models.TicketTypeMaintenance, ticket.Type)
	require.Equal(t, models.TicketStatusPending, ticket.Status)
	require.Equal(t, out.Reservation.ID, ticket.ReservationID)
	require.Len(t, ticket.History, 1)
}

func TestEnterMaintenanceTicketIsIdempotent(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	first, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.NoError(t, err)
	require.NotNil(t, first.CreatedTicketID)

	// Bounce back to rented and into maintenance again while the first
	// ticket is still open: no duplicate.
	_, err = env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyRented, staffActor())
	require.NoError(t, err)
	second, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.NoError(t, err)
	require.Nil(t, second.CreatedTicketID)

	tickets, err := env.tickets.ListByReservation(context.Background(), out.Reservation.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}

func TestEnterMaintenanceWithoutReservationCreatesNoTicket(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyRented, 1000)

	result, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.NoError(t, err)
	require.Nil(t, result.CreatedTicketID)
}

func TestMaintenanceToAvailableBlockedByActiveReservation(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	_, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.NoError(t, err)

	_, err = env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyAvailable, staffActor())
	require.ErrorIs(t, err, utils.ErrActiveReservationExists)

	// Once the reservation is no longer active the unit can be freed.
	_, err = env.reservations.CancelReservation(context.Background(), out.Reservation.ID)
	require.NoError(t, err)
	result, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyAvailable, staffActor())
	require.NoError(t, err)
	require.Equal(t, models.OccupancyAvailable, result.Unit.OccupancyStatus)
}

func TestReleaseUnitAfterExpiry(t *testing.T) {
	env := newTestEnv(day(2024, 8, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	// While the reservation is active the unit cannot be released.
	_, err := env.occupancy.ReleaseUnit(context.Background(), unit.ID, staffActor())
	require.ErrorIs(t, err, utils.ErrActiveReservationExists)

	_, err = env.reservations.ExpireReservation(context.Background(), out.Reservation.ID)
	require.NoError(t, err)

	released, err := env.occupancy.ReleaseUnit(context.Background(), unit.ID, staffActor())
	require.NoError(t, err)
	require.Equal(t, models.OccupancyAvailable, released.OccupancyStatus)
}

func TestOccupancyTransitionRejectsInvalidMoves(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)

	_, err := env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyAvailable, staffActor())
	require.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyMaintenance, staffActor())
	require.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = env.occupancy.TransitionUnitStatus(context.Background(), unit.ID, models.OccupancyStatusType("DEMOLISHED"), staffActor())
	require.ErrorIs(t, err, utils.ErrInvalidStatus)

	_, err = env.occupancy.TransitionUnitStatus(context.Background(), uuid.New(), models.OccupancyRented, staffActor())
	require.ErrorIs(t, err, utils.ErrNotFound)
}
