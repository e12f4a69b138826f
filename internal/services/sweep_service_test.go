package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cedarkey/leasing-service/models"
)

func TestExpirationSweepExpiresPastReservations(t *testing.T) {
	env := newTestEnv(day(2024, 7, 15))

	endedUnit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	ended := env.createReservation(t, endedUnit.ID, day(2024, 1, 1), day(2024, 7, 1))

	runningUnit := env.seedUnit(t, models.OccupancyAvailable, 1200)
	running := env.createReservation(t, runningUnit.ID, day(2024, 2, 1), day(2024, 12, 1))

	// Ends exactly today; strictly-before cutoff leaves it alone.
	edgeUnit := env.seedUnit(t, models.OccupancyAvailable, 900)
	edge := env.createReservation(t, edgeUnit.ID, day(2024, 1, 15), day(2024, 7, 15))

	result, err := env.sweep.RunExpirationSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Processed)
	require.Empty(t, result.Failed)

	expired, err := env.reservations.GetReservation(context.Background(), ended.Reservation.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReservationStatusExpired, expired.Status)

	// Expiry never frees the unit.
	unit, err := env.unitRepo.GetByID(context.Background(), endedUnit.ID)
	require.NoError(t, err)
	require.Equal(t, models.OccupancyRented, unit.OccupancyStatus)

	stillActive, err := env.reservations.GetReservation(context.Background(), running.Reservation.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReservationStatusActive, stillActive.Status)

	edgeRes, err := env.reservations.GetReservation(context.Background(), edge.Reservation.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReservationStatusActive, edgeRes.Status)
}

func TestExpirationSweepIsIdempotent(t *testing.T) {
	env := newTestEnv(day(2024, 7, 15))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	first, err := env.sweep.RunExpirationSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Processed)

	second, err := env.sweep.RunExpirationSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, second.Processed)
	require.Empty(t, second.Failed)
}

func TestTicketReconciliationBackfillsMissingTickets(t *testing.T) {
	env := newTestEnv(day(2024, 3, 1))
	unit := env.seedUnit(t, models.OccupancyAvailable, 1000)
	out := env.createReservation(t, unit.ID, day(2024, 1, 1), day(2024, 7, 1))

	// Unit moved to maintenance behind the service's back, so no ticket was
	// hooked in. The reconciliation pass must backfill it.
	require.NoError(t, env.unitRepo.UpdateOccupancyStatus(context.Background(), unit.ID, models.OccupancyMaintenance))

	created, err := env.sweep.RunTicketReconciliation(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, created)

	tickets, err := env.tickets.ListByReservation(context.Background(), out.Reservation.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.Equal(t, models.TicketTypeMaintenance, tickets[0].Type)
	require.Equal(t, "SYSTEM", tickets[0].History[0].ActorRole)

	// Nothing left to backfill on a second pass.
	created, err = env.sweep.RunTicketReconciliation(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, created)
}
