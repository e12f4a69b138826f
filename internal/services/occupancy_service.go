package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// allowedOccupancyTransitions is the closed set of legal occupancy moves.
// AVAILABLE-ward moves carry an extra active-reservation gate checked in
// TransitionUnitStatus; everything absent from the table is rejected.
var allowedOccupancyTransitions = map[models.OccupancyStatusType]map[models.OccupancyStatusType]bool{
	models.OccupancyAvailable: {
		models.OccupancyRented: true,
	},
	models.OccupancyRented: {
		models.OccupancyMaintenance: true,
		models.OccupancyAvailable:   true,
	},
	models.OccupancyMaintenance: {
		models.OccupancyRented:    true,
		models.OccupancyAvailable: true,
	},
}

// maintenanceTicketEnsurer is the post-transition hook target: entering
// MAINTENANCE with a live reservation must end up with an open maintenance
// ticket, exactly once.
type maintenanceTicketEnsurer interface {
	EnsureOpenMaintenanceTicket(ctx context.Context, reservationID uuid.UUID, actor Actor) (*models.ServiceTicket, bool, error)
}

// OccupancyService owns the unit occupancy state machine. It is the only
// writer of Unit.OccupancyStatus.
type OccupancyService struct {
	unitRepo repositories.UnitRepository
	resRepo  repositories.ReservationRepository
	tickets  maintenanceTicketEnsurer
	tx       repositories.TxRunner
	clock    clock.Clock
}

func NewOccupancyService(
	unitRepo repositories.UnitRepository,
	resRepo repositories.ReservationRepository,
	tickets maintenanceTicketEnsurer,
	tx repositories.TxRunner,
	clk clock.Clock,
) *OccupancyService {
	return &OccupancyService{
		unitRepo: unitRepo,
		resRepo:  resRepo,
		tickets:  tickets,
		tx:       tx,
		clock:    clk,
	}
}

// TransitionResult reports the unit after a transition plus the maintenance
// ticket the hook created, when it created one.
type TransitionResult struct {
	Unit            *models.Unit
	CreatedTicketID *uuid.UUID
}

// TransitionUnitStatus applies one occupancy transition.
//
//	AVAILABLE   -> RENTED       caller has already ruled out conflicts
//	RENTED      -> MAINTENANCE  unconditional; reservation stays active
//	MAINTENANCE -> RENTED       unconditional
//	MAINTENANCE -> AVAILABLE    only once no active reservation ends today or later
//	RENTED      -> AVAILABLE    only once no active reservation exists (manual
//	                            release after expiry; cancel flips it itself)
//
// Entering MAINTENANCE while an active reservation exists triggers the
// idempotent maintenance-ticket hook after commit. A hook failure is logged
// and reconciled later; it never rolls back the occupancy change.
func (s *OccupancyService) TransitionUnitStatus(
	ctx context.Context,
	unitID uuid.UUID,
	target models.OccupancyStatusType,
	actor Actor,
) (*TransitionResult, error) {
	if !models.ValidOccupancyStatus(target) {
		return nil, utils.ErrInvalidStatus
	}

	var unit *models.Unit
	var activeRes *models.Reservation

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		unit, err = s.unitRepo.GetByIDForUpdate(txCtx, unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return utils.ErrNotFound
		}

		from := unit.OccupancyStatus
		if from == target || !allowedOccupancyTransitions[from][target] {
			return utils.ErrInvalidTransition
		}

		if target == models.OccupancyAvailable {
			if err := s.checkReleasable(txCtx, unitID, from); err != nil {
				return err
			}
		}

		if target == models.OccupancyMaintenance {
			activeRes, err = s.resRepo.FindActiveByUnitID(txCtx, unitID)
			if err != nil {
				return err
			}
		}

		if err := s.unitRepo.UpdateOccupancyStatus(txCtx, unitID, target); err != nil {
			return err
		}
		unit.OccupancyStatus = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Unit: unit}

	// Post-transition hook. The occupancy change above is the authoritative
	// fact; ticket creation is best-effort with the reconciliation sweep as
	// the safety net.
	if target == models.OccupancyMaintenance && activeRes != nil {
		ticket, created, hookErr := s.tickets.EnsureOpenMaintenanceTicket(ctx, activeRes.ID, actor)
		if hookErr != nil {
			utils.Logger.WithError(hookErr).Errorf(
				"Failed to auto-create maintenance ticket for reservation %s (unit %s); reconciliation will retry",
				activeRes.ID, unitID)
			return result, nil
		}
		if created {
			result.CreatedTicketID = &ticket.ID
		}
	}

	return result, nil
}

// checkReleasable gates the two transitions into AVAILABLE on reservation
// state, so a unit can never be freed out from under a live lease.
func (s *OccupancyService) checkReleasable(ctx context.Context, unitID uuid.UUID, from models.OccupancyStatusType) error {
	switch from {
	case models.OccupancyMaintenance:
		today := DateOnly(s.clock.Now())
		blocked, err := s.resRepo.HasActiveEndingOnOrAfter(ctx, unitID, today)
		if err != nil {
			return err
		}
		if blocked {
			return utils.ErrActiveReservationExists
		}
	case models.OccupancyRented:
		active, err := s.resRepo.FindActiveByUnitID(ctx, unitID)
		if err != nil {
			return err
		}
		if active != nil {
			return utils.ErrActiveReservationExists
		}
	}
	return nil
}

// ReleaseUnit is the first-class manual release: move-out confirmation flips
// the unit back to AVAILABLE once no active reservation holds it. Expiry on
// purpose does not do this automatically.
func (s *OccupancyService) ReleaseUnit(ctx context.Context, unitID uuid.UUID, actor Actor) (*models.Unit, error) {
	result, err := s.TransitionUnitStatus(ctx, unitID, models.OccupancyAvailable, actor)
	if err != nil {
		return nil, err
	}
	return result.Unit, nil
}
