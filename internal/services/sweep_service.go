package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// SweepService runs the scheduled background passes: expiring reservations
// whose end date is behind the calendar, and backfilling maintenance tickets
// the post-transition hook failed to create.
type SweepService struct {
	resRepo      repositories.ReservationRepository
	reservations *ReservationService
	tickets      maintenanceTicketEnsurer
	clock        clock.Clock
	txTimeout    time.Duration
}

func NewSweepService(
	resRepo repositories.ReservationRepository,
	reservations *ReservationService,
	tickets maintenanceTicketEnsurer,
	clk clock.Clock,
	txTimeout time.Duration,
) *SweepService {
	return &SweepService{
		resRepo:      resRepo,
		reservations: reservations,
		tickets:      tickets,
		clock:        clk,
		txTimeout:    txTimeout,
	}
}

// SweepFailure records one reservation the sweep could not expire.
type SweepFailure struct {
	ReservationID uuid.UUID
	Err           error
}

// SweepResult summarizes one expiration pass.
type SweepResult struct {
	Processed int
	Failed    []SweepFailure
}

// RunExpirationSweep expires every ACTIVE reservation whose end date is
// strictly before today. Each reservation gets its own bounded transaction,
// so one bad row cannot wedge the whole pass; failures are collected and the
// next scheduled run retries them.
func (s *SweepService) RunExpirationSweep(ctx context.Context) (*SweepResult, error) {
	today := DateOnly(s.clock.Now())

	expired, err := s.resRepo.ListExpired(ctx, today)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, res := range expired {
		txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
		_, expireErr := s.reservations.ExpireReservation(txCtx, res.ID)
		cancel()

		if expireErr != nil {
			// Already expired or cancelled by a concurrent writer counts as done.
			if expireErr == utils.ErrReservationNotActive {
				result.Processed++
				continue
			}
			utils.Logger.WithError(expireErr).Errorf("Expiration sweep failed for reservation %s", res.ID)
			result.Failed = append(result.Failed, SweepFailure{ReservationID: res.ID, Err: expireErr})
			continue
		}
		result.Processed++
	}

	utils.Logger.Infof("Expiration sweep finished: %d expired, %d failed", result.Processed, len(result.Failed))
	return result, nil
}

// RunTicketReconciliation finds active reservations on units sitting in
// MAINTENANCE without an open maintenance ticket and creates the missing
// tickets. Safety net for hook failures after an occupancy transition commit.
func (s *SweepService) RunTicketReconciliation(ctx context.Context) (int, error) {
	missing, err := s.resRepo.ListMaintenanceWithoutOpenTicket(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, res := range missing {
		_, didCreate, err := s.tickets.EnsureOpenMaintenanceTicket(ctx, res.ID, SystemActor())
		if err != nil {
			utils.Logger.WithError(err).Errorf("Ticket reconciliation failed for reservation %s", res.ID)
			continue
		}
		if didCreate {
			created++
		}
	}

	if created > 0 {
		utils.Logger.Infof("Ticket reconciliation created %d missing maintenance tickets", created)
	}
	return created, nil
}
