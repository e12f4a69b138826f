package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// DepositService tracks a reservation's security-deposit lifecycle:
// UNPAID -> PAID -> RETURNED, with a reset path back to UNPAID.
type DepositService struct {
	resRepo repositories.ReservationRepository
	clock   clock.Clock
}

func NewDepositService(resRepo repositories.ReservationRepository, clk clock.Clock) *DepositService {
	return &DepositService{resRepo: resRepo, clock: clk}
}

// UpdateDepositStatus drives the deposit state machine. A nil date defaults
// to today. Returning a deposit that was never collected is rejected.
func (s *DepositService) UpdateDepositStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	newStatus models.DepositStatusType,
	date *time.Time,
) (*models.Reservation, error) {
	effective := s.clock.Now()
	if date != nil {
		effective = *date
	}

	err := s.resRepo.UpdateWithRetry(ctx, reservationID, func(res *models.Reservation) error {
		if !res.IncludesDeposit {
			return utils.ErrDepositNotIncluded
		}
		switch newStatus {
		case models.DepositStatusPaid:
			if res.DepositStatus != models.DepositStatusUnpaid {
				return utils.ErrInvalidTransition
			}
			res.DepositStatus = models.DepositStatusPaid
			res.DepositPaidDate = &effective
			res.DepositReturnedDate = nil
		case models.DepositStatusReturned:
			if res.DepositStatus != models.DepositStatusPaid {
				return utils.ErrInvalidTransition
			}
			res.DepositStatus = models.DepositStatusReturned
			res.DepositReturnedDate = &effective
		case models.DepositStatusUnpaid:
			res.DepositStatus = models.DepositStatusUnpaid
			res.DepositPaidDate = nil
			res.DepositReturnedDate = nil
		default:
			return utils.ErrInvalidStatus
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.resRepo.GetByID(ctx, reservationID)
}
