package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// ReservationService creates, cancels, and expires reservations. Creation
// and cancellation are atomic across the reservation row, the unit's
// occupancy, and the installment batch.
type ReservationService struct {
	resRepo  repositories.ReservationRepository
	unitRepo repositories.UnitRepository
	instRepo repositories.InstallmentRepository
	tx       repositories.TxRunner
	clock    clock.Clock
}

func NewReservationService(
	resRepo repositories.ReservationRepository,
	unitRepo repositories.UnitRepository,
	instRepo repositories.InstallmentRepository,
	tx repositories.TxRunner,
	clk clock.Clock,
) *ReservationService {
	return &ReservationService{
		resRepo:  resRepo,
		unitRepo: unitRepo,
		instRepo: instRepo,
		tx:       tx,
		clock:    clk,
	}
}

type CreateReservationInput struct {
	UnitID           uuid.UUID
	TenantID         uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	PaymentFrequency models.PaymentFrequencyType

	IncludesDeposit      bool
	DepositAmount        decimal.Decimal
	DepositPaymentMethod string
}

type CreateReservationOutput struct {
	Reservation  *models.Reservation
	Installments []models.Installment
}

// CreateReservation inserts the reservation, flips the unit to RENTED, and
// persists the generated installment schedule in one transaction. The
// unit row is locked before the overlap check, so two concurrent creates on
// the same unit serialize and the loser sees the winner's reservation.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationOutput, error) {
	start := DateOnly(in.StartDate)
	end := DateOnly(in.EndDate)
	if !start.Before(end) {
		return nil, utils.ErrInvalidDateRange
	}
	if in.PaymentFrequency.IntervalMonths() == 0 {
		return nil, utils.ErrInvalidFrequency
	}

	var out CreateReservationOutput

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		unit, err := s.unitRepo.GetByIDForUpdate(txCtx, in.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return utils.ErrNotFound
		}
		if unit.OccupancyStatus != models.OccupancyAvailable {
			return utils.ErrUnitNotAvailable
		}

		overlapping, err := s.resRepo.ListActiveOverlapping(txCtx, in.UnitID, start, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return utils.ErrOverlappingReservation
		}

		res := &models.Reservation{
			ID:               uuid.New(),
			UnitID:           in.UnitID,
			TenantID:         in.TenantID,
			StartDate:        start,
			EndDate:          end,
			Status:           models.ReservationStatusActive,
			PaymentFrequency: in.PaymentFrequency,

			IncludesDeposit:      in.IncludesDeposit,
			DepositAmount:        in.DepositAmount,
			DepositPaymentMethod: in.DepositPaymentMethod,
			DepositStatus:        models.DepositStatusUnpaid,
		}

		installments, err := GenerateInstallments(res.ID, start, end, unit.MonthlyRate, in.PaymentFrequency)
		if err != nil {
			return err
		}

		if err := s.resRepo.Create(txCtx, res); err != nil {
			return err
		}
		if err := s.instRepo.CreateMany(txCtx, installments); err != nil {
			return err
		}
		if err := s.unitRepo.UpdateOccupancyStatus(txCtx, in.UnitID, models.OccupancyRented); err != nil {
			return err
		}

		out.Reservation = res
		out.Installments = installments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelReservation sets the reservation CANCELLED, cancels its open
// installments, and frees the unit when this reservation is what kept it
// RENTED. One transaction; partial application is never observable.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	var cancelled *models.Reservation

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.resRepo.GetByID(txCtx, reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return utils.ErrNotFound
		}
		if res.Status != models.ReservationStatusActive {
			return utils.ErrReservationNotActive
		}

		unit, err := s.unitRepo.GetByIDForUpdate(txCtx, res.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return utils.ErrNotFound
		}

		if err := s.resRepo.UpdateStatus(txCtx, res.ID, models.ReservationStatusCancelled); err != nil {
			return err
		}
		if err := s.instRepo.CancelOpenByReservationID(txCtx, res.ID); err != nil {
			return err
		}
		if unit.OccupancyStatus == models.OccupancyRented {
			if err := s.unitRepo.UpdateOccupancyStatus(txCtx, res.UnitID, models.OccupancyAvailable); err != nil {
				return err
			}
		}

		res.Status = models.ReservationStatusCancelled
		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ExpireReservation sets the reservation EXPIRED. The unit deliberately
// stays RENTED: physical move-out confirmation gates availability, not
// calendar expiry. ReleaseUnit is the manual follow-up.
func (s *ReservationService) ExpireReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	var expired *models.Reservation

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.resRepo.GetByID(txCtx, reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return utils.ErrNotFound
		}
		if res.Status != models.ReservationStatusActive {
			return utils.ErrReservationNotActive
		}

		if err := s.resRepo.UpdateStatus(txCtx, res.ID, models.ReservationStatusExpired); err != nil {
			return err
		}
		res.Status = models.ReservationStatusExpired
		expired = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// GetReservation loads one reservation.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	res, err := s.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, utils.ErrNotFound
	}
	return res, nil
}

// ListByUnit returns the unit's reservations, newest interval last.
func (s *ReservationService) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*models.Reservation, error) {
	return s.resRepo.ListByUnitID(ctx, unitID)
}

// ListInstallments returns a reservation's schedule ordered by due date.
func (s *ReservationService) ListInstallments(ctx context.Context, reservationID uuid.UUID) ([]*models.Installment, error) {
	return s.instRepo.ListByReservationID(ctx, reservationID)
}
