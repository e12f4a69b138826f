package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/utils"
)

// GenerateInstallments produces the full billing schedule for a lease
// interval. Pure function: no persistence, no clock.
//
// The schedule divides rate×months evenly across ceil(months/interval)
// installments, each rounded to 2 decimals; the rounding remainder is folded
// into the last installment so the amounts always sum to exactly
// round2(rate × months).
func GenerateInstallments(
	reservationID uuid.UUID,
	startDate, endDate time.Time,
	monthlyRate decimal.Decimal,
	frequency models.PaymentFrequencyType,
) ([]models.Installment, error) {
	if !startDate.Before(endDate) {
		return nil, utils.ErrInvalidDateRange
	}
	interval := frequency.IntervalMonths()
	if interval == 0 {
		return nil, utils.ErrInvalidFrequency
	}

	durationMonths := WholeMonthsBetween(startDate, endDate)
	if durationMonths < 1 {
		return nil, utils.ErrInvalidDateRange
	}

	totalAmount := monthlyRate.Mul(decimal.NewFromInt(int64(durationMonths))).Round(2)
	count := (durationMonths + interval - 1) / interval
	perAmount := totalAmount.Div(decimal.NewFromInt(int64(count))).Round(2)

	out := make([]models.Installment, 0, count)
	due := startDate
	for i := 0; i < count; i++ {
		amount := perAmount
		if i == count-1 {
			// Fold the rounding residue into the final installment so the
			// schedule sums to the exact total.
			amount = totalAmount.Sub(perAmount.Mul(decimal.NewFromInt(int64(count - 1))))
		}
		out = append(out, models.Installment{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Amount:        amount,
			DueDate:       due,
			Status:        models.InstallmentStatusPending,
		})
		due = due.AddDate(0, interval, 0)
	}
	return out, nil
}
