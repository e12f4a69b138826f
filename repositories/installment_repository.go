package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

/* ───────────── public interface ───────────── */

type InstallmentRepository interface {
	// CreateMany persists a generated schedule in one batch. Runs inside the
	// reservation-create transaction so the batch is all-or-nothing.
	CreateMany(ctx context.Context, list []models.Installment) error

	ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.Installment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InstallmentStatusType) error
	// CancelOpenByReservationID flips every PENDING or DELAYED installment of
	// the reservation to CANCELLED. Paid rows are left untouched.
	CancelOpenByReservationID(ctx context.Context, resID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type installmentRepo struct {
	db DB
}

func NewInstallmentRepository(db DB) InstallmentRepository {
	return &installmentRepo{db: db}
}

func (r *installmentRepo) CreateMany(ctx context.Context, list []models.Installment) error {
	for i := range list {
		inst := &list[i]
		_, err := executor(ctx, r.db).Exec(ctx, `
			INSERT INTO installments (
				id, reservation_id, amount, due_date, status,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
		`, inst.ID, inst.ReservationID, inst.Amount, inst.DueDate, inst.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *installmentRepo) ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.Installment, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT id, reservation_id, amount, due_date, status, created_at, updated_at
		FROM installments
		WHERE reservation_id=$1
		ORDER BY due_date
	`, resID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Installment
	for rows.Next() {
		var inst models.Installment
		if err := rows.Scan(
			&inst.ID, &inst.ReservationID, &inst.Amount,
			&inst.DueDate, &inst.Status, &inst.CreatedAt, &inst.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &inst)
	}
	return out, rows.Err()
}

func (r *installmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InstallmentStatusType) error {
	tag, err := executor(ctx, r.db).Exec(ctx, `
		UPDATE installments SET status=$1, updated_at=NOW() WHERE id=$2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *installmentRepo) CancelOpenByReservationID(ctx context.Context, resID uuid.UUID) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		UPDATE installments
		SET status=$1, updated_at=NOW()
		WHERE reservation_id=$2 AND status IN ($3, $4)
	`, models.InstallmentStatusCancelled, resID,
		models.InstallmentStatusPending, models.InstallmentStatusDelayed)
	return err
}
