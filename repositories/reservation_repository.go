package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

/* ───────────── public interface ───────────── */

type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Reservation, error)
	// ListActiveOverlapping returns active reservations on the unit whose
	// [start_date, end_date] intersects [start, end], bounds inclusive.
	ListActiveOverlapping(ctx context.Context, unitID uuid.UUID, start, end time.Time) ([]*models.Reservation, error)
	// HasActiveEndingOnOrAfter reports whether the unit carries an active
	// reservation whose end date is >= the given day.
	HasActiveEndingOnOrAfter(ctx context.Context, unitID uuid.UUID, day time.Time) (bool, error)
	// FindActiveByUnitID returns the unit's single active reservation, if any.
	FindActiveByUnitID(ctx context.Context, unitID uuid.UUID) (*models.Reservation, error)
	// ListExpired returns active reservations whose end date is before the
	// given day; the expiration sweep feeds on it.
	ListExpired(ctx context.Context, day time.Time) ([]*models.Reservation, error)
	// ListMaintenanceWithoutOpenTicket returns active reservations on units
	// in MAINTENANCE that have no open maintenance ticket. Reconciliation
	// path for lost auto-ticket side effects.
	ListMaintenanceWithoutOpenTicket(ctx context.Context) ([]*models.Reservation, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatusType) error
	UpdateIfVersion(ctx context.Context, res *models.Reservation, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Reservation) error) error
}

/* ───────────── implementation ───────────── */

type reservationRepo struct {
	*BaseVersionedRepo[*models.Reservation]
	db DB
}

func NewReservationRepository(db DB) ReservationRepository {
	r := &reservationRepo{db: db}
	selectStmt := baseSelectReservation() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanReservation)
	return r
}

/* ---------- create ---------- */

func (r *reservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO reservations (
			id, unit_id, tenant_id, start_date, end_date, status,
			payment_frequency, includes_deposit, deposit_amount,
			deposit_payment_method, deposit_status,
			deposit_paid_date, deposit_returned_date,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, NOW(), NOW(), 1)
	`,
		res.ID, res.UnitID, res.TenantID,
		res.StartDate, res.EndDate, res.Status,
		res.PaymentFrequency, res.IncludesDeposit, res.DepositAmount,
		res.DepositPaymentMethod, res.DepositStatus,
		res.DepositPaidDate, res.DepositReturnedDate,
	)
	return err
}

/* ---------- reads ---------- */

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *reservationRepo) ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Reservation, error) {
	rows, err := executor(ctx, r.db).Query(ctx,
		baseSelectReservation()+" WHERE unit_id=$1 ORDER BY start_date", unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanReservations(rows)
}

func (r *reservationRepo) ListActiveOverlapping(ctx context.Context, unitID uuid.UUID, start, end time.Time) ([]*models.Reservation, error) {
	rows, err := executor(ctx, r.db).Query(ctx, baseSelectReservation()+`
		WHERE unit_id=$1 AND status=$2
		  AND start_date <= $3 AND end_date >= $4
	`, unitID, models.ReservationStatusActive, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanReservations(rows)
}

func (r *reservationRepo) HasActiveEndingOnOrAfter(ctx context.Context, unitID uuid.UUID, day time.Time) (bool, error) {
	var exists bool
	err := executor(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE unit_id=$1 AND status=$2 AND end_date >= $3
		)
	`, unitID, models.ReservationStatusActive, day).Scan(&exists)
	return exists, err
}

func (r *reservationRepo) FindActiveByUnitID(ctx context.Context, unitID uuid.UUID) (*models.Reservation, error) {
	row := executor(ctx, r.db).QueryRow(ctx,
		baseSelectReservation()+" WHERE unit_id=$1 AND status=$2 LIMIT 1",
		unitID, models.ReservationStatusActive)
	return r.scanReservation(row)
}

func (r *reservationRepo) ListExpired(ctx context.Context, day time.Time) ([]*models.Reservation, error) {
	rows, err := executor(ctx, r.db).Query(ctx,
		baseSelectReservation()+" WHERE status=$1 AND end_date < $2 ORDER BY end_date",
		models.ReservationStatusActive, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanReservations(rows)
}

func (r *reservationRepo) ListMaintenanceWithoutOpenTicket(ctx context.Context) ([]*models.Reservation, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT `+reservationColumns()+`
		FROM reservations res
		JOIN units u ON u.id = res.unit_id
		WHERE res.status=$1
		  AND u.occupancy_status=$2
		  AND NOT EXISTS (
			SELECT 1 FROM service_tickets t
			WHERE t.reservation_id = res.id
			  AND t.type = $3
			  AND t.status IN ($4, $5)
		  )
	`,
		models.ReservationStatusActive,
		models.OccupancyMaintenance,
		models.TicketTypeMaintenance,
		models.TicketStatusPending, models.TicketStatusInProgress,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanReservations(rows)
}

/* ---------- updates ---------- */

func (r *reservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatusType) error {
	tag, err := executor(ctx, r.db).Exec(ctx, `
		UPDATE reservations
		SET status=$1, updated_at=NOW(), row_version=row_version+1
		WHERE id=$2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepo) UpdateIfVersion(ctx context.Context, res *models.Reservation, expected int64) (pgconn.CommandTag, error) {
	return executor(ctx, r.db).Exec(ctx, `
		UPDATE reservations
		SET status=$1, deposit_status=$2, deposit_paid_date=$3,
		    deposit_returned_date=$4, updated_at=NOW(), row_version=row_version+1
		WHERE id=$5 AND row_version=$6
	`,
		res.Status, res.DepositStatus, res.DepositPaidDate,
		res.DepositReturnedDate, res.ID, expected,
	)
}

func (r *reservationRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Reservation) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

/* ---------- internals ---------- */

func reservationColumns() string {
	return `res.id, res.unit_id, res.tenant_id, res.start_date, res.end_date,
		res.status, res.payment_frequency, res.includes_deposit,
		res.deposit_amount, res.deposit_payment_method, res.deposit_status,
		res.deposit_paid_date, res.deposit_returned_date,
		res.created_at, res.updated_at, res.row_version`
}

func baseSelectReservation() string {
	return `SELECT ` + reservationColumns() + ` FROM reservations res`
}

func (r *reservationRepo) scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	var method *string
	if err := row.Scan(
		&res.ID, &res.UnitID, &res.TenantID, &res.StartDate, &res.EndDate,
		&res.Status, &res.PaymentFrequency, &res.IncludesDeposit,
		&res.DepositAmount, &method, &res.DepositStatus,
		&res.DepositPaidDate, &res.DepositReturnedDate,
		&res.CreatedAt, &res.UpdatedAt, &res.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if method != nil {
		res.DepositPaymentMethod = *method
	}
	return &res, nil
}

func (r *reservationRepo) scanReservations(rows pgx.Rows) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
