package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	// GetByIDForUpdate takes a row lock on the unit; only meaningful inside
	// a transaction. Reservation creation serializes per-unit through it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error)
	// ListInMaintenance returns every unit whose occupancy is MAINTENANCE,
	// for the ticket reconciliation sweep.
	ListInMaintenance(ctx context.Context) ([]*models.Unit, error)

	UpdateOccupancyStatus(ctx context.Context, id uuid.UUID, status models.OccupancyStatusType) error
	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	selectStmt := baseSelectUnit() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanUnit)
	return r
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO units (
			id, building_id, company_id, unit_number, monthly_rate,
			occupancy_status, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
	`, u.ID, u.BuildingID, u.CompanyID, u.UnitNumber, u.MonthlyRate, u.OccupancyStatus)
	return err
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *unitRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := executor(ctx, r.db).QueryRow(ctx, baseSelectUnit()+" WHERE id=$1 FOR UPDATE", id)
	return r.scanUnit(row)
}

func (r *unitRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error) {
	rows, err := executor(ctx, r.db).Query(ctx, baseSelectUnit()+" WHERE building_id=$1 ORDER BY unit_number", bldgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

func (r *unitRepo) ListInMaintenance(ctx context.Context) ([]*models.Unit, error) {
	rows, err := executor(ctx, r.db).Query(ctx, baseSelectUnit()+" WHERE occupancy_status=$1", models.OccupancyMaintenance)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

/* ---------- updates ---------- */

func (r *unitRepo) UpdateOccupancyStatus(ctx context.Context, id uuid.UUID, status models.OccupancyStatusType) error {
	tag, err := executor(ctx, r.db).Exec(ctx, `
		UPDATE units
		SET occupancy_status=$1, updated_at=NOW(), row_version=row_version+1
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

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return executor(ctx, r.db).Exec(ctx, `
		UPDATE units
		SET unit_number=$1, monthly_rate=$2, occupancy_status=$3,
		    updated_at=NOW(), row_version=row_version+1
		WHERE id=$4 AND row_version=$5
	`, u.UnitNumber, u.MonthlyRate, u.OccupancyStatus, u.ID, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, building_id, company_id, unit_number, monthly_rate,
		occupancy_status, created_at, updated_at, row_version
		FROM units`
}

func (r *unitRepo) scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.BuildingID, &u.CompanyID,
		&u.UnitNumber, &u.MonthlyRate, &u.OccupancyStatus,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *unitRepo) scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := r.scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
