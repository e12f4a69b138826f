package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

/* ───────────── public interface ───────────── */

type ServiceTicketRepository interface {
	Create(ctx context.Context, t *models.ServiceTicket) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTicket, error)
	ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.ServiceTicket, error)
	// FindOpenMaintenance returns the reservation's PENDING or IN_PROGRESS
	// maintenance ticket, if one exists. Backs the idempotent auto-create.
	FindOpenMaintenance(ctx context.Context, resID uuid.UUID) (*models.ServiceTicket, error)

	UpdateIfVersion(ctx context.Context, t *models.ServiceTicket, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceTicket) error) error
}

/* ───────────── implementation ───────────── */

type serviceTicketRepo struct {
	*BaseVersionedRepo[*models.ServiceTicket]
	db DB
}

func NewServiceTicketRepository(db DB) ServiceTicketRepository {
	r := &serviceTicketRepo{db: db}
	selectStmt := baseSelectTicket() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanTicket)
	return r
}

func (r *serviceTicketRepo) Create(ctx context.Context, t *models.ServiceTicket) error {
	history, err := json.Marshal(t.History)
	if err != nil {
		return err
	}
	_, err = executor(ctx, r.db).Exec(ctx, `
		INSERT INTO service_tickets (
			id, reservation_id, type, status, description, history,
			is_expense_created, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
	`, t.ID, t.ReservationID, t.Type, t.Status, t.Description, history, t.IsExpenseCreated)
	return err
}

func (r *serviceTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTicket, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *serviceTicketRepo) ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.ServiceTicket, error) {
	rows, err := executor(ctx, r.db).Query(ctx,
		baseSelectTicket()+" WHERE reservation_id=$1 ORDER BY created_at", resID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTickets(rows)
}

func (r *serviceTicketRepo) FindOpenMaintenance(ctx context.Context, resID uuid.UUID) (*models.ServiceTicket, error) {
	row := executor(ctx, r.db).QueryRow(ctx, baseSelectTicket()+`
		WHERE reservation_id=$1 AND type=$2 AND status IN ($3, $4)
		ORDER BY created_at LIMIT 1
	`, resID, models.TicketTypeMaintenance,
		models.TicketStatusPending, models.TicketStatusInProgress)
	return r.scanTicket(row)
}

// UpdateIfVersion rewrites the mutable ticket columns. History is written
// whole but only ever grows; the service layer appends, never rewrites.
func (r *serviceTicketRepo) UpdateIfVersion(ctx context.Context, t *models.ServiceTicket, expected int64) (pgconn.CommandTag, error) {
	history, err := json.Marshal(t.History)
	if err != nil {
		return nil, err
	}
	return executor(ctx, r.db).Exec(ctx, `
		UPDATE service_tickets
		SET status=$1, history=$2, is_expense_created=$3,
		    updated_at=NOW(), row_version=row_version+1
		WHERE id=$4 AND row_version=$5
	`, t.Status, history, t.IsExpenseCreated, t.ID, expected)
}

func (r *serviceTicketRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceTicket) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

/* ---------- internals ---------- */

func baseSelectTicket() string {
	return `
		SELECT id, reservation_id, type, status, description, history,
		is_expense_created, created_at, updated_at, row_version
		FROM service_tickets`
}

func (r *serviceTicketRepo) scanTicket(row pgx.Row) (*models.ServiceTicket, error) {
	var t models.ServiceTicket
	var history []byte
	if err := row.Scan(
		&t.ID, &t.ReservationID, &t.Type, &t.Status, &t.Description, &history,
		&t.IsExpenseCreated, &t.CreatedAt, &t.UpdatedAt, &t.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &t.History); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (r *serviceTicketRepo) scanTickets(rows pgx.Rows) ([]*models.ServiceTicket, error) {
	var out []*models.ServiceTicket
	for rows.Next() {
		t, err := r.scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
