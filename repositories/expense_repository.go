package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Expense, error)
}

type expenseRepo struct {
	db DB
}

func NewExpenseRepository(db DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *models.Expense) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO expenses (
			id, building_id, unit_id, service_ticket_id,
			amount, responsible_party, description, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
	`, e.ID, e.BuildingID, e.UnitID, e.ServiceTicketID,
		e.Amount, e.ResponsibleParty, e.Description)
	return err
}

func (r *expenseRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Expense, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT id, building_id, unit_id, service_ticket_id,
		       amount, responsible_party, description, created_at
		FROM expenses
		WHERE building_id=$1
		ORDER BY created_at
	`, bldgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Expense
	for rows.Next() {
		var e models.Expense
		var desc *string
		if err := rows.Scan(
			&e.ID, &e.BuildingID, &e.UnitID, &e.ServiceTicketID,
			&e.Amount, &e.ResponsibleParty, &desc, &e.CreatedAt,
		); err != nil {
			if err == pgx.ErrNoRows {
				return nil, nil
			}
			return nil, err
		}
		if desc != nil {
			e.Description = *desc
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
