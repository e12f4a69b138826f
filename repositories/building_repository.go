package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Building, error)
}

type buildingRepo struct {
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO buildings (id, company_id, name, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4, NOW(), NOW())
	`, b.ID, b.CompanyID, b.Name, b.Address)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := executor(ctx, r.db).QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return scanBuilding(row)
}

func (r *buildingRepo) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Building, error) {
	rows, err := executor(ctx, r.db).Query(ctx, baseSelectBuilding()+" WHERE company_id=$1 ORDER BY name", companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func baseSelectBuilding() string {
	return `SELECT id, company_id, name, address, created_at, updated_at FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
