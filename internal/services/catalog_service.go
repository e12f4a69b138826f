package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// CatalogService provisions buildings and units. New units start AVAILABLE.
type CatalogService struct {
	buildingRepo repositories.BuildingRepository
	unitRepo     repositories.UnitRepository
}

func NewCatalogService(
	buildingRepo repositories.BuildingRepository,
	unitRepo repositories.UnitRepository,
) *CatalogService {
	return &CatalogService{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
	}
}

func (s *CatalogService) CreateBuilding(ctx context.Context, companyID uuid.UUID, name, address string) (*models.Building, error) {
	b := &models.Building{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Address:   address,
	}
	if err := s.buildingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.ErrNotFound
	}
	return b, nil
}

func (s *CatalogService) CreateUnit(
	ctx context.Context,
	buildingID uuid.UUID,
	unitNumber string,
	monthlyRate decimal.Decimal,
) (*models.Unit, error) {
	building, err := s.buildingRepo.GetByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, utils.ErrNotFound
	}

	u := &models.Unit{
		ID:              uuid.New(),
		BuildingID:      building.ID,
		CompanyID:       building.CompanyID,
		UnitNumber:      unitNumber,
		MonthlyRate:     monthlyRate,
		OccupancyStatus: models.OccupancyAvailable,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CatalogService) GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (s *CatalogService) ListUnits(ctx context.Context, buildingID uuid.UUID) ([]*models.Unit, error) {
	return s.unitRepo.ListByBuildingID(ctx, buildingID)
}
