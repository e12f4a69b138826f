package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

// ExpenseService records who pays for work on a building. Its only coupling
// to the lifecycle core is the one-expense-per-ticket flag.
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
	ticketRepo  repositories.ServiceTicketRepository
	resRepo     repositories.ReservationRepository
	unitRepo    repositories.UnitRepository
	tx          repositories.TxRunner
}

func NewExpenseService(
	expenseRepo repositories.ExpenseRepository,
	ticketRepo repositories.ServiceTicketRepository,
	resRepo repositories.ReservationRepository,
	unitRepo repositories.UnitRepository,
	tx repositories.TxRunner,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		ticketRepo:  ticketRepo,
		resRepo:     resRepo,
		unitRepo:    unitRepo,
		tx:          tx,
	}
}

// CreateExpense records a building-level expense with no ticket linkage.
func (s *ExpenseService) CreateExpense(
	ctx context.Context,
	buildingID uuid.UUID,
	unitID *uuid.UUID,
	amount decimal.Decimal,
	party models.ResponsiblePartyType,
	description string,
) (*models.Expense, error) {
	if party != models.ResponsibleOwner && party != models.ResponsibleTenant {
		return nil, utils.ErrInvalidStatus
	}
	e := &models.Expense{
		ID:               uuid.New(),
		BuildingID:       buildingID,
		UnitID:           unitID,
		Amount:           amount,
		ResponsibleParty: party,
		Description:      description,
	}
	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateExpenseFromTicket records the expense for a service ticket and marks
// the ticket so a second attempt is rejected. Insert and flag flip share one
// transaction.
func (s *ExpenseService) CreateExpenseFromTicket(
	ctx context.Context,
	ticketID uuid.UUID,
	amount decimal.Decimal,
	party models.ResponsiblePartyType,
	description string,
) (*models.Expense, error) {
	if party != models.ResponsibleOwner && party != models.ResponsibleTenant {
		return nil, utils.ErrInvalidStatus
	}

	var expense *models.Expense

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.ticketRepo.GetByID(txCtx, ticketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return utils.ErrNotFound
		}
		if ticket.IsExpenseCreated {
			return utils.ErrExpenseAlreadyCreated
		}

		res, err := s.resRepo.GetByID(txCtx, ticket.ReservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return utils.ErrNotFound
		}
		unit, err := s.unitRepo.GetByID(txCtx, res.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return utils.ErrNotFound
		}

		expense = &models.Expense{
			ID:               uuid.New(),
			BuildingID:       unit.BuildingID,
			UnitID:           &unit.ID,
			ServiceTicketID:  &ticket.ID,
			Amount:           amount,
			ResponsibleParty: party,
			Description:      description,
		}
		if err := s.expenseRepo.Create(txCtx, expense); err != nil {
			return err
		}

		return s.ticketRepo.UpdateWithRetry(txCtx, ticket.ID, func(t *models.ServiceTicket) error {
			if t.IsExpenseCreated {
				return utils.ErrExpenseAlreadyCreated
			}
			t.IsExpenseCreated = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListByBuilding returns a building's expenses oldest first.
func (s *ExpenseService) ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*models.Expense, error) {
	return s.expenseRepo.ListByBuildingID(ctx, buildingID)
}
