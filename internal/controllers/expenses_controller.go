package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cedarkey/leasing-service/internal/dtos"
	"github.com/cedarkey/leasing-service/internal/services"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/utils"
)

type ExpensesController struct {
	expenseService *services.ExpenseService
}

func NewExpensesController(es *services.ExpenseService) *ExpensesController {
	return &ExpensesController{expenseService: es}
}

var expenseValidate = validator.New()

// POST /api/v1/buildings/{buildingID}/expenses
func (c *ExpensesController) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buildingID, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building ID", nil, err)
		return
	}

	var req dtos.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := expenseValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}
	if req.Amount.Sign() <= 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "amount must be positive", nil, nil)
		return
	}

	party := models.ResponsiblePartyType(strings.ToUpper(strings.TrimSpace(req.ResponsibleParty)))
	expense, err := c.expenseService.CreateExpense(ctx, buildingID, req.UnitID, req.Amount, party, req.Description)
	if err != nil {
		respondServiceError(w, err, "Could not create expense")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, expense)
}

// GET /api/v1/buildings/{buildingID}/expenses
func (c *ExpensesController) ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building ID", nil, err)
		return
	}

	expenses, err := c.expenseService.ListByBuilding(r.Context(), buildingID)
	if err != nil {
		respondServiceError(w, err, "Could not list expenses")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, expenses)
}
