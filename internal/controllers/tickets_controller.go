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

type TicketsController struct {
	ticketService  *services.TicketService
	expenseService *services.ExpenseService
}

func NewTicketsController(ts *services.TicketService, es *services.ExpenseService) *TicketsController {
	return &TicketsController{
		ticketService:  ts,
		expenseService: es,
	}
}

var ticketValidate = validator.New()

// POST /api/v1/tickets
func (c *TicketsController) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := ticketValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	ticketType := models.TicketType(strings.ToUpper(strings.TrimSpace(req.Type)))
	actor := services.Actor{ID: req.ActorID, Role: req.ActorRole}

	ticket, err := c.ticketService.CreateTicket(ctx, req.ReservationID, ticketType, req.Description, actor)
	if err != nil {
		respondServiceError(w, err, "Could not create ticket")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, ticket)
}

// GET /api/v1/tickets/{ticketID}
func (c *TicketsController) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid ticket ID", nil, err)
		return
	}

	ticket, err := c.ticketService.GetTicket(r.Context(), ticketID)
	if err != nil {
		respondServiceError(w, err, "Could not fetch ticket")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// PATCH /api/v1/tickets/{ticketID}/status
func (c *TicketsController) UpdateTicketStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid ticket ID", nil, err)
		return
	}

	var req dtos.UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := ticketValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	newStatus := models.TicketStatusType(strings.ToUpper(strings.TrimSpace(req.NewStatus)))
	actor := services.Actor{ID: req.ActorID, Role: req.ActorRole}

	ticket, err := c.ticketService.TransitionStatus(ctx, ticketID, newStatus, actor)
	if err != nil {
		respondServiceError(w, err, "Could not update ticket status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// POST /api/v1/tickets/{ticketID}/expense
func (c *TicketsController) CreateExpenseFromTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid ticket ID", nil, err)
		return
	}

	var req dtos.CreateExpenseFromTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := ticketValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}
	if req.Amount.Sign() <= 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "amount must be positive", nil, nil)
		return
	}

	party := models.ResponsiblePartyType(strings.ToUpper(strings.TrimSpace(req.ResponsibleParty)))
	expense, err := c.expenseService.CreateExpenseFromTicket(ctx, ticketID, req.Amount, party, req.Description)
	if err != nil {
		respondServiceError(w, err, "Could not create expense for ticket")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, expense)
}
