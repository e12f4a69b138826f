package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cedarkey/leasing-service/internal/dtos"
	"github.com/cedarkey/leasing-service/internal/services"
	"github.com/cedarkey/leasing-service/models"
	"github.com/cedarkey/leasing-service/utils"
)

type ReservationsController struct {
	resService     *services.ReservationService
	depositService *services.DepositService
	ticketService  *services.TicketService
}

func NewReservationsController(
	rs *services.ReservationService,
	ds *services.DepositService,
	ts *services.TicketService,
) *ReservationsController {
	return &ReservationsController{
		resService:     rs,
		depositService: ds,
		ticketService:  ts,
	}
}

var resValidate = validator.New()

// POST /api/v1/reservations
func (c *ReservationsController) CreateReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := resValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	startDate, err := time.Parse(dtos.DateLayout, req.StartDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "start_date must be YYYY-MM-DD", nil, err)
		return
	}
	endDate, err := time.Parse(dtos.DateLayout, req.EndDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "end_date must be YYYY-MM-DD", nil, err)
		return
	}

	out, err := c.resService.CreateReservation(ctx, services.CreateReservationInput{
		UnitID:           req.UnitID,
		TenantID:         req.TenantID,
		StartDate:        startDate,
		EndDate:          endDate,
		PaymentFrequency: models.PaymentFrequencyType(strings.ToUpper(strings.TrimSpace(req.PaymentFrequency))),

		IncludesDeposit:      req.IncludesDeposit,
		DepositAmount:        req.DepositAmount,
		DepositPaymentMethod: strings.TrimSpace(req.DepositPaymentMethod),
	})
	if err != nil {
		respondServiceError(w, err, "Could not create reservation")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.CreateReservationResponse{
		Reservation:  out.Reservation,
		Installments: out.Installments,
	})
}

// GET /api/v1/reservations/{reservationID}
func (c *ReservationsController) GetReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathUUID(r, "reservationID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reservation ID", nil, err)
		return
	}

	res, err := c.resService.GetReservation(r.Context(), reservationID)
	if err != nil {
		respondServiceError(w, err, "Could not fetch reservation")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// POST /api/v1/reservations/{reservationID}/cancel
func (c *ReservationsController) CancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathUUID(r, "reservationID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reservation ID", nil, err)
		return
	}

	res, err := c.resService.CancelReservation(r.Context(), reservationID)
	if err != nil {
		respondServiceError(w, err, "Could not cancel reservation")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GET /api/v1/reservations/{reservationID}/installments
func (c *ReservationsController) ListInstallmentsHandler(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathUUID(r, "reservationID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reservation ID", nil, err)
		return
	}

	installments, err := c.resService.ListInstallments(r.Context(), reservationID)
	if err != nil {
		respondServiceError(w, err, "Could not list installments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, installments)
}

// PATCH /api/v1/reservations/{reservationID}/deposit
func (c *ReservationsController) UpdateDepositStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reservationID, err := pathUUID(r, "reservationID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reservation ID", nil, err)
		return
	}

	var req dtos.UpdateDepositStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := resValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dtos.DateLayout, *req.Date)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "date must be YYYY-MM-DD", nil, err)
			return
		}
		date = &parsed
	}

	newStatus := models.DepositStatusType(strings.ToUpper(strings.TrimSpace(req.NewStatus)))
	res, err := c.depositService.UpdateDepositStatus(ctx, reservationID, newStatus, date)
	if err != nil {
		respondServiceError(w, err, "Could not update deposit status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GET /api/v1/reservations/{reservationID}/tickets
func (c *ReservationsController) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathUUID(r, "reservationID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reservation ID", nil, err)
		return
	}

	tickets, err := c.ticketService.ListByReservation(r.Context(), reservationID)
	if err != nil {
		respondServiceError(w, err, "Could not list tickets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}
