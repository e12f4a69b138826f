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

type UnitsController struct {
	catalogService   *services.CatalogService
	occupancyService *services.OccupancyService
	resService       *services.ReservationService
}

func NewUnitsController(
	cs *services.CatalogService,
	os *services.OccupancyService,
	rs *services.ReservationService,
) *UnitsController {
	return &UnitsController{
		catalogService:   cs,
		occupancyService: os,
		resService:       rs,
	}
}

var unitValidate = validator.New()

// GET /api/v1/units/{unitID}
func (c *UnitsController) GetUnitHandler(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit ID", nil, err)
		return
	}

	unit, err := c.catalogService.GetUnit(r.Context(), unitID)
	if err != nil {
		respondServiceError(w, err, "Could not fetch unit")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// PATCH /api/v1/units/{unitID}/status
func (c *UnitsController) UpdateUnitStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	unitID, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit ID", nil, err)
		return
	}

	var req dtos.UpdateUnitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := unitValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	target := models.OccupancyStatusType(strings.ToUpper(strings.TrimSpace(req.NewStatus)))
	actor := services.Actor{ID: req.ActorID, Role: req.ActorRole}

	result, err := c.occupancyService.TransitionUnitStatus(ctx, unitID, target, actor)
	if err != nil {
		respondServiceError(w, err, "Could not update unit status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnitTransitionResponse{
		Unit:            result.Unit,
		CreatedTicketID: result.CreatedTicketID,
	})
}

// POST /api/v1/units/{unitID}/release
func (c *UnitsController) ReleaseUnitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	unitID, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit ID", nil, err)
		return
	}

	var req dtos.UpdateUnitStatusRequest
	if r.Body != nil {
		// Release takes no status; only actor identity is read from the body.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	actor := services.Actor{ID: req.ActorID, Role: req.ActorRole}

	unit, err := c.occupancyService.ReleaseUnit(ctx, unitID, actor)
	if err != nil {
		respondServiceError(w, err, "Could not release unit")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// GET /api/v1/units/{unitID}/reservations
func (c *UnitsController) ListUnitReservationsHandler(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit ID", nil, err)
		return
	}

	reservations, err := c.resService.ListByUnit(r.Context(), unitID)
	if err != nil {
		respondServiceError(w, err, "Could not list reservations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reservations)
}
