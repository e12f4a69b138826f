package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cedarkey/leasing-service/internal/dtos"
	"github.com/cedarkey/leasing-service/internal/services"
	"github.com/cedarkey/leasing-service/utils"
)

type CatalogController struct {
	catalogService *services.CatalogService
}

func NewCatalogController(cs *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: cs}
}

var catalogValidate = validator.New()

// POST /api/v1/buildings
func (c *CatalogController) CreateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := catalogValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}

	building, err := c.catalogService.CreateBuilding(ctx, req.CompanyID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Address))
	if err != nil {
		respondServiceError(w, err, "Could not create building")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, building)
}

// GET /api/v1/buildings/{buildingID}
func (c *CatalogController) GetBuildingHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building ID", nil, err)
		return
	}

	building, err := c.catalogService.GetBuilding(r.Context(), buildingID)
	if err != nil {
		respondServiceError(w, err, "Could not fetch building")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, building)
}

// POST /api/v1/buildings/{buildingID}/units
func (c *CatalogController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buildingID, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building ID", nil, err)
		return
	}

	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := catalogValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err)
		return
	}
	if req.MonthlyRate.Sign() <= 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "monthly_rate must be positive", nil, nil)
		return
	}

	unit, err := c.catalogService.CreateUnit(ctx, buildingID, strings.TrimSpace(req.UnitNumber), req.MonthlyRate)
	if err != nil {
		respondServiceError(w, err, "Could not create unit")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, unit)
}

// GET /api/v1/buildings/{buildingID}/units
func (c *CatalogController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building ID", nil, err)
		return
	}

	units, err := c.catalogService.ListUnits(r.Context(), buildingID)
	if err != nil {
		respondServiceError(w, err, "Could not list units")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}
