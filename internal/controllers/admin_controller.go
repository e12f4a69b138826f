package controllers

import (
	"net/http"

	"github.com/cedarkey/leasing-service/internal/services"
	"github.com/cedarkey/leasing-service/utils"
)

// AdminController exposes manual triggers for the scheduled passes, for
// operators and integration tests.
type AdminController struct {
	sweepService *services.SweepService
}

func NewAdminController(ss *services.SweepService) *AdminController {
	return &AdminController{sweepService: ss}
}

// POST /api/v1/admin/sweeps/expiration
func (c *AdminController) RunExpirationSweepHandler(w http.ResponseWriter, r *http.Request) {
	result, err := c.sweepService.RunExpirationSweep(r.Context())
	if err != nil {
		respondServiceError(w, err, "Expiration sweep failed")
		return
	}

	failures := make([]map[string]string, 0, len(result.Failed))
	for _, f := range result.Failed {
		failures = append(failures, map[string]string{
			"reservation_id": f.ReservationID.String(),
			"error":          f.Err.Error(),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"processed": result.Processed,
		"failed":    failures,
	})
}

// POST /api/v1/admin/sweeps/reconciliation
func (c *AdminController) RunTicketReconciliationHandler(w http.ResponseWriter, r *http.Request) {
	created, err := c.sweepService.RunTicketReconciliation(r.Context())
	if err != nil {
		respondServiceError(w, err, "Ticket reconciliation failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"created": created})
}
