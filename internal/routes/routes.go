package routes

const (
	// Health
	Health = "/health"

	// Catalog endpoints
	BuildingsBase    = "/api/v1/buildings"
	BuildingByID     = "/api/v1/buildings/{buildingID}"
	BuildingUnits    = "/api/v1/buildings/{buildingID}/units"
	BuildingExpenses = "/api/v1/buildings/{buildingID}/expenses"

	// Unit occupancy endpoints
	UnitByID         = "/api/v1/units/{unitID}"
	UnitStatus       = "/api/v1/units/{unitID}/status"
	UnitRelease      = "/api/v1/units/{unitID}/release"
	UnitReservations = "/api/v1/units/{unitID}/reservations"

	// Reservation lifecycle endpoints
	ReservationsBase        = "/api/v1/reservations"
	ReservationByID         = "/api/v1/reservations/{reservationID}"
	ReservationCancel       = "/api/v1/reservations/{reservationID}/cancel"
	ReservationInstallments = "/api/v1/reservations/{reservationID}/installments"
	ReservationDeposit      = "/api/v1/reservations/{reservationID}/deposit"
	ReservationTickets      = "/api/v1/reservations/{reservationID}/tickets"

	// Service ticket endpoints
	TicketsBase   = "/api/v1/tickets"
	TicketByID    = "/api/v1/tickets/{ticketID}"
	TicketStatus  = "/api/v1/tickets/{ticketID}/status"
	TicketExpense = "/api/v1/tickets/{ticketID}/expense"

	// Admin endpoints: manual triggers for the scheduled passes
	AdminExpirationSweep      = "/api/v1/admin/sweeps/expiration"
	AdminTicketReconciliation = "/api/v1/admin/sweeps/reconciliation"
)
