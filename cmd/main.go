package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/cedarkey/leasing-service/internal/app"
	"github.com/cedarkey/leasing-service/internal/clock"
	"github.com/cedarkey/leasing-service/internal/config"
	"github.com/cedarkey/leasing-service/internal/controllers"
	"github.com/cedarkey/leasing-service/internal/routes"
	"github.com/cedarkey/leasing-service/internal/services"
	"github.com/cedarkey/leasing-service/migrations"
	"github.com/cedarkey/leasing-service/repositories"
	"github.com/cedarkey/leasing-service/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize leasing-service:", err)
	}
	defer application.Close()

	if err := migrations.Apply(context.Background(), application.DB); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to apply migrations")
	}

	buildingRepo := repositories.NewBuildingRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	resRepo := repositories.NewReservationRepository(application.DB)
	instRepo := repositories.NewInstallmentRepository(application.DB)
	ticketRepo := repositories.NewServiceTicketRepository(application.DB)
	expenseRepo := repositories.NewExpenseRepository(application.DB)

	txRunner := repositories.NewTxManager(application.DB)
	clk := clock.NewSystem()

	catalogService := services.NewCatalogService(buildingRepo, unitRepo)
	ticketService := services.NewTicketService(ticketRepo, resRepo, clk)
	depositService := services.NewDepositService(resRepo, clk)
	reservationService := services.NewReservationService(resRepo, unitRepo, instRepo, txRunner, clk)
	occupancyService := services.NewOccupancyService(unitRepo, resRepo, ticketService, txRunner, clk)
	expenseService := services.NewExpenseService(expenseRepo, ticketRepo, resRepo, unitRepo, txRunner)
	sweepService := services.NewSweepService(resRepo, reservationService, ticketService, clk, cfg.SweepTxTimeout)

	catalogController := controllers.NewCatalogController(catalogService)
	unitsController := controllers.NewUnitsController(catalogService, occupancyService, reservationService)
	reservationsController := controllers.NewReservationsController(reservationService, depositService, ticketService)
	ticketsController := controllers.NewTicketsController(ticketService, expenseService)
	expensesController := controllers.NewExpensesController(expenseService)
	adminController := controllers.NewAdminController(sweepService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.BuildingsBase, catalogController.CreateBuildingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingByID, catalogController.GetBuildingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingUnits, catalogController.CreateUnitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingUnits, catalogController.ListUnitsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingExpenses, expensesController.CreateExpenseHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingExpenses, expensesController.ListExpensesHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.UnitByID, unitsController.GetUnitHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitStatus, unitsController.UpdateUnitStatusHandler).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc(routes.UnitRelease, unitsController.ReleaseUnitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.UnitReservations, unitsController.ListUnitReservationsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.ReservationsBase, reservationsController.CreateReservationHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ReservationByID, reservationsController.GetReservationHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ReservationCancel, reservationsController.CancelReservationHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ReservationInstallments, reservationsController.ListInstallmentsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ReservationDeposit, reservationsController.UpdateDepositStatusHandler).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc(routes.ReservationTickets, reservationsController.ListTicketsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.TicketsBase, ticketsController.CreateTicketHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TicketByID, ticketsController.GetTicketHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TicketStatus, ticketsController.UpdateTicketStatusHandler).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc(routes.TicketExpense, ticketsController.CreateExpenseFromTicketHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.AdminExpirationSweep, adminController.RunExpirationSweepHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AdminTicketReconciliation, adminController.RunTicketReconciliationHandler).Methods(http.MethodPost)

	c := cron.New()
	_, sweepErr := c.AddFunc(cfg.SweepCron, func() {
		if _, e := sweepService.RunExpirationSweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled expiration sweep failed")
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule expiration sweep cron")
	}

	_, reconcileErr := c.AddFunc(cfg.ReconcileCron, func() {
		if _, e := sweepService.RunTicketReconciliation(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled ticket reconciliation failed")
		}
	})
	if reconcileErr != nil {
		utils.Logger.WithError(reconcileErr).Fatal("Failed to schedule ticket reconciliation cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("leasing-service failed to start:", err)
	}
}
