package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/Brian-Masheti/rentowl-sub001/internal/app"
	"github.com/Brian-Masheti/rentowl-sub001/internal/config"
	"github.com/Brian-Masheti/rentowl-sub001/internal/controllers"
	"github.com/Brian-Masheti/rentowl-sub001/internal/middleware"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/routes"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

func main() {
	utils.InitLogger("rentowl")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rentowl:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	caretakerRepo := repositories.NewCaretakerRepository(application.DB)
	actionRepo := repositories.NewCaretakerActionRepository(application.DB)

	var feed services.ActionFeed
	if cfg.RedisURL != "" {
		opts, rErr := redis.ParseURL(cfg.RedisURL)
		if rErr != nil {
			utils.Logger.WithError(rErr).Fatal("Invalid REDIS_URL")
		}
		feed = services.NewRedisActionFeed(redis.NewClient(opts))
	} else {
		utils.Logger.Warn("REDIS_URL not set; live action feed disabled")
	}

	propertyService := services.NewPropertyService(propRepo, tenantRepo, caretakerRepo)
	occupancyService := services.NewOccupancyService(propRepo)
	arrearsService := services.NewArrearsService(paymentRepo, tenantRepo, propRepo)
	actionService := services.NewCaretakerActionService(actionRepo, caretakerRepo, feed)
	tenantService := services.NewTenantService(tenantRepo, paymentRepo)
	caretakerService := services.NewCaretakerService(caretakerRepo)
	reminderService := services.NewReminderService(paymentRepo, tenantRepo, reminderConfig(cfg))

	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propertyService)
	statsController := controllers.NewStatsController(occupancyService, arrearsService, reminderService)
	actionController := controllers.NewActionController(actionService, feed)
	tenantController := controllers.NewTenantController(tenantService)
	caretakerController := controllers.NewCaretakerController(caretakerService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdatePropertyHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyFloors, propertyController.AddFloorHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyFloorByLabel, propertyController.RemoveFloorHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyFloorUnits, propertyController.AddUnitsHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyUnitByID, propertyController.UpdateUnitHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.PropertyUnitByID, propertyController.RemoveUnitHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyUnitAssign, propertyController.AssignTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyUnitVacate, propertyController.VacateUnitHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyAssignCaretaker, propertyController.AssignCaretakerHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.StatsOccupancy, statsController.OccupancyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.StatsArrears, statsController.ArrearsHandler).Methods(http.MethodGet)

	// Sending reminders and toggling caretaker access are restricted.
	privileged := middleware.RequireRole("landlord", "admin")
	secured.Handle(routes.StatsArrearsRemind, privileged(http.HandlerFunc(statsController.TriggerRemindersHandler))).Methods(http.MethodPost)

	secured.HandleFunc(routes.CaretakerActions, actionController.LogActionHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.CaretakerActions, actionController.QueryActionsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CaretakerActionsExport, actionController.ExportActionsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CaretakerActionsFeed, actionController.FeedHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Tenants, tenantController.CreateTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Tenants, tenantController.ListTenantsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.GetTenantHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.DeleteTenantHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.TenantPayments, tenantController.CreatePaymentHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentRecord, tenantController.RecordPaymentHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Caretakers, caretakerController.CreateCaretakerHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Caretakers, caretakerController.ListCaretakersHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CaretakerByID, caretakerController.GetCaretakerHandler).Methods(http.MethodGet)
	secured.Handle(routes.CaretakerActive, privileged(http.HandlerFunc(caretakerController.SetCaretakerActiveHandler))).Methods(http.MethodPut)

	c := cron.New()
	_, cronErr := c.AddFunc("10 0 * * *", func() {
		if e := reminderService.RunOverdueSweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled overdue sweep failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule overdue sweep cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("rentowl failed to start:", err)
	}
}

func reminderConfig(cfg *config.Config) services.ReminderConfig {
	if !cfg.RemindersEnabled {
		return services.ReminderConfig{}
	}
	return services.ReminderConfig{
		SendGridAPIKey:  cfg.SendGridAPIKey,
		FromEmail:       cfg.SendGridFrom,
		FromName:        cfg.SendGridFromName,
		TwilioSID:       cfg.TwilioSID,
		TwilioAuthToken: cfg.TwilioAuthToken,
		TwilioFrom:      cfg.TwilioFrom,
		SandboxMode:     cfg.SendGridSandbox,
	}
}
