package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/cancel_appointment"
	checkoutAppointmentHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/checkout_appointment"
	createAppointmentHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/create_appointment"
	createBarberHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/create_barber"
	createServiceHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/create_service"
	deleteBarberHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/delete_barber"
	deleteServiceHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/get_available_slots"
	getBarberHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/get_barber"
	getBusinessConfigHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/get_business_config"
	getBusinessStatsHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/get_business_stats"
	listAppointmentsHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/list_appointments"
	listBarbersHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/list_services"
	rescheduleAppointmentHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/reschedule_appointment"
	startServiceHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/start_service"
	updateBarberHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/update_barber"
	updateBusinessConfigHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/update_business_config"
	updateServiceHandler "github.com/turnord/TurnORD-SchedulingService/internal/api/handlers/update_service"
	"github.com/turnord/TurnORD-SchedulingService/internal/api/middleware"
	"github.com/turnord/TurnORD-SchedulingService/internal/config"
	appointmentRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	businessConfigRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	catalogRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/catalog"
	reminderRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/reminder"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
	"github.com/turnord/TurnORD-SchedulingService/internal/reminders"
	appointmentsService "github.com/turnord/TurnORD-SchedulingService/internal/service/appointments"
	barbersService "github.com/turnord/TurnORD-SchedulingService/internal/service/barbers"
	businessService "github.com/turnord/TurnORD-SchedulingService/internal/service/business"
	catalogService "github.com/turnord/TurnORD-SchedulingService/internal/service/catalog"
	createAppointmentUC "github.com/turnord/TurnORD-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/turnord/TurnORD-SchedulingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/turnord/TurnORD-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/turnord/TurnORD-SchedulingService/pkg/dbmetrics"
	"github.com/turnord/TurnORD-SchedulingService/pkg/logger"
	"github.com/turnord/TurnORD-SchedulingService/pkg/metrics"
	"github.com/turnord/TurnORD-SchedulingService/pkg/simpletxmanager"
	"github.com/turnord/TurnORD-SchedulingService/pkg/txmanager"
)

// TxManager объединяет уровни изоляции, которые нужны планировщику и usecase-ам
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TurnORD-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент шлюза уведомлений
	gateway := notifygateway.NewClient(
		cfg.NotifyGateway.URL,
		time.Duration(cfg.NotifyGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Notify gateway client initialized (url=%s, timeout=%ds)",
		cfg.NotifyGateway.URL, cfg.NotifyGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		apptRepository     *appointmentRepo.Repository
		barberRepository   *barberRepo.Repository
		serviceRepository  *catalogRepo.Repository
		configRepository   *businessConfigRepo.Repository
		reminderRepository *reminderRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		serviceRepository = catalogRepo.NewRepository(wrappedDB)
		configRepository = businessConfigRepo.NewRepository(wrappedDB)
		reminderRepository = reminderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		serviceRepository = catalogRepo.NewRepository(db)
		configRepository = businessConfigRepo.NewRepository(db)
		reminderRepository = reminderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Планировщик напоминаний
	reminderScheduler := reminders.NewScheduler(
		reminderRepository,
		apptRepository,
		barberRepository,
		gateway,
		txMgr,
		log,
	)
	if cfg.Reminders.Enabled {
		if err := reminderScheduler.Start(); err != nil {
			log.Fatal("Failed to start reminders scheduler: %v", err)
		}
		defer reminderScheduler.Stop()
	} else {
		log.Info("Reminders scheduler disabled by config")
	}

	// Инициализируем сервисы
	apptSvc := appointmentsService.NewService(apptRepository, reminderScheduler, log)
	barberSvc := barbersService.NewService(barberRepository, apptRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, apptRepository, log)
	businessSvc := businessService.NewService(configRepository, apptRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		apptRepository,
		barberRepository,
		serviceRepository,
		configRepository,
		reminderScheduler,
		gateway,
		txMgr,
		&createAppointmentUC.RealTimeProvider{},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		apptRepository,
		barberRepository,
		configRepository,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		apptRepository,
		barberRepository,
		configRepository,
		reminderScheduler,
		gateway,
		txMgr,
		&rescheduleAppointmentUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(apptSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(apptSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(apptSvc, log)
	startService := startServiceHandler.NewHandler(apptSvc, log)
	checkoutAppointment := checkoutAppointmentHandler.NewHandler(apptSvc, log)
	createBarber := createBarberHandler.NewHandler(barberSvc, log)
	getBarber := getBarberHandler.NewHandler(barberSvc, log)
	listBarbers := listBarbersHandler.NewHandler(barberSvc, log)
	updateBarber := updateBarberHandler.NewHandler(barberSvc, log)
	deleteBarber := deleteBarberHandler.NewHandler(barberSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(businessSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(businessSvc, log)
	getBusinessStats := getBusinessStatsHandler.NewHandler(businessSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.LoggingMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/start", startService.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/checkout", checkoutAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Слоты ---
	api.HandleFunc("/businesses/{businessId}/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Мастера ---
	api.HandleFunc("/businesses/{businessId}/barbers", createBarber.Handle).Methods(http.MethodPost)
	api.HandleFunc("/businesses/{businessId}/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/barbers/{barberId}", getBarber.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/barbers/{barberId}", updateBarber.Handle).Methods(http.MethodPut)
	api.HandleFunc("/businesses/{businessId}/barbers/{barberId}", deleteBarber.Handle).Methods(http.MethodDelete)

	// --- Услуги ---
	api.HandleFunc("/businesses/{businessId}/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/businesses/{businessId}/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	api.HandleFunc("/businesses/{businessId}/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Бизнес ---
	api.HandleFunc("/businesses/{businessId}/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/config", getBusinessConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)
	api.HandleFunc("/businesses/{businessId}/stats", getBusinessStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
