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

	cancelBookingHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/get_branch_bookings"
	getBranchConfigHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/get_branch_config"
	getUserBookingsHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/get_user_bookings"
	updateBranchConfigHandler "github.com/m04kA/LTA-BookingService/internal/api/handlers/update_branch_config"
	"github.com/m04kA/LTA-BookingService/internal/api/middleware"
	"github.com/m04kA/LTA-BookingService/internal/config"
	"github.com/m04kA/LTA-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/branch"
	crmServiceClient "github.com/m04kA/LTA-BookingService/internal/integrations/crmservice"
	bookingsService "github.com/m04kA/LTA-BookingService/internal/service/bookings"
	branchConfigService "github.com/m04kA/LTA-BookingService/internal/service/branchconfig"
	checkAvailabilityUC "github.com/m04kA/LTA-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/LTA-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/LTA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LTA-BookingService/pkg/logger"
	"github.com/m04kA/LTA-BookingService/pkg/metrics"
	"github.com/m04kA/LTA-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/LTA-BookingService/pkg/txmanager"
)

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

	log.Info("Starting LTA-BookingService...")
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

	// Инициализируем интеграционных клиентов
	crmClient := crmServiceClient.NewClient(
		cfg.CRMService.URL,
		time.Duration(cfg.CRMService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CRMService=%s timeout=%ds)",
		cfg.CRMService.URL, cfg.CRMService.Timeout)

	// Издатель доменных событий (если включен)
	type EventPublisher interface {
		PublishBookingConfirmed(ctx context.Context, event events.BookingConfirmedEvent) error
		PublishBookingCancelled(ctx context.Context, event events.BookingCancelledEvent) error
		Close() error
	}
	var eventPublisher EventPublisher

	if cfg.Events.Enabled {
		eventPublisher = events.NewPublisher(cfg.Events.URL, log)
		log.Info("Events publisher initialized (broker=%s)", cfg.Events.URL)
	} else {
		eventPublisher = events.NewNopPublisher()
		log.Info("Events publishing disabled")
	}
	defer eventPublisher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		branchRepository  *branchRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		branchRepository = branchRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		branchRepository = branchRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		eventPublisher,
		log,
	)
	branchConfigSvc := branchConfigService.NewService(
		branchRepository,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		branchRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		branchRepository,
		crmClient,
		eventPublisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getBranchConfig := getBranchConfigHandler.NewHandler(branchConfigSvc, log)
	updateBranchConfig := updateBranchConfigHandler.NewHandler(branchConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота (виджет бронирования)
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// Конфигурация филиала: расписание, емкости, комнаты
	api.HandleFunc("/branches/{branchId}/config", getBranchConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление филиалом (для менеджеров) ---
	// Список бронирований филиала
	protected.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации филиала
	protected.HandleFunc("/branches/{branchId}/config", updateBranchConfig.Handle).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
