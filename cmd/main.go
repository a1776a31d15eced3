package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingCountdownHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/booking_countdown"
	cancelBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_booking"
	deleteUserHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_user"
	getAdminBookingsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_admin_bookings"
	getBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_catalog"
	getMeHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_me"
	getUserBookingsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_user_bookings"
	listAllBookingsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_all_bookings"
	listUsersHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_users"
	registerUserHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/register_user"
	styleRecommendationHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/style_recommendation"
	updateUserRoleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_user_role"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/firebaseauth"
	geminiClient "github.com/m04kA/SMC-BarberBooking/internal/integrations/gemini"
	bookingsService "github.com/m04kA/SMC-BarberBooking/internal/service/bookings"
	stylistService "github.com/m04kA/SMC-BarberBooking/internal/service/stylist"
	usersService "github.com/m04kA/SMC-BarberBooking/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/retry"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

// businessMetrics бизнес-счетчики, общие для use case и сервисов
type businessMetrics interface {
	BookingCreated(serviceID string)
	BookingCancelled()
	CancellationRefused(reason string)
	RecommendationServed(source string)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var bizMetrics businessMetrics = metrics.Nop{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		bizMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка просто пропускает замеры
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	retrier := retry.New(retry.Config{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: time.Duration(cfg.Retry.InitialIntervalMs) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.Retry.MaxIntervalMs) * time.Millisecond,
	}, retry.IsTransientPostgres)

	// Правила отмены
	location, err := cfg.Policy.Location()
	if err != nil {
		log.Fatal("Failed to load time zone %s: %v", cfg.Policy.TimeZone, err)
	}
	policy := domain.NewPolicy(cfg.Policy.CancellationWindowHours, cfg.Policy.StalenessWindowHours, location)
	log.Info("Cancellation policy: window=%s, staleness=%s, tz=%s",
		policy.CancellationWindow, policy.StalenessWindow, location)

	ctx := context.Background()

	// Identity provider
	var verifier middleware.TokenVerifier
	if cfg.Firebase.Enabled {
		v, err := firebaseauth.NewVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to initialize Firebase Auth: %v", err)
		}
		verifier = v
		log.Info("Firebase Auth enabled (project=%s)", cfg.Firebase.ProjectID)
	} else {
		log.Warn("Firebase Auth disabled: X-User-ID header is trusted, do not use in production")
	}

	// Style-recommendation provider
	var provider stylistService.Provider
	if cfg.Gemini.APIKey != "" {
		client, err := geminiClient.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model,
			time.Duration(cfg.Gemini.Timeout)*time.Second, log)
		if err != nil {
			log.Error("Failed to initialize Gemini client, recommendations disabled: %v", err)
		} else {
			defer client.Close()
			provider = client
			log.Info("Gemini client initialized (model=%s timeout=%ds)", cfg.Gemini.Model, cfg.Gemini.Timeout)
		}
	} else {
		log.Warn("Gemini API key is not set, style recommendations disabled")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		txMgr,
		retrier,
		bizMetrics,
		policy,
		log,
	)
	userSvc := usersService.NewService(
		userRepository,
		retrier,
		cfg.Signup.DefaultEmailDomain,
		log,
	)
	stylistSvc := stylistService.NewService(provider, bizMetrics, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		retrier,
		bizMetrics,
		policy,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		retrier,
		policy,
		log,
	)

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	registerUser := registerUserHandler.NewHandler(userSvc, log)
	getMe := getMeHandler.NewHandler(userSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	bookingCountdown := bookingCountdownHandler.NewHandler(bookingSvc,
		time.Duration(cfg.Server.CountdownInterval)*time.Millisecond, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	listAllBookings := listAllBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(userSvc, log)
	deleteUser := deleteUserHandler.NewHandler(userSvc, log)
	styleRecommendation := styleRecommendationHandler.NewHandler(stylistSvc, log)

	auth := middleware.NewAuth(verifier, !cfg.Firebase.Enabled, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
	defer limiter.Stop()

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Профиль ---
	protected.HandleFunc("/users/me", registerUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me", getMe.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/countdown", bookingCountdown.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Стилист ---
	protected.Handle("/recommendations/style",
		limiter.Middleware(http.HandlerFunc(styleRecommendation.Handle))).Methods(http.MethodPost)

	// --- Админка (права проверяются в сервисах) ---
	protected.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/bookings/all", listAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users/{userId}/role", updateUserRole.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/users/{userId}", deleteUser.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Отмена базового контекста закрывает SSE потоки при остановке
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv.BaseContext = func(net.Listener) context.Context { return baseCtx }
	srv.RegisterOnShutdown(cancelBase)

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
