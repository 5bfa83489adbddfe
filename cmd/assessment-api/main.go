package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/cache"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/config"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/db"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/events"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/handlers"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/httpx"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/ops"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/otelx"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/payments"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/storage"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := ops.NewLogger(cfg.ServiceName)

	ctx, stop := ops.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(cfg.ServiceName))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	var checks []ops.ReadyCheck

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		checks = append(checks, ops.ReadyCheck{Name: "redis", Check: cache.ReadyCheck(rdb)})
	}
	var store *cache.Cache
	if rdb != nil {
		store = cache.New(rdb, logger)
	}

	var pool *db.Pool
	var assessmentRepo *storage.AssessmentRepository
	if cfg.DatabaseURL != "" {
		pool, err = db.Open(ctx, cfg.DatabaseURL, db.Options{
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		})
		if err != nil {
			logger.Error("database open failed", "err", err)
			panic(err)
		}
		defer pool.Close()
		assessmentRepo = storage.NewAssessmentRepository(pool)
		checks = append(checks, ops.ReadyCheck{Name: "postgres", Check: db.ReadyCheck(pool)})
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer func() { _ = publisher.Close() }()
	if cfg.KafkaBrokers != "" {
		checks = append(checks, ops.ReadyCheck{Name: "kafka", Check: events.ReadyCheck(cfg.KafkaBrokers)})
	}

	resolver := availability.NewResolver(
		upstream.NewClient(cfg.AvailabilityURL, logger),
		cache.NewAvailabilityCache(store),
		logger,
		cfg.OpenHour, cfg.CloseHour,
	)

	assessor := providers.NewAssessor(cfg.AssessorURL)
	links := payments.New(payments.Config{
		SecretKey:  cfg.StripeSecretKey,
		Currency:   cfg.PaymentCurrency,
		SuccessURL: cfg.PaymentSuccessURL,
		CancelURL:  cfg.PaymentCancelURL,
	})

	availabilityHandler := handlers.NewAvailabilityHandler(resolver, logger)
	assessmentHandler := handlers.NewAssessmentHandler(assessor, assessmentRepo, publisher, logger)
	bookingHandler := handlers.NewBookingHandler(assessor, publisher, logger, cfg.OpenHour, cfg.CloseHour)
	paymentHandler := handlers.NewPaymentHandler(links, logger)
	otpHandler := handlers.NewOTPHandler(providers.NewOTP(cfg.OTPBaseURL, cfg.OTPAPIKey), logger)
	verifyHandler := handlers.NewVerifyHandler(providers.NewBotCheck(cfg.BotVerifyURL, cfg.BotVerifyKey), logger)
	stationsHandler := handlers.NewStationsHandler(providers.NewTransit(cfg.TransitURL), store, logger)
	geocodeHandler := handlers.NewGeocodeHandler(providers.NewGeocode(cfg.GeocodeURL, cfg.GeocodeAPIKey), logger)

	mux := ops.NewMux(checks...)
	mux.HandleFunc("/api/v1/availability", availabilityHandler.Get)
	mux.HandleFunc("/api/v1/assessments/estimate", assessmentHandler.Estimate)
	mux.HandleFunc("/api/v1/assessments/", assessmentHandler.Get)
	mux.HandleFunc("/api/v1/bookings", bookingHandler.Create)
	mux.HandleFunc("/api/v1/payments/link", paymentHandler.CreateLink)
	mux.HandleFunc("/api/v1/otp/request", otpHandler.Request)
	mux.HandleFunc("/api/v1/otp/verify", otpHandler.Verify)
	mux.HandleFunc("/api/v1/verify-human", verifyHandler.Check)
	mux.HandleFunc("/api/v1/bts/stations", stationsHandler.List)
	mux.HandleFunc("/api/v1/geocode/reverse", geocodeHandler.Reverse)

	var rateLimitMW httpx.Middleware
	if rdb != nil {
		rl := httpx.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, cfg.RateLimitFailOpen)
		logger.Info("rate limiting enabled (redis)", "per_minute", cfg.RateLimitPerMinute)
	} else {
		rl := httpx.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", cfg.RateLimitPerMinute)
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(cfg.BodyLimitBytes),
		httpx.WithTimeout(cfg.RequestTimeout),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "assessment-api")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
