package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/railway_reservation/internal/adapter/cache"
	"github.com/srgjo27/railway_reservation/internal/adapter/handler"
	"github.com/srgjo27/railway_reservation/internal/adapter/notifier"
	"github.com/srgjo27/railway_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/railway_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/railway_reservation/internal/adapter/ticket"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/auth"
	"github.com/srgjo27/railway_reservation/internal/platform/config"
	"github.com/srgjo27/railway_reservation/internal/platform/database"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type repositories struct {
	trains   ports.TrainRepository
	bookings ports.BookingRepository
	users    ports.UserRepository
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			trains:   store.Trains(),
			bookings: store.Bookings(),
			users:    store.Users(),
			close:    func() {},
		}, nil
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, log)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &repositories{
		trains:   postgres.NewTrainRepository(db),
		bookings: postgres.NewBookingRepository(db),
		users:    postgres.NewUserRepository(db),
		close:    func() { db.Close() },
	}, nil
}

func newNotifier(cfg *config.Config, log *logger.Logger) (ports.Notifier, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("no kafka brokers configured, booking notifications are logged only")
		return notifier.NewLogNotifier(log), func() {}
	}

	kn, err := notifier.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if err != nil {
		log.Fatal("failed to create kafka notifier", "error", err)
	}
	log.Info("publishing booking events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)

	return kn, func() {
		if err := kn.Close(); err != nil {
			log.Error("failed to close kafka writer", "error", err)
		}
	}
}

func main() {
	cfg, envLoaded, err := config.Load(".env")

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "railway-reservation",
	})

	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	if !envLoaded {
		log.Info(".env file not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer repos.close()

	log.Info("connecting to redis", "addr", cfg.RedisAddr())
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	log.Info("redis connected")

	seatCache := cache.NewSeatCache(redisClient, cfg.SeatCacheTTL)
	bookingLimiter := cache.NewRateLimiter(redisClient, cfg.BookingRateWindow, cfg.BookingRateLimit)

	bookingNotifier, closeNotifier := newNotifier(cfg, log)
	defer closeNotifier()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	bookingService := services.NewBookingService(services.BookingDeps{
		Trains:   repos.trains,
		Bookings: repos.bookings,
		Users:    repos.users,
		Cache:    seatCache,
		Limiter:  bookingLimiter,
		Notifier: bookingNotifier,
		Log:      log,
	})
	trainService := services.NewTrainService(repos.trains, seatCache, log)
	accountService := services.NewAccountService(repos.users, repos.bookings, seatCache, tokens, log)
	ticketService := services.NewTicketService(bookingService, repos.trains, ticket.NewRenderer())

	if cfg.AdminPassword != "" {
		created, err := accountService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatal("failed to ensure admin account", "error", err)
		}
		if created {
			log.Info("admin account created", "username", cfg.AdminUsername)
		}
	}

	go bookingService.RunNotificationDispatcher(ctx, cfg.NotifyInterval)

	ipLimiter := handler.NewIPRateLimiter(cfg.IPRateLimit, cfg.IPRateBurst, cfg.TrustedProxies, log)
	go ipLimiter.Cleanup(ctx, 10*time.Minute)

	router := handler.NewRouter(handler.RouterDeps{
		Accounts:       handler.NewAccountHandler(accountService, log),
		Trains:         handler.NewTrainHandler(trainService, log),
		Bookings:       handler.NewBookingHandler(bookingService, log),
		Tickets:        handler.NewTicketHandler(ticketService, log),
		Admin:          handler.NewAdminHandler(bookingService, trainService, log),
		Auth:           handler.NewAuthenticator(tokens, log),
		IPLimiter:      ipLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exiting")
}
