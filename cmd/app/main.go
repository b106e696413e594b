package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Domenick1991/weddingvenue/api"
	"github.com/Domenick1991/weddingvenue/config"
	"github.com/Domenick1991/weddingvenue/internal/bootstrap"
	"github.com/Domenick1991/weddingvenue/internal/cache"
	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/idgen"
	"github.com/Domenick1991/weddingvenue/internal/kafka"
	"github.com/Domenick1991/weddingvenue/internal/logger"
	"github.com/Domenick1991/weddingvenue/internal/repository"
	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/booking"
	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
)

func main() {
	envErr := godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if envErr != nil {
		log.Debug().Msg(".env not loaded, using process environment")
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := cache.NewClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	store, closeStore, err := repository.Open(ctx, cfg.Store, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}
	defer closeStore()

	c := catalog.New()
	ids := idgen.New(cfg.Booking.IDStrategy)

	bookingOpts := []booking.BookingServiceOption{booking.WithIDGenerator(ids), booking.WithLogger(log)}
	rsvpOpts := []rsvp.RSVPServiceOption{rsvp.WithIDGenerator(ids), rsvp.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
		rsvpOpts = append(rsvpOpts, rsvp.WithProducer(producer, cfg.Kafka.NotificationsTopic))
	}

	availabilityOpts := []availability.Option{
		availability.WithRandomSource(catalog.NewRandomSource(cfg.Catalog.Seed)),
		availability.WithLogger(log),
	}
	if len(cfg.Catalog.BookedDates) > 0 {
		availabilityOpts = append(availabilityOpts, availability.WithBookedDates(cfg.Catalog.BookedDates))
	}
	if rdb != nil {
		availabilityOpts = append(availabilityOpts, availability.WithCache(cache.NewRedisCache(rdb, cfg.Catalog.CalendarCacheTTL())))
	}

	bookingService := booking.NewBookingService(store, c, bookingOpts...)
	rsvpService := rsvp.NewRSVPService(store, c, rsvpOpts...)
	availabilityService := availability.NewAvailabilityService(c, availabilityOpts...)
	pricingService := pricing.NewCalculator(c)
	dashboardService := dashboard.NewDashboardService(store, c)

	sessions := session.NewManager(
		bookingService,
		rsvpService,
		c,
		session.WithPaymentDelay(cfg.Booking.PaymentDelay()),
		session.WithTTL(cfg.Booking.SessionTTL()),
		session.WithLogger(log),
	)

	router := bootstrap.NewRouter(cfg.HTTP, log, bootstrap.Handlers{
		Catalog:      api.NewCatalogHandler(c, pricingService),
		Availability: api.NewAvailabilityHandler(availabilityService),
		Sessions:     api.NewSessionHandler(sessions, api.NewViewBuilder(c, availabilityService, pricingService, rsvpService, dashboardService)),
		Bookings:     api.NewBookingHandler(bookingService, c),
		RSVPs:        api.NewRSVPHandler(rsvpService),
		Dashboard:    api.NewDashboardHandler(dashboardService),
	})

	if err := bootstrap.Run(ctx, cfg.HTTP, log, router); err != nil {
		log.Error().Err(err).Msg("server error")
	}

	// Let pending payment timers persist their bookings before the store closes.
	sessions.Wait()
	log.Info().Msg("stopped")
}
