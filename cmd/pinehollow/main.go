package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinehollow/internal/app/commands"
	availabilityapp "pinehollow/internal/app/handlers/availability"
	reservationsapp "pinehollow/internal/app/handlers/reservations"
	appoutbox "pinehollow/internal/app/outbox"
	"pinehollow/internal/app/queries"
	"pinehollow/internal/app/session"
	"pinehollow/internal/domain/reservation"
	"pinehollow/internal/domain/shared/money"
	kafkabroker "pinehollow/internal/infra/broker/kafka"
	"pinehollow/internal/infra/config"
	mongodb "pinehollow/internal/infra/db/mongo"
	ginserver "pinehollow/internal/infra/http/gin"
	"pinehollow/internal/infra/obs"
	infraoutbox "pinehollow/internal/infra/outbox"
	"pinehollow/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger := obs.NewLogger("dev")
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	nightlyRate, err := money.New(cfg.NightlyRateAmount, cfg.Currency)
	if err != nil {
		logger.Error("invalid nightly rate", "error", err)
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.MinStayNights, logger)

	var (
		reservations reservation.Repository
		eventOutbox  appoutbox.Outbox
		coordinator  *session.Coordinator
		background   []func(context.Context)
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo init failed", "error", err)
			os.Exit(1)
		}
		if err := client.Ping(ctx); err != nil {
			logger.Warn("mongo ping failed, continuing", "error", err)
		}
		reservations = mongodb.NewReservationRepository(client.DB)
		store := infraoutbox.NewStore(client.DB)
		eventOutbox = store
		coordinator = session.NewCoordinator(reservations, sessions, cfg.RefreshRetryInterval, logger)

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				logger.Error("kafka producer init failed", "error", err)
				os.Exit(1)
			}
			defer producer.Close()
			worker := &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
				Logger:      logger,
			}
			background = append(background, func(ctx context.Context) {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			})

			consumer, err := kafkabroker.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, nil, kafkabroker.RefreshHandler{
				Coordinator: coordinator,
				Logger:      logger,
			}, logger)
			if err != nil {
				logger.Error("kafka consumer init failed", "error", err)
				os.Exit(1)
			}
			defer consumer.Close()
			topics := []string{cfg.KafkaTopicPrefix + "reservation.events.v1"}
			background = append(background, func(ctx context.Context) {
				if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("kafka consumer stopped", "error", err)
				}
			})
		} else {
			logger.Warn("KAFKA_BROKERS not set, change notifications limited to this process")
		}

	default: // memory
		repo := memory.NewReservationRepository()
		box := memory.NewOutbox()
		reservations = repo
		eventOutbox = box
		coordinator = session.NewCoordinator(reservations, sessions, cfg.RefreshRetryInterval, logger)
		box.OnAdd = func(appoutbox.EventRecord) { coordinator.Resync() }
	}

	background = append(background, func(ctx context.Context) {
		if err := coordinator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("refresh coordinator stopped", "error", err)
		}
	})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationsapp.RequestReservationCommand{}.Key(), &reservationsapp.RequestReservationHandler{
		Reservations:  reservations,
		Outbox:        eventOutbox,
		NightlyRate:   nightlyRate,
		MinStayNights: cfg.MinStayNights,
	})
	commands.RegisterHandler(commandBus, reservationsapp.UpdateStatusCommand{}.Key(), &reservationsapp.UpdateStatusHandler{
		Reservations: reservations,
		Outbox:       eventOutbox,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, reservationsapp.ListReservationsQuery{}.Key(), &reservationsapp.ListReservationsHandler{
		Reservations: reservations,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		Reservations:  reservations,
		MinStayNights: cfg.MinStayNights,
	})

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		StoreReachable: func() bool { return !coordinator.Unreachable() },
	}, ginserver.Handlers{
		Reservation:  ginserver.ReservationHandler{Commands: commandBus, Queries: queryBus},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Session:      ginserver.SessionHandler{Sessions: sessions},
	})

	// Seed the blocked set before accepting traffic.
	coordinator.OnExternalChange(ctx)

	for _, run := range background {
		go run(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}
