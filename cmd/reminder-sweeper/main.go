package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	config "github.com/AdrianMoldovan/Mentenix/internal/config/sweeper"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
	"github.com/AdrianMoldovan/Mentenix/internal/obs"
	"github.com/AdrianMoldovan/Mentenix/internal/repository/fcm"
	kafkaRepo "github.com/AdrianMoldovan/Mentenix/internal/repository/kafka"
	pg "github.com/AdrianMoldovan/Mentenix/internal/repository/postgres"
	"github.com/AdrianMoldovan/Mentenix/internal/services/sweeper"
	"github.com/AdrianMoldovan/Mentenix/internal/services/sweeper/repo"
)

func main() {
	// init
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig())
	if err != nil {
		log.Fatal(err)
	}
	l.Info("starting reminder-sweeper",
		zap.Duration("tick", cfg.Sweep.Tick),
		zap.String("metrics_addr", cfg.Sweep.MetricsAddr),
		zap.Bool("kafka_enabled", cfg.Kafka.Enable),
	)

	// otel
	otelCloser, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	// db
	db, err := pg.NewDB(ctx, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// push transport
	subs := pg.NewSubscriptionRepo(db)
	sender, err := fcm.NewSender(ctx, cfg.FCM, subs, l)
	if err != nil {
		l.Fatal("fcm init", zap.Error(err))
	}

	// events
	events := repo.Events{}
	if cfg.Kafka.Enable {
		prod := kafkaRepo.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic).WithLogger(l)
		defer func() { _ = prod.Close() }()
		events = repo.Events{P: kafkaRepo.NewReminderEventsKafka(prod)}
	}

	// run metrics server
	ms := obs.BootstrapMetricsServer(cfg.Sweep.MetricsAddr, func(ctx context.Context) error {
		hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		return db.Pool.Ping(hctx)
	}, l)

	// wiring
	uc := sweeper.NewUC(
		repo.PolicySource{R: pg.NewPolicyRepo(db)},
		repo.OrderSource{R: pg.NewWorkOrderRepo(db)},
		repo.RecipientDirectory{R: pg.NewDirectoryRepo(db)},
		repo.ReminderLedger{R: pg.NewLedgerRepo(db)},
		events,
		sweeper.NewEvaluator(l),
		sweeper.NewDispatcher(sender, cfg.Sweep.DispatchTimeout, l),
		push.SystemClock{},
		l,
		cfg.Sweep.MaxParallel,
	)
	runner := sweeper.New(l, uc, &cfg.Sweep)

	// run
	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(ctx) }()

	l.Info("reminder-sweeper started")

	// loop
	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("runner error", zap.Error(err))
		}
	}

	// graceful shutdown
	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}
