package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	accounthandler "pezkuwi/internal/account/handler"
	accountmetrics "pezkuwi/internal/account/metrics"
	accountservice "pezkuwi/internal/account/service"
	accountstore "pezkuwi/internal/account/store"
	"pezkuwi/internal/audit"
	audithandler "pezkuwi/internal/audit/handler"
	"pezkuwi/internal/audit/sink"
	auditstore "pezkuwi/internal/audit/store"
	educationhandler "pezkuwi/internal/education/handler"
	educationmetrics "pezkuwi/internal/education/metrics"
	educationservice "pezkuwi/internal/education/service"
	educationstore "pezkuwi/internal/education/store"
	featureshandler "pezkuwi/internal/features/handler"
	featuresmetrics "pezkuwi/internal/features/metrics"
	featuresservice "pezkuwi/internal/features/service"
	governancehandler "pezkuwi/internal/governance/handler"
	governancemetrics "pezkuwi/internal/governance/metrics"
	"pezkuwi/internal/governance/resolver"
	governanceservice "pezkuwi/internal/governance/service"
	governancestore "pezkuwi/internal/governance/store"
	httpapi "pezkuwi/internal/http"
	"pezkuwi/internal/platform/config"
	"pezkuwi/internal/platform/httpserver"
	"pezkuwi/internal/platform/logger"
	"pezkuwi/internal/platform/metrics"
	"pezkuwi/internal/platform/middleware"
	"pezkuwi/internal/platform/migrations"
	"pezkuwi/internal/platform/postgres"
	"pezkuwi/internal/platform/redis"
	transferhandler "pezkuwi/internal/transfer/handler"
	transfermetrics "pezkuwi/internal/transfer/metrics"
	transferservice "pezkuwi/internal/transfer/service"
	transferstore "pezkuwi/internal/transfer/store"
	trusthandler "pezkuwi/internal/trustscore/handler"
	trustmetrics "pezkuwi/internal/trustscore/metrics"
	trustservice "pezkuwi/internal/trustscore/service"
	verificationhandler "pezkuwi/internal/verification/handler"
	verificationmetrics "pezkuwi/internal/verification/metrics"
	verificationservice "pezkuwi/internal/verification/service"
	"pezkuwi/pkg/platform/keylock"
	txcontext "pezkuwi/pkg/platform/tx"
)

// auditBuffer bounds the queue between the publisher and the Kafka worker.
const auditBuffer = 1024

type accountStore interface {
	accountservice.Store
	verificationservice.Accounts
	transferservice.Accounts
	governanceservice.Accounts
	educationservice.Accounts
	featuresservice.Accounts
	trustservice.Accounts
}

type proposalStore interface {
	governanceservice.Store
	trustservice.VoteCounter
}

type courseStore interface {
	educationservice.Store
	trustservice.CompletionCounter
}

type stores struct {
	accounts     accountStore
	transactions transferservice.Store
	proposals    proposalStore
	courses      courseStore
	audit        audit.Store
	runner       txcontext.Runner
	db           *sqlx.DB
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	var readiness []httpapi.Check
	if st.db != nil {
		readiness = append(readiness, httpapi.Check{Name: "postgres", Ping: st.db.PingContext})
	}

	var locker keylock.Locker = keylock.NewSharded(0)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = keylock.NewRedis(redisClient.Client, cfg.Redis.LockTTL)
		readiness = append(readiness, httpapi.Check{Name: "redis", Ping: redisClient.Health})
		log.Info("wallet locks shared through redis")
	}

	g, gctx := errgroup.WithContext(ctx)

	publisherOpts := []audit.Option{audit.WithLogger(log)}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafka, err := sink.NewKafka(brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		if err := kafka.EnsureTopic(ctx, int32(cfg.Kafka.Partitions), int16(cfg.Kafka.ReplicationFactor)); err != nil {
			return err
		}
		forward := make(chan audit.Event, auditBuffer)
		publisherOpts = append(publisherOpts, audit.WithForwarding(forward))
		readiness = append(readiness, httpapi.Check{Name: "kafka", Ping: kafka.Ping})
		worker := audit.NewWorker(kafka, forward, log)
		g.Go(func() error { return ignoreCanceled(worker.Run(gctx)) })
		log.Info("audit events forwarded to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	publisher := audit.NewPublisher(st.audit, publisherOpts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	trust := trustservice.New(st.accounts, st.proposals, st.courses,
		trustservice.WithLogger(log),
		trustservice.WithMetrics(trustmetrics.New(reg)),
	)
	account := accountservice.New(st.accounts,
		accountservice.WithLogger(log),
		accountservice.WithAuditPublisher(publisher),
		accountservice.WithMetrics(accountmetrics.New(reg)),
	)
	verification := verificationservice.New(st.accounts, trust, st.runner,
		verificationservice.WithLogger(log),
		verificationservice.WithAuditPublisher(publisher),
		verificationservice.WithMetrics(verificationmetrics.New(reg)),
	)
	transfer := transferservice.New(st.accounts, st.transactions, st.runner,
		transferservice.WithLogger(log),
		transferservice.WithAuditPublisher(publisher),
		transferservice.WithMetrics(transfermetrics.New(reg)),
		transferservice.WithLocker(locker),
	)
	governance := governanceservice.New(st.accounts, st.proposals, st.runner,
		governanceservice.WithLogger(log),
		governanceservice.WithAuditPublisher(publisher),
		governanceservice.WithMetrics(governancemetrics.New(reg)),
		governanceservice.WithTrustRefresher(trust),
	)
	education := educationservice.New(st.accounts, st.courses, st.runner,
		educationservice.WithLogger(log),
		educationservice.WithAuditPublisher(publisher),
		educationservice.WithMetrics(educationmetrics.New(reg)),
		educationservice.WithTrustRefresher(trust),
	)
	features := featuresservice.New(st.accounts, featuresservice.WithMetrics(featuresmetrics.New(reg)))

	if cfg.Server.SeedDemoData {
		if err := governance.Seed(ctx, governancestore.DemoProposals(time.Now().UTC())); err != nil {
			return fmt.Errorf("seed proposals: %w", err)
		}
		if err := education.Seed(ctx, educationstore.DemoCourses()); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
		log.Info("demo proposals and courses seeded")
	}

	sweeper, err := resolver.New(governance, cfg.Governance.ResolveSchedule, log)
	if err != nil {
		return err
	}
	g.Go(func() error { return ignoreCanceled(sweeper.Run(gctx)) })

	httpMetrics := metrics.New(reg)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log,
		middleware.WithRateLimitMetrics(httpMetrics),
	)
	g.Go(func() error { return ignoreCanceled(limiter.Run(gctx)) })

	router := httpapi.NewRouter(httpapi.Config{
		Logger:         log,
		Gatherer:       reg,
		Metrics:        httpMetrics,
		RateLimiter:    limiter,
		RequestTimeout: cfg.Server.RequestTimeout,
		Readiness:      readiness,
	},
		accounthandler.New(account, log),
		verificationhandler.New(verification, log),
		trusthandler.New(trust, log),
		transferhandler.New(transfer, log),
		governancehandler.New(governance, log),
		educationhandler.New(education, log),
		featureshandler.New(features, log),
		audithandler.New(publisher, log),
	)

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)
	g.Go(func() error {
		log.Info("starting pezkuwi api", "addr", cfg.Server.Addr, "storage", cfg.Storage.Driver)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg config.Storage, log *slog.Logger) (*stores, error) {
	if cfg.Driver != config.DriverPostgres {
		log.Info("using in-memory storage; data is lost on restart")
		return &stores{
			accounts:     accountstore.NewInMemory(),
			transactions: transferstore.NewInMemory(),
			proposals:    governancestore.NewInMemory(),
			courses:      educationstore.NewInMemory(),
			audit:        auditstore.NewInMemory(),
			runner:       txcontext.NewMemoryRunner(),
		}, nil
	}

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return nil, err
	}
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		accounts:     accountstore.NewPostgres(db),
		transactions: transferstore.NewPostgres(db),
		proposals:    governancestore.NewPostgres(db),
		courses:      educationstore.NewPostgres(db),
		audit:        auditstore.NewPostgres(db),
		runner:       txcontext.NewPostgresRunner(db, cfg.TxTimeout),
		db:           db,
	}, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
