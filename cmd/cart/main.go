package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/HikkiElf/cart-manager/internal/config"
	pkgdb "github.com/HikkiElf/cart-manager/internal/db"
	"github.com/HikkiElf/cart-manager/internal/httpserver"
	"github.com/HikkiElf/cart-manager/internal/logging"
	"github.com/HikkiElf/cart-manager/internal/metrics"
	loggingmw "github.com/HikkiElf/cart-manager/internal/middleware/logging"
	"github.com/HikkiElf/cart-manager/internal/mykafka"
	"github.com/HikkiElf/cart-manager/internal/repo"
	"github.com/HikkiElf/cart-manager/internal/schema"
	"github.com/HikkiElf/cart-manager/internal/service"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DSN())
	if err != nil {
		cancel()
		log.Fatalf("db open %s: %v", cfg.RedactedDSN(), err)
	}
	err = schema.Run(initCtx, db, cfg.SchemaBootstrapLenient, logger)
	cancel()
	if err != nil {
		_ = pkgdb.Close(db)
		log.Fatalf("schema bootstrap: %v", err)
	}

	var events service.Publisher = mykafka.NopPublisher{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaCartTopic)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		events = producer
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cartService := &service.CartService{
		Repo:    &repo.GormRepo{DB: db},
		Events:  events,
		Metrics: metrics.New(reg),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: cartService},
		Ready:          func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("cart listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdown(srv, db, producer)
	logger.Info("cart stopped")
}

func shutdown(srv *http.Server, db *gorm.DB, producer *mykafka.Producer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		slog.Error("db close error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			slog.Error("kafka close error", "error", err)
		}
	}
}
