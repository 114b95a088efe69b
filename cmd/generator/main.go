package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commercegen/config"
	"commercegen/internal/bootstrap"
	"commercegen/internal/delivery"
	"commercegen/internal/factory"
	"commercegen/internal/models"
	"commercegen/internal/pool"
	"commercegen/internal/scheduler"
	"commercegen/internal/sink"
	"commercegen/internal/store"
	"commercegen/internal/util"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting commerce event generator")

	tp, err := util.InitTracer("commercegen", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	bootstrapper := bootstrap.New(db, gofakeit.New(0), rng)

	refPool, err := runBootstrap(context.Background(), bootstrapper, cfg)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	eventSink, closeSink, err := buildSink(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize %s sink: %v", cfg.Sink.Kind, err)
	}
	defer closeSink()
	log.Printf("Sink initialized: %s", cfg.Sink.Kind)

	pipeline := delivery.NewPipeline(eventSink)

	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()

	sched := scheduler.New(buildStreams(refPool, pipeline, cfg, logger))
	go func() {
		if err := sched.Run(schedCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Scheduler stopped unexpectedly", zap.Error(err))
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down generator...")

	schedCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Generator exited")
}

// runBootstrap fills the reference pool, inserting a fresh universe or
// rehydrating the persisted one depending on configuration. A failure
// here is fatal to the caller: sampling from a partial pool would emit
// events with dangling references.
func runBootstrap(ctx context.Context, b *bootstrap.Bootstrapper, cfg *config.Config) (*pool.ReferencePool, error) {
	if cfg.Sink.BootstrapMode == "rehydrate" {
		return b.Rehydrate(ctx)
	}
	return b.Run(ctx, bootstrap.Counts{
		Customers: cfg.Pool.Customers,
		Sellers:   cfg.Pool.Sellers,
		Products:  cfg.Pool.Products,
		Listings:  cfg.Pool.Listings,
	})
}

func buildSink(cfg *config.Config, db *store.Store) (delivery.Sink, func(), error) {
	switch cfg.Sink.Kind {
	case "redis":
		s, err := sink.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case "postgres":
		return sink.NewStoreWriter(db), func() {}, nil

	default:
		s := sink.NewKafka(cfg.Kafka.Brokers, map[string]string{
			models.StreamOrders:      cfg.Kafka.TopicOrders,
			models.StreamStock:       cfg.Kafka.TopicStock,
			models.StreamClickstream: cfg.Kafka.TopicClickstream,
		})
		return s, func() { _ = s.Close() }, nil
	}
}

// buildStreams wires one factory per stream so the streams never share
// a rand source while firing concurrently.
func buildStreams(refPool *pool.ReferencePool, pipeline *delivery.Pipeline, cfg *config.Config, logger *zap.Logger) []scheduler.Stream {
	newFactory := func() *factory.Factory {
		return factory.New(refPool, gofakeit.New(0), rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	fire := func(stream string, build func() (models.Event, error)) func(ctx context.Context) {
		return func(ctx context.Context) {
			event, err := build()
			if err != nil {
				if errors.Is(err, pool.ErrEmptyPool) {
					// Bootstrap guarantees non-empty pools; this is a bug.
					logger.Fatal("Sampled an empty reference pool",
						zap.String("stream", stream), zap.Error(err))
				}
				logger.Error("Failed to build event",
					zap.String("stream", stream), zap.Error(err))
				return
			}
			util.EventsBuiltTotal.WithLabelValues(stream).Inc()
			pipeline.Deliver(ctx, stream, event)
		}
	}

	ordersFactory := newFactory()
	stockFactory := newFactory()
	clickFactory := newFactory()

	return []scheduler.Stream{
		{
			Name:     models.StreamOrders,
			Interval: cfg.Streams.OrdersInterval,
			Fire: fire(models.StreamOrders, func() (models.Event, error) {
				return ordersFactory.BuildOrder()
			}),
		},
		{
			Name:     models.StreamStock,
			Interval: cfg.Streams.StockInterval,
			Fire: fire(models.StreamStock, func() (models.Event, error) {
				return stockFactory.BuildStock()
			}),
		},
		{
			Name:     models.StreamClickstream,
			Interval: cfg.Streams.ClickstreamInterval,
			Fire: fire(models.StreamClickstream, func() (models.Event, error) {
				return clickFactory.BuildClickstream()
			}),
		},
	}
}
