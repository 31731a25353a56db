package server

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/polymarket-data/internal/collector"
	"github.com/rickgao/polymarket-data/internal/config"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/store"
)

//go:embed dashboard.html
var dashboardHTML []byte

// EventCollector runs one collection pass. Satisfied by
// *collector.Collector.
type EventCollector interface {
	Collect(ctx context.Context, opts collector.Options) ([]model.Event, error)
}

// PriceSampler records one price observation. Satisfied by
// *sampler.Sampler.
type PriceSampler interface {
	SampleEvent(ctx context.Context, event model.Event) (model.PricePoint, error)
	SampleMarket(ctx context.Context, marketID string) (model.PricePoint, error)
}

// AnalyticsSource serves per-event analytics. Satisfied by
// *analytics.Aggregator.
type AnalyticsSource interface {
	Get(eventID string) (model.EventAnalytics, bool)
}

// Provider covers the read-through routes that go straight to the
// upstream API. Satisfied by *gamma.Client.
type Provider interface {
	FetchTags(ctx context.Context) ([]gamma.Tag, error)
	FetchEventsByTag(ctx context.Context, q gamma.EventsQuery) ([]gamma.RawMarket, error)
	FetchMarketByID(ctx context.Context, id string) (*gamma.RawMarket, error)
}

// Server is the HTTP facade over the pipeline.
type Server struct {
	cfg       *config.ServiceConfig
	collector EventCollector
	sampler   PriceSampler
	analytics AnalyticsSource
	provider  Provider
	store     *store.Store
	logger    *slog.Logger

	httpServer *http.Server
}

// New creates a Server and registers its routes.
func New(
	cfg *config.ServiceConfig,
	col EventCollector,
	smp PriceSampler,
	agg AnalyticsSource,
	provider Provider,
	st *store.Store,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		collector: col,
		sampler:   smp,
		analytics: agg,
		provider:  provider,
		store:     st,
		logger:    logger,
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	s.registerRoutes(router)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/", s.homepage)

	router.POST("/ingest/events", s.ingestEvents)
	router.POST("/ingest/price/:event_id", s.ingestPrice)

	router.GET("/events", s.listEvents)
	router.GET("/events/history", s.eventHistory)
	router.GET("/events/price-history", s.priceHistory)
	router.POST("/events/price-sample", s.samplePrice)
	router.GET("/events/:event_id", s.getEvent)
	router.GET("/events/:event_id/analytics", s.getEventAnalytics)

	router.GET("/options/tags", s.listTags)
	router.GET("/options/events", s.listEventsByTag)
	router.GET("/options/crypto-events", s.listCryptoEvents)

	if s.cfg.Metrics.Enabled {
		router.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
