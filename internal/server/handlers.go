package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rickgao/polymarket-data/internal/collector"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/sampler"
)

// abortWithDetail writes the error payload shape the dashboard expects.
func abortWithDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

// parseDays parses an optional positive day count. Non-numeric or
// non-positive input counts as absent.
func parseDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0
	}
	return days
}

func (s *Server) homepage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboardHTML)
}

// POST /ingest/events?category=&event_id=&days=
func (s *Server) ingestEvents(c *gin.Context) {
	opts := collector.Options{
		Category: c.Query("category"),
		EventID:  c.Query("event_id"),
		Days:     parseDays(c.Query("days")),
	}

	events, err := s.collector.Collect(c.Request.Context(), opts)
	if err != nil {
		s.logger.Error("collection failed", "err", err)
		abortWithDetail(c, http.StatusBadGateway, "collection failed")
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	c.JSON(http.StatusOK, events)
}

// POST /ingest/price/:event_id
func (s *Server) ingestPrice(c *gin.Context) {
	eventID := c.Param("event_id")

	event, ok := s.store.Events.Get(eventID)
	if !ok {
		abortWithDetail(c, http.StatusNotFound, "Event not found")
		return
	}

	point, err := s.sampler.SampleEvent(c.Request.Context(), event)
	if err != nil {
		s.logger.Error("price ingest failed", "event_id", eventID, "err", err)
		abortWithDetail(c, http.StatusBadGateway, "price fetch failed")
		return
	}

	c.JSON(http.StatusOK, point)
}

// GET /events?category=
func (s *Server) listEvents(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = s.cfg.Collector.Category
	}

	events := s.store.Events.ListByCategory(category)
	if events == nil {
		events = []model.Event{}
	}

	c.JSON(http.StatusOK, events)
}

// GET /events/:event_id
func (s *Server) getEvent(c *gin.Context) {
	event, ok := s.store.Events.Get(c.Param("event_id"))
	if !ok {
		abortWithDetail(c, http.StatusNotFound, "Event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /events/:event_id/analytics
func (s *Server) getEventAnalytics(c *gin.Context) {
	result, ok := s.analytics.Get(c.Param("event_id"))
	if !ok {
		abortWithDetail(c, http.StatusNotFound, "Event not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /events/price-sample?event_id=
func (s *Server) samplePrice(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		abortWithDetail(c, http.StatusBadRequest, "event_id is required")
		return
	}

	point, err := s.sampler.SampleMarket(c.Request.Context(), eventID)
	switch {
	case errors.Is(err, sampler.ErrMarketNotFound):
		abortWithDetail(c, http.StatusNotFound, "Market not found for event_id")
		return
	case errors.Is(err, sampler.ErrNoTokenID):
		abortWithDetail(c, http.StatusNotFound, "No clob token id available")
		return
	case err != nil:
		s.logger.Error("price sample failed", "event_id", eventID, "err", err)
		abortWithDetail(c, http.StatusBadGateway, "price fetch failed")
		return
	}

	c.JSON(http.StatusOK, point)
}

// GET /events/price-history?event_id=
func (s *Server) priceHistory(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		abortWithDetail(c, http.StatusBadRequest, "event_id is required")
		return
	}

	points := s.store.Prices.ListForMarket(eventID)
	if points == nil {
		points = []model.PricePoint{}
	}

	c.JSON(http.StatusOK, points)
}

// tagOption is one entry in the tag selector.
type tagOption struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// GET /options/tags
func (s *Server) listTags(c *gin.Context) {
	allTags, err := s.provider.FetchTags(c.Request.Context())
	if err != nil {
		s.logger.Error("tag listing failed", "err", err)
		abortWithDetail(c, http.StatusBadGateway, "tag listing failed")
		return
	}

	filtered := make([]tagOption, 0)
	for _, tag := range allTags {
		if tag.Slug == "" || !strings.Contains(strings.ToLower(tag.Slug), "crypto") {
			continue
		}
		filtered = append(filtered, tagOption{ID: string(tag.ID), Slug: tag.Slug})
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Slug < filtered[j].Slug })

	c.JSON(http.StatusOK, filtered)
}

// eventOption is one entry in the event selector.
type eventOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GET /options/events?tag_id=
func (s *Server) listEventsByTag(c *gin.Context) {
	tagID := strings.TrimSpace(c.Query("tag_id"))
	if tagID == "" {
		abortWithDetail(c, http.StatusBadRequest, "tag_id is required")
		return
	}

	notClosed := false
	raws, err := s.provider.FetchEventsByTag(c.Request.Context(), gamma.EventsQuery{
		TagID:  tagID,
		Active: true,
		Closed: &notClosed,
	})
	if err != nil {
		s.logger.Error("tag event listing failed", "tag_id", tagID, "err", err)
		abortWithDetail(c, http.StatusBadGateway, "event listing failed")
		return
	}

	options := make([]eventOption, 0, len(raws))
	for _, raw := range raws {
		id := string(raw.ID)
		if id == "" {
			continue
		}
		title := raw.Question
		if title == "" {
			title = raw.Title
		}
		options = append(options, eventOption{ID: id, Title: title})
	}

	c.JSON(http.StatusOK, options)
}

// cryptoEventOption is the trimmed event shape for the dashboard.
type cryptoEventOption struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	TokenID string `json:"token_id"`
	Status  string `json:"status"`
}

// GET /options/crypto-events?days=&tag_id=
func (s *Server) listCryptoEvents(c *gin.Context) {
	opts := collector.Options{
		Category: s.cfg.Collector.BroadCategory,
		Days:     parseDays(c.Query("days")),
		TagID:    strings.TrimSpace(c.Query("tag_id")),
	}

	events, err := s.collector.Collect(c.Request.Context(), opts)
	if err != nil {
		s.logger.Error("crypto event collection failed", "err", err)
		abortWithDetail(c, http.StatusBadGateway, "collection failed")
		return
	}

	options := make([]cryptoEventOption, 0, len(events))
	for _, event := range events {
		options = append(options, cryptoEventOption{
			EventID: event.EventID,
			Title:   event.Title,
			TokenID: event.TokenID,
			Status:  event.Status,
		})
	}

	c.JSON(http.StatusOK, options)
}
