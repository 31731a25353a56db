package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rickgao/polymarket-data/internal/collector"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/model"
)

// historyRow is the per-event summary served to the history table.
type historyRow struct {
	EventID        string     `json:"event_id"`
	Title          string     `json:"title"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Status         string     `json:"status"`
	MaxProbability *float64   `json:"max_probability"`
	MinProbability *float64   `json:"min_probability"`
	TotalVolume    *float64   `json:"total_volume"`
}

// GET /events/history?tag_id=&event_id=&days=
//
// Read-through to the provider: summarizes one market's current listing
// record without touching the local stores.
func (s *Server) eventHistory(c *gin.Context) {
	tagID := c.Query("tag_id")
	eventID := c.Query("event_id")
	daysParam := c.Query("days")
	if tagID == "" || eventID == "" || daysParam == "" {
		abortWithDetail(c, http.StatusBadRequest, "tag_id, event_id, and days are required")
		return
	}
	if parseDays(daysParam) == 0 {
		abortWithDetail(c, http.StatusBadRequest, "days must be numeric")
		return
	}

	raw, err := s.provider.FetchMarketByID(c.Request.Context(), eventID)
	if err != nil {
		s.logger.Error("market lookup failed", "event_id", eventID, "err", err)
		abortWithDetail(c, http.StatusBadGateway, "market lookup failed")
		return
	}
	if raw == nil {
		abortWithDetail(c, http.StatusNotFound, "Market not found for event_id")
		return
	}

	c.JSON(http.StatusOK, []historyRow{summarizeMarket(raw)})
}

// summarizeMarket condenses a raw listing record into one history row.
func summarizeMarket(raw *gamma.RawMarket) historyRow {
	title := raw.Question
	if title == "" {
		title = raw.Title
	}

	// Resolved wins over closed; closed wins over active.
	status := model.StatusActive
	if raw.Closed {
		status = model.StatusClosed
	}
	if raw.Resolved {
		status = model.StatusResolved
	}

	row := historyRow{
		EventID:   string(raw.ID),
		Title:     title,
		StartTime: collector.ParseTimestamp(firstNonEmpty(raw.StartDate, raw.StartDateSnake)),
		EndTime:   collector.ParseTimestamp(firstNonEmpty(raw.EndDate, raw.EndDateSnake)),
		Status:    status,
	}

	row.MinProbability, row.MaxProbability = priceBounds(raw)

	if volume := firstNonZero(float64(raw.Volume), float64(raw.VolumeNum), float64(raw.VolumeSnake)); volume != 0 {
		row.TotalVolume = &volume
	}

	return row
}

// priceBounds extracts min and max over the record's outcome prices,
// skipping unparsable entries. Both nil when no price parses.
func priceBounds(raw *gamma.RawMarket) (minP, maxP *float64) {
	outcomes := raw.OutcomePrices
	if len(outcomes) == 0 {
		outcomes = raw.OutcomePricesSnake
	}

	for _, entry := range outcomes {
		price, ok := gamma.ParsePriceString(entry)
		if !ok {
			continue
		}
		if minP == nil || price < *minP {
			p := price
			minP = &p
		}
		if maxP == nil || price > *maxP {
			p := price
			maxP = &p
		}
	}
	return minP, maxP
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
