package controllers

import (
	"ReframeGo/config"
	"ReframeGo/models"
	"ReframeGo/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AnalyticsController serves aggregate views and file exports. Both
// fetch the filtered events once and hand them to the pure aggregation
// functions.
type AnalyticsController struct {
	service *services.EventService
}

func NewAnalyticsController(service *services.EventService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// GetAnalytics returns the three chart datasets: daily counts with
// average severity, trigger frequencies, and emotion frequencies.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	uid := c.GetString("uid")

	filter, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := ac.service.QueryEvents(c.Request.Context(), uid, filter)
	if err != nil {
		config.Logger.Errorw("analytics query failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, models.AnalyticsResponse{
		DailyCounts: services.AggregateByDay(events),
		TopTriggers: services.AggregateByTrigger(events),
		Emotions:    services.AggregateByEmotion(events),
	})
}

// Export streams the user's data as CSV (raw rows) or PDF (aggregate
// summary), selected by ?format=.
func (ac *AnalyticsController) Export(c *gin.Context) {
	uid := c.GetString("uid")

	filter, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := ac.service.QueryEvents(c.Request.Context(), uid, filter)
	if err != nil {
		config.Logger.Errorw("export query failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export events"})
		return
	}

	switch c.Query("format") {
	case "csv":
		data, err := services.EventsToCSV(events)
		if err != nil {
			config.Logger.Errorw("csv render failed", "error", err, "userID", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="events.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		summary := services.ExportSummary{
			GeneratedAt: time.Now().UTC(),
			Days:        services.AggregateByDay(events),
			Triggers:    services.AggregateByTrigger(events),
			Emotions:    services.AggregateByEmotion(events),
		}
		data, err := services.SummaryToPDF(summary)
		if err != nil {
			config.Logger.Errorw("pdf render failed", "error", err, "userID", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="summary.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or pdf"})
	}
}
