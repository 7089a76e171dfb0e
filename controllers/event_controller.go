package controllers

import (
	"ReframeGo/config"
	"ReframeGo/models"
	"ReframeGo/services"
	"ReframeGo/store"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// EventController handles logging, listing and deleting events.
type EventController struct {
	service *services.EventService
}

func NewEventController(service *services.EventService) *EventController {
	return &EventController{service: service}
}

// LogEvent records one event for the authenticated user.
func (ec *EventController) LogEvent(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.LogEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.service.LogEvent(c.Request.Context(), uid, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, store.ErrInvalidSeverity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			config.Logger.Errorw("event write failed", "error", err, "userID", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log event"})
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents returns the user's events, timestamp ascending, with
// optional date-range and trigger filters.
func (ec *EventController) ListEvents(c *gin.Context) {
	uid := c.GetString("uid")

	filter, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := ec.service.QueryEvents(c.Request.Context(), uid, filter)
	if err != nil {
		config.Logger.Errorw("event query failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// DeleteEvent removes one event. 404 covers both an unknown event and
// one owned by another user.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	uid := c.GetString("uid")
	eventID := c.Param("id")

	deleted, err := ec.service.DeleteEvent(c.Request.Context(), uid, eventID)
	if err != nil {
		config.Logger.Errorw("event delete failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAccount removes the user and all owned events.
func (ec *EventController) DeleteAccount(c *gin.Context) {
	uid := c.GetString("uid")

	if err := ec.service.DeleteAccount(c.Request.Context(), uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		config.Logger.Errorw("account delete failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}

	c.Status(http.StatusNoContent)
}

// parseEventFilter reads from/to/trigger query params. Timestamps
// accept RFC3339 or a bare date; a bare "to" date covers the whole day.
func parseEventFilter(c *gin.Context) (store.EventFilter, error) {
	var filter store.EventFilter

	if from := c.Query("from"); from != "" {
		t, _, err := parseTimeParam(from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, dateOnly, err := parseTimeParam(to)
		if err != nil {
			return filter, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &t
	}
	filter.Trigger = c.Query("trigger")

	return filter, nil
}

func parseTimeParam(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, errors.New("invalid time format, want RFC3339 or YYYY-MM-DD")
}
