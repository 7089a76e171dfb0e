package services

import (
	"ReframeGo/models"
	"ReframeGo/store"
	"ReframeGo/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrValidation marks malformed or out-of-bounds input; handlers map it
// to a 400.
var ErrValidation = errors.New("invalid input")

// EventService is the write/read pipeline: validate, enrich with an
// emotion label when the classifier answers in time, persist, query.
type EventService struct {
	store      *store.EventStore
	classifier EmotionClassifier
	logger     *zap.SugaredLogger
}

// NewEventService wires the pipeline. classifier may be nil, in which
// case events are stored without labels.
func NewEventService(st *store.EventStore, classifier EmotionClassifier, logger *zap.SugaredLogger) *EventService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EventService{
		store:      st,
		classifier: classifier,
		logger:     logger,
	}
}

// LogEvent validates the input, asks the classifier for an emotion
// label (best effort), and writes the event. A classifier failure of
// any kind is logged and swallowed; it never fails the write.
func (s *EventService) LogEvent(ctx context.Context, userID string, req models.LogEventRequest) (*models.Event, error) {
	trigger := strings.TrimSpace(req.Trigger)
	behavior := strings.TrimSpace(req.Behavior)
	reflection := strings.TrimSpace(req.Reflection)

	if trigger == "" || behavior == "" {
		return nil, fmt.Errorf("%w: trigger and behavior must not be empty", ErrValidation)
	}
	if req.Severity < models.SeverityMin || req.Severity > models.SeverityMax {
		return nil, fmt.Errorf("%w: severity must be between %d and %d",
			ErrValidation, models.SeverityMin, models.SeverityMax)
	}

	event := &models.Event{
		ID:         utils.GenerateID(),
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
		Trigger:    trigger,
		Behavior:   behavior,
		Severity:   req.Severity,
		Reflection: reflection,
	}

	if s.classifier != nil {
		text := behavior
		if reflection != "" {
			text = behavior + " " + reflection
		}
		if label, err := s.classifier.Classify(ctx, text); err != nil {
			// Operator-facing only; the caller never sees this.
			s.logger.Warnw("emotion classification skipped",
				"error", err,
				"userID", userID,
			)
		} else {
			event.Emotion = &label.Label
			event.EmotionConfidence = &label.Confidence
		}
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// QueryEvents returns the user's events matching the filter, timestamp
// ascending. The user id is always part of the query.
func (s *EventService) QueryEvents(ctx context.Context, userID string, filter store.EventFilter) ([]models.Event, error) {
	return s.store.ListEvents(ctx, userID, filter)
}

// DeleteEvent removes one of the user's events. False means the event
// does not exist or belongs to someone else; the store is unchanged.
func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID string) (bool, error) {
	return s.store.DeleteEvent(ctx, userID, eventID)
}

// DeleteAccount removes the user and all owned events.
func (s *EventService) DeleteAccount(ctx context.Context, userID string) error {
	return s.store.DeleteUser(ctx, userID)
}
