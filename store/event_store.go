package store

import (
	"ReframeGo/models"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing row and a row owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint is violated,
	// e.g. signing up with an email that already exists.
	ErrConflict = errors.New("already exists")
	// ErrInvalidSeverity is returned for severity outside 1..10.
	ErrInvalidSeverity = errors.New("severity out of bounds")
)

// EventFilter narrows ListEvents. Nil/empty fields are ignored.
type EventFilter struct {
	From    *time.Time
	To      *time.Time
	Trigger string
}

// EventStore is the relational persistence layer for users and events.
// It holds the injected DB handle; nothing here reaches for globals.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// CreateUser inserts a new account. The email is unique across users.
func (s *EventStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// FindUserByEmail looks an account up for login.
func (s *EventStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns the account for an authenticated user id.
func (s *EventStore) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateEvent inserts one event row. The owning user must exist and the
// severity must be within bounds; nothing is written otherwise.
func (s *EventStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Severity < models.SeverityMin || event.Severity > models.SeverityMax {
		return ErrInvalidSeverity
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", event.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	return s.db.WithContext(ctx).Create(event).Error
}

// ListEvents returns the user's events matching the filter, ordered by
// timestamp ascending. The user id is always part of the query; there
// is no unscoped read path.
func (s *EventStore) ListEvents(ctx context.Context, userID string, filter EventFilter) ([]models.Event, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.From != nil {
		q = q.Where("timestamp >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("timestamp <= ?", filter.To.UTC())
	}
	if filter.Trigger != "" {
		// trigger is a reserved word in sqlite, quote it
		q = q.Where(`"trigger" = ?`, filter.Trigger)
	}

	var events []models.Event
	if err := q.Order("timestamp ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes one event if and only if it belongs to userID.
// Returns false both for a missing row and for someone else's row.
func (s *EventStore) DeleteEvent(ctx context.Context, userID, eventID string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteUser removes the account and all of its events in one
// transaction.
func (s *EventStore) DeleteUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// isUniqueViolation matches duplicate-key errors from postgres (23505)
// and from sqlite, which the tests run on.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
