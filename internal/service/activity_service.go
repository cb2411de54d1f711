package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

// ActivityService maintains the append-only audit trail.
type ActivityService struct {
	activityRepo repository.Activity
}

func NewActivityService(activityRepo repository.Activity) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// Record appends one event; the repository fills id and timestamp.
func (s *ActivityService) Record(ctx context.Context, e models.ActivityEvent) error {
	return s.activityRepo.Append(ctx, e)
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, from, to, typ)
}
