package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/backend/internal/models"
)

const (
	creationEventDescription = "Issue reported and filed."
	systemActor              = "system"
)

// InvalidTransitionError is returned when a status change violates the
// transition graph. Resolved is terminal: once an issue is resolved no further
// transitions are accepted.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// Lifecycle owns status transitions and the append-only timeline. It is pure
// over its inputs: Transition returns an updated copy of the issue and never
// touches the stored record, so concurrent callers need no coordination here.
type Lifecycle struct {
	now        func() time.Time
	newEventID func() string
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		now:        func() time.Time { return time.Now().UTC() },
		newEventID: func() string { return "evt_" + uuid.NewString() },
	}
}

// CreationEvent is the synthetic first timeline entry every issue gets.
func (l *Lifecycle) CreationEvent(at time.Time) models.TimelineEvent {
	return models.TimelineEvent{
		ID:          l.newEventID(),
		Status:      models.StatusOpen,
		Timestamp:   at,
		Description: creationEventDescription,
		UpdatedBy:   systemActor,
	}
}

// Transition sets the new status and appends exactly one timeline event. Prior
// entries are never mutated; the returned issue carries a fresh timeline slice
// so history can be shared safely across readers. Re-applying the current
// status is allowed and still appends an event (a status-confirming note),
// except from resolved, which is terminal.
func (l *Lifecycle) Transition(issue models.Issue, newStatus models.Status, description, updatedBy string) (models.Issue, error) {
	if !newStatus.Valid() {
		return models.Issue{}, fmt.Errorf("unknown status %q", newStatus)
	}
	if issue.Status == models.StatusResolved {
		return models.Issue{}, &InvalidTransitionError{From: issue.Status, To: newStatus}
	}

	event := models.TimelineEvent{
		ID:          l.newEventID(),
		Status:      newStatus,
		Timestamp:   l.now(),
		Description: description,
		UpdatedBy:   updatedBy,
	}

	timeline := make([]models.TimelineEvent, len(issue.Timeline), len(issue.Timeline)+1)
	copy(timeline, issue.Timeline)
	issue.Timeline = append(timeline, event)
	issue.Status = newStatus
	return issue, nil
}
