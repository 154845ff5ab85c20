package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/civicpulse/backend/internal/models"
)

func fixedLifecycle(at time.Time) *Lifecycle {
	l := NewLifecycle()
	l.now = func() time.Time { return at }
	n := 0
	l.newEventID = func() string {
		n++
		return fmt.Sprintf("evt_%d", n)
	}
	return l
}

func openIssue() models.Issue {
	created := time.Unix(0, 0).UTC()
	l := fixedLifecycle(created)
	return models.Issue{
		ID:       "iss_1",
		Status:   models.StatusOpen,
		Timeline: []models.TimelineEvent{l.CreationEvent(created)},
	}
}

func TestCreationEvent(t *testing.T) {
	at := time.Unix(42, 0).UTC()
	event := fixedLifecycle(at).CreationEvent(at)
	if event.Status != models.StatusOpen {
		t.Fatalf("creation event must open the issue, got %s", event.Status)
	}
	if event.Description != "Issue reported and filed." {
		t.Fatalf("unexpected description: %s", event.Description)
	}
	if event.UpdatedBy != "system" {
		t.Fatalf("expected system attribution, got %s", event.UpdatedBy)
	}
	if !event.Timestamp.Equal(at) {
		t.Fatalf("creation event timestamp must match submission time")
	}
}

func TestTransitionAppendsExactlyOneEvent(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	issue := openIssue()

	updated, err := l.Transition(issue, models.StatusAcknowledged, "Crew dispatched.", "ops_7")
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.Status != models.StatusAcknowledged {
		t.Fatalf("expected acknowledged, got %s", updated.Status)
	}
	if len(updated.Timeline) != len(issue.Timeline)+1 {
		t.Fatalf("expected one appended event, got %d -> %d", len(issue.Timeline), len(updated.Timeline))
	}
	last := updated.Timeline[len(updated.Timeline)-1]
	if last.Status != models.StatusAcknowledged || last.UpdatedBy != "ops_7" || last.Description != "Crew dispatched." {
		t.Fatalf("unexpected appended event: %+v", last)
	}
}

func TestTransitionDirectResolutionAllowed(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	updated, err := l.Transition(openIssue(), models.StatusResolved, "Fixed on first visit.", "ops_1")
	if err != nil {
		t.Fatalf("open -> resolved must be allowed: %v", err)
	}
	if updated.Status != models.StatusResolved {
		t.Fatalf("expected resolved, got %s", updated.Status)
	}
}

func TestTransitionSameStatusStillAppends(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	updated, err := l.Transition(openIssue(), models.StatusOpen, "Still open, awaiting crew.", "ops_2")
	if err != nil {
		t.Fatalf("same-status transition: %v", err)
	}
	if len(updated.Timeline) != 2 {
		t.Fatalf("expected a confirming event to be appended, got %d entries", len(updated.Timeline))
	}
}

func TestTransitionResolvedIsTerminal(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	issue := openIssue()
	issue.Status = models.StatusResolved

	for _, target := range []models.Status{models.StatusOpen, models.StatusAcknowledged, models.StatusResolved} {
		_, err := l.Transition(issue, target, "attempt", "ops_3")
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("resolved -> %s: expected InvalidTransitionError, got %v", target, err)
		}
		if invalid.From != models.StatusResolved || invalid.To != target {
			t.Fatalf("unexpected error fields: %+v", invalid)
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	if _, err := l.Transition(openIssue(), models.Status("escalated"), "nope", "ops_4"); err == nil {
		t.Fatalf("expected error for status outside the enumeration")
	}
}

func TestTransitionDoesNotMutateHistory(t *testing.T) {
	l := fixedLifecycle(time.Unix(100, 0).UTC())
	clock := time.Unix(100, 0).UTC()
	l.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	issue := openIssue()

	issue, err := l.Transition(issue, models.StatusAcknowledged, "Crew dispatched.", "ops_7")
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	before := make([]models.TimelineEvent, len(issue.Timeline))
	copy(before, issue.Timeline)

	updated, err := l.Transition(issue, models.StatusResolved, "Pothole filled.", "cont_road_01")
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if len(updated.Timeline) != 3 {
		t.Fatalf("expected third event, got %d", len(updated.Timeline))
	}
	if updated.Timeline[2].Status != models.StatusResolved {
		t.Fatalf("third event status mismatch: %s", updated.Timeline[2].Status)
	}
	for i, e := range before {
		if updated.Timeline[i] != e {
			t.Fatalf("history entry %d changed: %+v vs %+v", i, updated.Timeline[i], e)
		}
		if issue.Timeline[i] != e {
			t.Fatalf("input issue timeline mutated at %d", i)
		}
	}
	if len(issue.Timeline) != 2 {
		t.Fatalf("input issue must keep its own timeline, got %d entries", len(issue.Timeline))
	}
	for i := 1; i < len(updated.Timeline); i++ {
		if updated.Timeline[i].Timestamp.Before(updated.Timeline[i-1].Timestamp) {
			t.Fatalf("timeline timestamps must be non-decreasing: entry %d at %v precedes entry %d at %v",
				i, updated.Timeline[i].Timestamp, i-1, updated.Timeline[i-1].Timestamp)
		}
	}
}
