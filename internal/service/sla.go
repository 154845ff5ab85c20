package service

import (
	"time"

	"github.com/civicpulse/backend/internal/models"
)

// SLAPolicy holds the per-category resolution windows and the acknowledgement
// window. Unmapped categories use the default window so deadline computation
// is total.
type SLAPolicy struct {
	acknowledgementHours int
	resolutionHours      map[models.Category]int
	defaultHours         int
}

func NewSLAPolicy(acknowledgementHours int, resolutionHours map[models.Category]int, defaultHours int) *SLAPolicy {
	hours := make(map[models.Category]int, len(resolutionHours))
	for c, h := range resolutionHours {
		hours[c] = h
	}
	return &SLAPolicy{
		acknowledgementHours: acknowledgementHours,
		resolutionHours:      hours,
		defaultHours:         defaultHours,
	}
}

func (p *SLAPolicy) ResolutionHours(category models.Category) int {
	if h, ok := p.resolutionHours[category]; ok {
		return h
	}
	return p.defaultHours
}

// Deadline is the resolution due time for an issue submitted at the given time.
func (p *SLAPolicy) Deadline(category models.Category, submittedAt time.Time) time.Time {
	return submittedAt.Add(time.Duration(p.ResolutionHours(category)) * time.Hour)
}

// AcknowledgementDue flags issues that sit unacknowledged too long. It is
// shorter than the resolution window and does not drive the overdue predicate.
func (p *SLAPolicy) AcknowledgementDue(submittedAt time.Time) time.Time {
	return submittedAt.Add(time.Duration(p.acknowledgementHours) * time.Hour)
}

// IsOverdue reports whether a non-resolved issue has passed its deadline at
// the given instant. Never stored; callers evaluate it at read time.
func IsOverdue(issue models.Issue, now time.Time) bool {
	if issue.Status == models.StatusResolved {
		return false
	}
	if issue.Deadline == nil {
		return false
	}
	return now.After(*issue.Deadline)
}

// TimeRemaining is the duration until the deadline; negative once overdue,
// zero when the issue is resolved or was never enriched.
func TimeRemaining(issue models.Issue, now time.Time) time.Duration {
	if issue.Status == models.StatusResolved || issue.Deadline == nil {
		return 0
	}
	return issue.Deadline.Sub(now)
}
