package service

import (
	"time"

	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/utils"
)

const (
	ReasonMissingCoordinates = "MISSING_COORDINATES"
	ReasonMissingCategory    = "MISSING_CATEGORY"
)

// Submission carries the raw report fields from the reporting UI.
type Submission struct {
	Title        string
	Description  string
	Category     models.Category
	Severity     models.Severity
	ImageRef     string
	Latitude     *float64
	Longitude    *float64
	Address      string
	UserID       string
	SubmittedAt  time.Time
	AIConfidence *float64
}

// EnrichmentResult distinguishes fully routed issues from records that could
// not be enriched, so callers do not have to sniff optional fields.
type EnrichmentResult struct {
	Issue    models.Issue
	Complete bool
	Reason   string
}

// EnrichmentPipeline derives ward, responsibility, deadline, and the initial
// lifecycle state for a raw submission. It has no side effects: persistence of
// the returned record is the caller's job.
type EnrichmentPipeline struct {
	Zones          *ZoneResolver
	Responsibility *ResponsibilityTable
	SLA            *SLAPolicy
	Lifecycle      *Lifecycle

	now      func() time.Time
	newToken func() string
}

func NewEnrichmentPipeline(zones *ZoneResolver, responsibility *ResponsibilityTable, sla *SLAPolicy, lifecycle *Lifecycle) *EnrichmentPipeline {
	return &EnrichmentPipeline{
		Zones:          zones,
		Responsibility: responsibility,
		SLA:            sla,
		Lifecycle:      lifecycle,
		now:            func() time.Time { return time.Now().UTC() },
		newToken:       utils.GenerateShareToken,
	}
}

// Enrich builds the issue record for a submission. Missing coordinates or an
// unset category skip enrichment and yield an incomplete result rather than an
// error; the record is still returned so the caller can decide what to do
// with it.
func (p *EnrichmentPipeline) Enrich(sub Submission) EnrichmentResult {
	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = p.now()
	}

	issue := models.Issue{
		Title:        sub.Title,
		Description:  sub.Description,
		Category:     sub.Category,
		Severity:     sub.Severity,
		ImageRef:     sub.ImageRef,
		Address:      sub.Address,
		SubmittedAt:  submittedAt,
		UserID:       sub.UserID,
		ShareToken:   p.newToken(),
		AIConfidence: sub.AIConfidence,
	}

	if sub.Latitude == nil || sub.Longitude == nil {
		return EnrichmentResult{Issue: issue, Reason: ReasonMissingCoordinates}
	}
	issue.Latitude = *sub.Latitude
	issue.Longitude = *sub.Longitude

	if sub.Category == "" {
		return EnrichmentResult{Issue: issue, Reason: ReasonMissingCategory}
	}

	wardID := p.Zones.Resolve(issue.Latitude, issue.Longitude)
	resp := p.Responsibility.Resolve(wardID, issue.Category)
	deadline := p.SLA.Deadline(issue.Category, submittedAt)

	issue.WardID = wardID
	issue.Department = resp.Department
	issue.ContractorID = resp.ContractorID
	issue.Deadline = &deadline
	issue.Status = models.StatusOpen
	issue.Timeline = []models.TimelineEvent{p.Lifecycle.CreationEvent(submittedAt)}

	return EnrichmentResult{Issue: issue, Complete: true}
}
