package models

import "time"

type Category string

const (
	CategoryRoadDamage  Category = "road_damage"
	CategoryGarbage     Category = "garbage"
	CategoryWaterLeak   Category = "water_leak"
	CategoryBrokenInfra Category = "broken_infra"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRoadDamage, CategoryGarbage, CategoryWaterLeak, CategoryBrokenInfra, CategoryOther:
		return true
	}
	return false
}

func Categories() []Category {
	return []Category{CategoryRoadDamage, CategoryGarbage, CategoryWaterLeak, CategoryBrokenInfra, CategoryOther}
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityCritical:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen         Status = "open"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAcknowledged, StatusResolved:
		return true
	}
	return false
}

// TimelineEvent records one status change. Entries are immutable once written.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	UpdatedBy   string    `json:"updated_by"`
}

type Issue struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     string   `json:"address,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	UserID      string    `json:"user_id"`
	ViewCount   int       `json:"view_count"`
	ShareToken  string    `json:"share_token"`

	Status   Status          `json:"status,omitempty"`
	Timeline []TimelineEvent `json:"timeline,omitempty"`

	// Set by enrichment; the four routing fields are present together or not at all.
	WardID       string     `json:"ward_id,omitempty"`
	Department   string     `json:"department,omitempty"`
	ContractorID string     `json:"contractor_id,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`

	AIConfidence *float64 `json:"ai_confidence,omitempty"`
}

// Enriched reports whether the routing fields were derived for this issue.
func (i Issue) Enriched() bool {
	return i.WardID != "" && i.Department != "" && i.ContractorID != "" && i.Deadline != nil
}

// Responsibility is the accountable pair for a (ward, category).
type Responsibility struct {
	Department   string `json:"department"`
	ContractorID string `json:"contractor_id"`
}

// Ward is static reference data: a zone plus its per-category responsibility table.
type Ward struct {
	ID       string                      `json:"id"`
	Name     string                      `json:"name"`
	Mappings map[Category]Responsibility `json:"mappings"`
}

type Contractor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Stats struct {
	TotalIssues      int              `json:"total_issues"`
	CriticalIssues   int              `json:"critical_issues"`
	ResolvedIssues   int              `json:"resolved_issues"`
	ActiveUsers      int              `json:"active_users"`
	IssuesByCategory map[Category]int `json:"issues_by_category"`
	IssuesBySeverity map[Severity]int `json:"issues_by_severity"`
}

// WardPerformance is a ranking row derived from stored issues.
type WardPerformance struct {
	WardID   string `json:"ward_id"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Resolved int    `json:"resolved"`
	Overdue  int    `json:"overdue"`
	Score    int    `json:"score"`
}

type ContractorPerformance struct {
	ContractorID string `json:"contractor_id"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Resolved     int    `json:"resolved"`
	Overdue      int    `json:"overdue"`
	Score        int    `json:"score"`
}

type Classification struct {
	ClassName   string   `json:"class_name"`
	Probability float64  `json:"probability"`
	Category    Category `json:"category"`
}
