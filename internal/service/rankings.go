package service

import (
	"sort"
	"time"

	"github.com/civicpulse/backend/internal/models"
)

type performanceCounts struct {
	total    int
	resolved int
	overdue  int
}

func (c performanceCounts) score() int {
	if c.total == 0 {
		return 100
	}
	return 100 * (c.total - c.overdue) / c.total
}

// WardRankings aggregates stored issues into per-ward performance rows,
// sorted by score descending. Overdue is evaluated against the supplied
// instant so the ranking reflects the moment it is read.
func WardRankings(wards []models.Ward, issues []models.Issue, now time.Time) []models.WardPerformance {
	counts := map[string]performanceCounts{}
	for _, issue := range issues {
		if issue.WardID == "" {
			continue
		}
		c := counts[issue.WardID]
		c.total++
		if issue.Status == models.StatusResolved {
			c.resolved++
		}
		if IsOverdue(issue, now) {
			c.overdue++
		}
		counts[issue.WardID] = c
	}

	out := make([]models.WardPerformance, 0, len(wards))
	for _, w := range wards {
		c := counts[w.ID]
		out = append(out, models.WardPerformance{
			WardID:   w.ID,
			Name:     w.Name,
			Total:    c.total,
			Resolved: c.resolved,
			Overdue:  c.overdue,
			Score:    c.score(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].WardID < out[j].WardID
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// ContractorRankings mirrors WardRankings keyed by contractor.
func ContractorRankings(contractors []models.Contractor, issues []models.Issue, now time.Time) []models.ContractorPerformance {
	counts := map[string]performanceCounts{}
	for _, issue := range issues {
		if issue.ContractorID == "" {
			continue
		}
		c := counts[issue.ContractorID]
		c.total++
		if issue.Status == models.StatusResolved {
			c.resolved++
		}
		if IsOverdue(issue, now) {
			c.overdue++
		}
		counts[issue.ContractorID] = c
	}

	out := make([]models.ContractorPerformance, 0, len(contractors))
	for _, contractor := range contractors {
		c := counts[contractor.ID]
		out = append(out, models.ContractorPerformance{
			ContractorID: contractor.ID,
			Name:         contractor.Name,
			Total:        c.total,
			Resolved:     c.resolved,
			Overdue:      c.overdue,
			Score:        c.score(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].ContractorID < out[j].ContractorID
		}
		return out[i].Score > out[j].Score
	})
	return out
}
