package service

import (
	"testing"
	"time"

	"github.com/civicpulse/backend/internal/models"
)

func TestWardRankings(t *testing.T) {
	now := time.Unix(10000, 0).UTC()
	past := time.Unix(100, 0).UTC()
	future := now.Add(time.Hour)

	issues := []models.Issue{
		{WardID: "ward_001", ContractorID: "cont_road_01", Status: models.StatusResolved, Deadline: &past},
		{WardID: "ward_001", ContractorID: "cont_road_01", Status: models.StatusOpen, Deadline: &past},
		{WardID: "ward_002", ContractorID: "cont_road_02", Status: models.StatusOpen, Deadline: &future},
		{Status: models.StatusOpen}, // unenriched, ignored
	}

	rows := WardRankings(DefaultWards(), issues, now)
	if len(rows) != 2 {
		t.Fatalf("expected a row per ward, got %d", len(rows))
	}
	// ward_002 has no overdue issues and must rank first.
	if rows[0].WardID != "ward_002" || rows[0].Score != 100 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].WardID != "ward_001" || rows[1].Total != 2 || rows[1].Resolved != 1 || rows[1].Overdue != 1 {
		t.Fatalf("unexpected ward_001 row: %+v", rows[1])
	}
	if rows[1].Score != 50 {
		t.Fatalf("expected score 50 for ward_001, got %d", rows[1].Score)
	}
}

func TestContractorRankingsEmptyData(t *testing.T) {
	rows := ContractorRankings(DefaultContractors(), nil, time.Now())
	if len(rows) != len(DefaultContractors()) {
		t.Fatalf("expected a row per contractor, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Score != 100 || r.Total != 0 {
			t.Fatalf("contractors with no issues should score 100: %+v", r)
		}
	}
}
