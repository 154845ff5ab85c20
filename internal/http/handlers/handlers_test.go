package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/classify"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/service"
)

func testHandler() *Handler {
	return &Handler{
		Pipeline: service.NewEnrichmentPipeline(
			service.DefaultZoneResolver(),
			service.DefaultResponsibilityTable(),
			service.DefaultSLAPolicy(),
			service.NewLifecycle(),
		),
		Lifecycle:      service.NewLifecycle(),
		Responsibility: service.DefaultResponsibilityTable(),
		SLA:            service.DefaultSLAPolicy(),
		Classifier:     classify.MockAdapter{ModelVersion: "mock-v1"},
		Validator:      validator.New(),
		Logger:         zerolog.Nop(),
	}
}

func TestSubmitIssueRejectsOutOfRangeCoordinates(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.POST("/api/issues", h.SubmitIssue)

	lat := 120.0
	lon := 10.0
	body, _ := json.Marshal(SubmitIssueRequest{
		Title: "Pothole", Category: "road_damage", Latitude: &lat, Longitude: &lon,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/issues", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitIssueRejectsUnknownCategory(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.POST("/api/issues", h.SubmitIssue)

	body := []byte(`{"title":"Thing","category":"sinkhole"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/issues", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestNearbyIssuesRequiresCoordinates(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.GET("/api/issues/nearby", h.NearbyIssues)

	req, _ := http.NewRequest(http.MethodGet, "/api/issues/nearby?radius_km=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClassifyImage(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.POST("/api/classify-image", h.ClassifyImage)

	body := []byte(`{"image_ref":"img_42.jpg"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/classify-image", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result models.Classification
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Category.Valid() {
		t.Fatalf("classifier returned invalid category: %s", result.Category)
	}
}

func TestIssueViewDerivedFields(t *testing.T) {
	h := testHandler()
	deadline := time.Unix(1000, 0).UTC()
	issue := models.Issue{
		ID:           "iss_1",
		Status:       models.StatusOpen,
		SubmittedAt:  time.Unix(0, 0).UTC(),
		WardID:       "ward_002",
		Department:   "Water Supply",
		ContractorID: "cont_water_02",
		Deadline:     &deadline,
	}

	v := h.view(issue, time.Unix(2000, 0).UTC())
	if !v.Overdue {
		t.Fatalf("expected overdue past deadline")
	}
	if v.WardName != "Suburban North" {
		t.Fatalf("unexpected ward name: %s", v.WardName)
	}
	if v.ContractorName != "PureWater Systems" {
		t.Fatalf("unexpected contractor name: %s", v.ContractorName)
	}
	if v.AcknowledgementDue == nil || v.AcknowledgementDue.Sub(issue.SubmittedAt) != 24*time.Hour {
		t.Fatalf("unexpected acknowledgement due: %v", v.AcknowledgementDue)
	}
	if v.TimeRemainingSeconds == nil || *v.TimeRemainingSeconds != -1000 {
		t.Fatalf("unexpected time remaining: %v", v.TimeRemainingSeconds)
	}

	resolved := issue
	resolved.Status = models.StatusResolved
	if h.view(resolved, time.Unix(2000, 0).UTC()).Overdue {
		t.Fatalf("resolved issues must not render overdue")
	}
}
