package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/classify"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/metrics"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/service"
	"github.com/civicpulse/backend/internal/utils"
)

type Handler struct {
	Store          *db.Store
	Pipeline       *service.EnrichmentPipeline
	Lifecycle      *service.Lifecycle
	Responsibility *service.ResponsibilityTable
	SLA            *service.SLAPolicy
	Classifier     classify.Adapter
	Validator      *validator.Validate
	Logger         zerolog.Logger
	AdminKey       string
}

type SubmitIssueRequest struct {
	Title        string   `json:"title" binding:"required" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=4000"`
	Category     string   `json:"category" validate:"omitempty,oneof=road_damage garbage water_leak broken_infra other"`
	Severity     string   `json:"severity" validate:"omitempty,oneof=low medium critical"`
	ImageRef     string   `json:"image_ref"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address      string   `json:"address"`
	UserID       string   `json:"user_id"`
	AIConfidence *float64 `json:"ai_confidence"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required" validate:"required,oneof=open acknowledged resolved"`
	Description string `json:"description" validate:"max=2000"`
	UpdatedBy   string `json:"updated_by" binding:"required" validate:"required,max=100"`
}

// issueView decorates a stored issue with the read-time derived fields.
type issueView struct {
	models.Issue
	Overdue              bool       `json:"overdue"`
	WardName             string     `json:"ward_name,omitempty"`
	ContractorName       string     `json:"contractor_name,omitempty"`
	AcknowledgementDue   *time.Time `json:"acknowledgement_due,omitempty"`
	TimeRemainingSeconds *int64     `json:"time_remaining_seconds,omitempty"`
}

func (h *Handler) view(issue models.Issue, now time.Time) issueView {
	v := issueView{Issue: issue, Overdue: service.IsOverdue(issue, now)}
	if issue.WardID != "" {
		v.WardName = h.Responsibility.WardName(issue.WardID)
	}
	if issue.ContractorID != "" {
		v.ContractorName = h.Responsibility.ContractorName(issue.ContractorID)
	}
	if issue.Enriched() {
		ack := h.SLA.AcknowledgementDue(issue.SubmittedAt)
		v.AcknowledgementDue = &ack
		remaining := int64(service.TimeRemaining(issue, now).Seconds())
		v.TimeRemainingSeconds = &remaining
	}
	return v
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Submit a new issue report
// @Description Accepts a geotagged report, derives ward/responsibility/deadline, and persists it
// @Tags issues
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/issues [post]
func (h *Handler) SubmitIssue(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.SubmitDuration.Observe(time.Since(start).Seconds())
	}()

	var req SubmitIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid submission payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Submission failed validation", err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = c.GetHeader("X-User-Id")
	}
	severity := models.Severity(req.Severity)
	if severity == "" {
		severity = models.SeverityLow
	}

	result := h.Pipeline.Enrich(service.Submission{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.Category(req.Category),
		Severity:     severity,
		ImageRef:     req.ImageRef,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		UserID:       userID,
		AIConfidence: req.AIConfidence,
	})
	if !result.Complete {
		metrics.EnrichmentIncompleteTotal.WithLabelValues(result.Reason).Inc()
	}

	id, err := h.Store.InsertIssue(c.Request.Context(), result.Issue)
	if err != nil {
		h.Logger.Error().Err(err).Msg("insert issue")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save issue", nil)
		return
	}
	metrics.IssuesSubmittedTotal.Inc()

	resp := gin.H{
		"id":          id,
		"share_token": result.Issue.ShareToken,
		"complete":    result.Complete,
	}
	if !result.Complete {
		resp["reason"] = result.Reason
	} else {
		resp["ward_id"] = result.Issue.WardID
		resp["department"] = result.Issue.Department
		resp["contractor_id"] = result.Issue.ContractorID
		resp["deadline"] = result.Issue.Deadline
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List issues
// @Description Issues newest first, filterable by category, severity, status, and ward
// @Tags issues
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/issues [get]
func (h *Handler) IssuesList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := db.IssueFilter{
		Category: models.Category(c.Query("category")),
		Severity: models.Severity(c.Query("severity")),
		Status:   models.Status(c.Query("status")),
		WardID:   c.Query("ward"),
		Limit:    limit,
	}

	issues, err := h.Store.ListIssues(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error().Err(err).Msg("list issues")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list issues", nil)
		return
	}

	now := time.Now().UTC()
	items := make([]issueView, 0, len(issues))
	for _, issue := range issues {
		items = append(items, h.view(issue, now))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) IssueDetails(c *gin.Context) {
	id := c.Param("id")
	issue, err := h.Store.GetIssue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("issue_id", id).Msg("get issue")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load issue", nil)
		return
	}

	if err := h.Store.IncrementViewCount(c.Request.Context(), id); err == nil {
		issue.ViewCount++
		metrics.IssueViewsTotal.Inc()
	}

	c.JSON(http.StatusOK, h.view(issue, time.Now().UTC()))
}

func (h *Handler) IssueByShareToken(c *gin.Context) {
	token := c.Param("token")
	issue, err := h.Store.GetIssueByShareToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		h.Logger.Error().Err(err).Msg("get issue by token")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load issue", nil)
		return
	}
	c.JSON(http.StatusOK, h.view(issue, time.Now().UTC()))
}

func (h *Handler) NearbyIssues(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "lat and lon are required", nil)
		return
	}
	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "5"), 64)
	if err != nil || radiusKm <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "radius_km must be positive", nil)
		return
	}

	issues, err := h.Store.ListIssues(c.Request.Context(), db.IssueFilter{Limit: 200})
	if err != nil {
		h.Logger.Error().Err(err).Msg("list issues for nearby")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list issues", nil)
		return
	}

	now := time.Now().UTC()
	items := make([]issueView, 0)
	for _, issue := range issues {
		if utils.HaversineKm(lat, lon, issue.Latitude, issue.Longitude) <= radiusKm {
			items = append(items, h.view(issue, now))
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// @Summary Update issue status
// @Description Applies a lifecycle transition and appends a timeline event
// @Tags issues
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/issues/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status update failed validation", err.Error())
		return
	}

	issue, err := h.Store.GetIssue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("issue_id", id).Msg("get issue")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load issue", nil)
		return
	}

	updated, err := h.Lifecycle.Transition(issue, models.Status(req.Status), req.Description, req.UpdatedBy)
	if err != nil {
		var invalid *service.InvalidTransitionError
		if errors.As(err, &invalid) {
			metrics.InvalidTransitionsTotal.Inc()
			writeError(c, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)
			return
		}
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	appended := updated.Timeline[len(updated.Timeline)-1]
	if err := h.Store.UpdateIssueStatus(c.Request.Context(), id, updated.Status, appended); err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("issue_id", id).Msg("update status")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", nil)
		return
	}
	metrics.StatusTransitionsTotal.WithLabelValues(string(updated.Status)).Inc()

	c.JSON(http.StatusOK, h.view(updated, time.Now().UTC()))
}

func (h *Handler) DeleteIssue(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteIssue(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrIssueNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("issue_id", id).Msg("delete issue")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete issue", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) StatsSummary(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("stats")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to compute stats", nil)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Rankings(c *gin.Context) {
	issues, err := h.Store.ListAllForRankings(c.Request.Context(), 0)
	if err != nil {
		h.Logger.Error().Err(err).Msg("rankings")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to compute rankings", nil)
		return
	}
	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"wards":       service.WardRankings(h.Responsibility.Wards(), issues, now),
		"contractors": service.ContractorRankings(h.Responsibility.Contractors(), issues, now),
	})
}

func (h *Handler) WardsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Responsibility.Wards()})
}

func (h *Handler) ContractorsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Responsibility.Contractors()})
}

type ClassifyRequest struct {
	ImageRef string `json:"image_ref" binding:"required"`
}

func (h *Handler) ClassifyImage(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "image_ref required", err.Error())
		return
	}
	result, err := h.Classifier.ClassifyImage(c.Request.Context(), req.ImageRef)
	if err != nil {
		h.Logger.Error().Err(err).Msg("classify image")
		writeError(c, http.StatusBadGateway, "CLASSIFIER_ERROR", "Classification failed", nil)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
