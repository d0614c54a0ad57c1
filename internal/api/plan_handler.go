package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
	log         *logger.Logger
}

func NewPlanHandler(planService service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, log: log}
}

// --- DTOs ---

type GeneratePlanRequest struct {
	Force bool `json:"force"`
}

type LockPlanRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// PlanSummaryResponse is one row of GET /plans.
type PlanSummaryResponse struct {
	ID             string            `json:"id"`
	Source         domain.PlanSource `json:"source"`
	Locked         bool              `json:"locked"`
	EnergyKcal     int               `json:"energyKcal"`
	ViolationCount int               `json:"violationCount"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func MapPlansToSummary(plans []domain.GeneratedPlan) []PlanSummaryResponse {
	out := make([]PlanSummaryResponse, len(plans))
	for i, p := range plans {
		out[i] = PlanSummaryResponse{
			ID:             p.ID.Hex(),
			Source:         p.Provenance.Source,
			Locked:         p.Plan.Locked,
			EnergyKcal:     p.Targets.EnergyKcal,
			ViolationCount: p.Provenance.ViolationCount,
			CreatedAt:      p.CreatedAt,
		}
	}
	return out
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate and store a weekly plan from the caller's profile
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param force query bool false "Replace a locked plan"
// @Success 201 {object} domain.GeneratedPlan
// @Failure 404 {object} gin.H "No profile saved"
// @Failure 409 {object} gin.H "Latest plan is locked"
// @Router /plans [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}
	if force, err := strconv.ParseBool(c.DefaultQuery("force", "false")); err == nil && force {
		req.Force = true
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, req.Force)
	if err != nil {
		h.handleError(c, err, "Failed to generate plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) PreviewPlan(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	res, err := h.planService.PreviewPlan(c.Request.Context(), req.toDomain())
	if err != nil {
		h.handleError(c, err, "Failed to generate plan.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plan":       res.Plan,
		"targets":    res.Targets,
		"schedule":   res.Schedule,
		"provenance": res.Provenance,
	})
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	plans, err := h.planService.ListPlans(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleError(c, err, "Failed to list plans.")
		return
	}
	c.JSON(http.StatusOK, MapPlansToSummary(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.handleError(c, err, "Failed to load plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) SetLocked(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	var req LockPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	plan, err := h.planService.SetLocked(c.Request.Context(), userID, planID, *req.Locked)
	if err != nil {
		h.handleError(c, err, "Failed to update plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}
	url, err := h.planService.ExportPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.handleError(c, err, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *PlanHandler) userID(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", false
	}
	return userID, true
}

func planIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// handleError maps service errors to HTTP statuses; anything unknown is a 500 with a generic message.
func (h *PlanHandler) handleError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidProfile):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, "Save a profile before generating a plan.")
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found.")
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, "Access denied to this plan.")
	case errors.Is(err, service.ErrPlanLocked):
		abortWithError(c, http.StatusConflict, "Latest plan is locked; unlock it or pass force=true.")
	case errors.Is(err, service.ErrExportNotAvailable):
		abortWithError(c, http.StatusServiceUnavailable, "Plan export is not configured.")
	default:
		h.log.Error("plan request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, fallbackMsg)
	}
}
