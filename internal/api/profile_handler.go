package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest is the JSON body of PUT /profile and POST /plans/preview.
type ProfileRequest struct {
	Goal               string   `json:"goal" binding:"required"`
	Experience         string   `json:"experience" binding:"required"`
	WeightKg           float64  `json:"weightKg" binding:"gte=0"`
	HeightCm           float64  `json:"heightCm" binding:"gte=0"`
	Age                int      `json:"age" binding:"gte=0,lte=120"`
	Sex                string   `json:"sex"`
	Activity           string   `json:"activity"`
	Equipment          []string `json:"equipment"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	AvoidExercises     []string `json:"avoidExercises"`
	PreferredExercises []string `json:"preferredExercises"`
	Supplements        []string `json:"supplements"`
	TrainingDays       int      `json:"trainingDays"`
	SessionMinutes     int      `json:"sessionMinutes" binding:"gte=0"`
	MealCount          int      `json:"mealCount"`
	TargetWeightKg     float64  `json:"targetWeightKg" binding:"gte=0"`
}

func (r ProfileRequest) toDomain() domain.Profile {
	return domain.Profile{
		Goal:               domain.Goal(r.Goal),
		Experience:         domain.ExperienceLevel(r.Experience),
		WeightKg:           r.WeightKg,
		HeightCm:           r.HeightCm,
		Age:                r.Age,
		Sex:                domain.Sex(r.Sex),
		Activity:           domain.ActivityLevel(r.Activity),
		Equipment:          r.Equipment,
		DietaryPreferences: r.DietaryPreferences,
		AvoidExercises:     r.AvoidExercises,
		PreferredExercises: r.PreferredExercises,
		Supplements:        r.Supplements,
		TrainingDays:       r.TrainingDays,
		SessionMinutes:     r.SessionMinutes,
		MealCount:          r.MealCount,
		TargetWeightKg:     r.TargetWeightKg,
	}
}

// SaveProfile godoc
// @Summary Create or replace the caller's planning profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found.")
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}
