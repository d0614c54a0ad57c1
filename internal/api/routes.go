package api

import (
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	log *logger.Logger,
	profileService service.ProfileService,
	planService service.PlanService,
) {
	if log == nil {
		log = logger.Nop()
	}
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService, log)

	router.Use(RequestIDMiddleware(), RequestLogger(log))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		protected.PUT("/profile", profileHandler.SaveProfile)
		protected.GET("/profile", profileHandler.GetProfile)

		plans := protected.Group("/plans")
		{
			plans.POST("", planHandler.GeneratePlan)
			// POST /api/v1/plans/preview - runs the pipeline on the request body, nothing is stored
			plans.POST("/preview", planHandler.PreviewPlan)
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.PUT("/:planId/lock", planHandler.SetLocked)
			plans.GET("/:planId/export", planHandler.ExportPlan)
		}
	}
}
