package main

import (
	"fmt"
	"net/http"

	"github.com/fgiusti90/psico-app/config"
	"github.com/fgiusti90/psico-app/endpoint"
	"github.com/fgiusti90/psico-app/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	api := router.Group("/")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))
	api.Use(middleware.EndpointCallLogger())
	api.Use(middleware.RateLimiter(middleware.RateLimitConfig{}))

	api.GET("/patients", endpoint.ListPatients)
	api.POST("/patients", endpoint.CreatePatient)
	api.GET("/patients/:id", endpoint.GetPatient)
	api.PATCH("/patients/:id", endpoint.UpdatePatient)
	api.DELETE("/patients/:id", endpoint.DeletePatient)

	api.GET("/treatments", endpoint.ListTreatments)
	api.POST("/treatments", endpoint.CreateTreatment)
	api.GET("/treatments/:id", endpoint.GetTreatment)
	api.PATCH("/treatments/:id", endpoint.UpdateTreatment)
	api.DELETE("/treatments/:id", endpoint.DeleteTreatment)
	api.GET("/treatments/:id/adjustments", endpoint.ListFeeAdjustments)
	api.POST("/treatments/:id/adjustments", endpoint.ApplyFeeAdjustment)
	api.GET("/treatments/:id/suggestion", endpoint.SuggestFee)

	api.PUT("/adjustments/:id", endpoint.EditFeeAdjustment)
	api.DELETE("/adjustments/:id", endpoint.DeleteFeeAdjustment)
	api.GET("/fees", endpoint.FeeBoard)

	api.GET("/sessions", endpoint.ListSessions)
	api.POST("/sessions", endpoint.CreateSession)
	api.PATCH("/sessions/:id", endpoint.UpdateSession)
	api.PATCH("/sessions/:id/paid", endpoint.ToggleSessionPaid)
	api.DELETE("/sessions/:id", endpoint.DeleteSession)

	api.GET("/inflation", endpoint.ListInflation)
	api.POST("/inflation", endpoint.CreateInflation)
	api.GET("/inflation/series", endpoint.InflationSeries)
	api.DELETE("/inflation/:id", endpoint.DeleteInflation)

	api.GET("/billing/pending", endpoint.PendingSessions)
	api.GET("/billing/active-patients", endpoint.ActivePatients)
	api.GET("/billing/metrics", endpoint.Metrics)

	return router
}
