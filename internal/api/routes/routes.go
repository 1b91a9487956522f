package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/api/handlers"
	"github.com/devlinkhq/devlink/internal/api/middleware"
)

type Deps struct {
	Profile *handlers.ProfileHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api/profile")

	// Public routes
	api.GET("", d.Profile.List)
	api.GET("/user/:user_id", d.Profile.GetByUser)
	api.GET("/github/:username", d.Profile.GithubRepos)

	// Private routes (JWT)
	auth := api.Group("")
	auth.Use(middleware.JWTAuth())

	auth.GET("/me", d.Profile.Me)
	auth.POST("", d.Profile.Upsert)
	auth.DELETE("", d.Profile.DeleteAccount)

	auth.PUT("/experience", d.Profile.AddExperience)
	auth.DELETE("/experience/:exp_id", d.Profile.RemoveExperience)

	auth.PUT("/education", d.Profile.AddEducation)
	auth.DELETE("/education/:edu_id", d.Profile.RemoveEducation)
}
