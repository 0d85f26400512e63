package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/volcano/internal/middleware"
)

type RouterDeps struct {
	Users     *UserHandler
	Volcanoes *VolcanoHandler
	Reviews   *ReviewHandler
	Meta      *MetaHandler
	JWTSecret []byte
	RateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	auth := middleware.JWTAuth(deps.JWTSecret)
	limit := middleware.RateLimit(deps.RateLimit)

	api.GET("/", deps.Meta.Docs)
	api.GET("/me", deps.Meta.Me)
	api.GET("/healthz", deps.Meta.Health)

	user := api.Group("/user")
	user.POST("/register", limit, deps.Users.Register)
	user.POST("/login", limit, deps.Users.Login)
	user.GET("/:email/profile", auth, deps.Users.GetProfile)
	user.PUT("/:email/profile", auth, deps.Users.UpdateProfile)

	api.GET("/countries", deps.Volcanoes.Countries)
	api.GET("/volcanoes", deps.Volcanoes.List)
	api.GET("/volcano/:id", auth, deps.Volcanoes.Get)

	review := api.Group("/review")
	review.GET("/ratings/:volcanoID", deps.Reviews.Average)
	review.POST("/:volcanoID", auth, limit, deps.Reviews.Create)
	review.GET("/:volcanoID", deps.Reviews.List)
}
