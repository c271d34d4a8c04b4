package api

import (
	"net/http"

	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the local API. notices may be nil when notices are only
// logged.
func SetupRoutes(router *gin.Engine, d *service.Dispatcher, notices *notify.Recorder) {
	sessionHandler := NewSessionHandler(d)
	postHandler := NewPostHandler(d)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", sessionHandler.Register)
			authGroup.POST("/login", sessionHandler.Login)
			authGroup.POST("/logout", sessionHandler.Logout)
		}
		apiV1.GET("/me", sessionHandler.Me)

		if notices != nil {
			notificationHandler := NewNotificationHandler(d, notices)
			apiV1.GET("/notifications", notificationHandler.Drain)
			apiV1.GET("/state/:kind", notificationHandler.State)
			apiV1.GET("/state/:kind/:id", notificationHandler.State)
		}
	}

	protected := apiV1.Group("")
	protected.Use(SessionMiddleware(d.Session()))
	{
		protected.PUT("/me", sessionHandler.UpdateProfile)
		protected.DELETE("/me", sessionHandler.DeleteAccount)

		userGroup := protected.Group("/users")
		{
			userGroup.GET("", sessionHandler.ListUsers)
			userGroup.GET("/:id", sessionHandler.GetUser)
			userGroup.POST("/:id/follow", sessionHandler.Follow)
			userGroup.GET("/:id/posts", postHandler.ListUserPosts)
		}

		postGroup := protected.Group("/posts")
		{
			postGroup.GET("", postHandler.ListPosts)
			postGroup.POST("", postHandler.CreatePost)
			postGroup.GET("/:id", postHandler.GetPost)
			postGroup.PUT("/:id", postHandler.UpdatePost)
			postGroup.DELETE("/:id", postHandler.DeletePost)
			postGroup.POST("/:id/like", postHandler.LikePost)
			postGroup.POST("/:id/share", postHandler.SharePost)

			postGroup.GET("/:id/comments", postHandler.ListComments)
			postGroup.DELETE("/:id/comments", postHandler.CloseComments)
			postGroup.POST("/:id/comments", postHandler.AddComment)
			postGroup.PUT("/:id/comments/:commentId", postHandler.EditComment)
			postGroup.DELETE("/:id/comments/:commentId", postHandler.DeleteComment)
		}

		shareGroup := protected.Group("/shares")
		{
			shareGroup.GET("", postHandler.ListShares)
			shareGroup.DELETE("/:id", postHandler.DeleteShare)
			shareGroup.POST("/:id/like", postHandler.LikeShare)
		}

		registerPlanRoutes(protected.Group("/workout-statuses"), statusOps(d))
		registerPlanRoutes(protected.Group("/workout-plans"), workoutPlanOps(d))
		registerPlanRoutes(protected.Group("/meal-plans"), mealPlanOps(d))
	}
}
