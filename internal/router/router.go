package router

import (
	"net/http"

	"forknfriends/backend/internal/auth"
	"forknfriends/backend/internal/handler"
	"forknfriends/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup builds the gin engine with the full route table.
func Setup() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Monitor())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Operational endpoints
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.RateLimit())
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/signup", handler.Signup)
			authRoutes.POST("/login", handler.Login)
			authRoutes.GET("/me", auth.AuthMiddleware(), handler.GetMe)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("/search", handler.SearchUsers)
			friendRoutes.GET("", handler.GetFriends)
			friendRoutes.GET("/requests", handler.GetPendingRequests)
			friendRoutes.POST("/request", handler.SendFriendRequest)
			friendRoutes.PUT("/accept/:id", handler.AcceptFriendRequest)
			friendRoutes.DELETE("/decline/:id", handler.DeclineFriendRequest)
			friendRoutes.DELETE("/:id", handler.UnfriendUser)
		}

		// Restaurant routes (protected)
		restaurantRoutes := apiV1.Group("/restaurants")
		restaurantRoutes.Use(auth.AuthMiddleware())
		{
			restaurantRoutes.GET("", handler.GetRestaurants)
			restaurantRoutes.GET("/friends", handler.GetFriendsRestaurants) // Must be before /:id
			restaurantRoutes.GET("/:id", handler.GetRestaurant)
			restaurantRoutes.POST("", handler.CreateRestaurant)
			restaurantRoutes.PUT("/:id", handler.UpdateRestaurant)
			restaurantRoutes.DELETE("/:id", handler.DeleteRestaurant)
		}

		// Group routes (protected)
		groupRoutes := apiV1.Group("/groups")
		groupRoutes.Use(auth.AuthMiddleware())
		{
			groupRoutes.POST("", handler.CreateGroup)
			groupRoutes.GET("", handler.GetGroups)
			groupRoutes.GET("/invites", handler.GetInvites) // Must be before /:id
			groupRoutes.GET("/:id", handler.GetGroup)
			groupRoutes.PUT("/:id", handler.UpdateGroup)
			groupRoutes.DELETE("/:id", handler.DeleteGroup)

			groupRoutes.POST("/:id/members", handler.InviteMember)
			groupRoutes.PUT("/:id/members/accept", handler.AcceptInvite)
			groupRoutes.PUT("/:id/members/decline", handler.DeclineInvite)
			groupRoutes.PUT("/:id/members/:memberId", handler.UpdateMemberPermissions)
			groupRoutes.DELETE("/:id/members/:memberId", handler.RemoveMember)

			groupRoutes.POST("/:id/restaurants", handler.AddGroupRestaurant)
			groupRoutes.PUT("/:id/restaurants/:restaurantId", handler.RateGroupRestaurant)
			groupRoutes.DELETE("/:id/restaurants/:restaurantId", handler.RemoveGroupRestaurant)
		}

		// Places search proxy (protected)
		placesRoutes := apiV1.Group("/places")
		placesRoutes.Use(auth.AuthMiddleware())
		{
			placesRoutes.GET("/search", handler.SearchPlaces)
		}
	}

	return router
}
