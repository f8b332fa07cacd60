package handler

import (
	"net/http"

	"github.com/Vlad1805/blogmates-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API route onto the engine. Read endpoints that
// are legal for anonymous visitors use the optional middleware; everything
// else requires a valid access token cookie.
func RegisterRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", RegisterUser)
			authRoutes.POST("/login", LoginUser)
			authRoutes.POST("/refresh", RefreshToken)
			authRoutes.POST("/logout", LogoutUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", SearchUsers) // Must be before /:id
			userRoutes.GET("/me", GetMe)
			userRoutes.GET("/me/profile", GetMyProfile)
			userRoutes.PUT("/me/profile", UpdateMyProfile)
			userRoutes.GET("/:id", GetUserByID)
		}

		// Blog routes readable by anonymous visitors where visibility allows
		blogPublic := apiV1.Group("/blog")
		blogPublic.Use(auth.OptionalAuthMiddleware())
		{
			blogPublic.GET("/feed", GetFeed)
			blogPublic.GET("/user/:id", GetUserEntries)
			blogPublic.GET("/:id", GetBlogEntry)
			blogPublic.GET("/:id/comments", GetComments)
			blogPublic.GET("/:id/comments/count", GetCommentCount)
			blogPublic.GET("/:id/likes", GetBlogLikes)
			blogPublic.GET("/:id/like-count", GetBlogLikeCount)
		}

		// Blog routes (protected)
		blogRoutes := apiV1.Group("/blog")
		blogRoutes.Use(auth.AuthMiddleware())
		{
			blogRoutes.GET("/my", GetMyEntries)
			blogRoutes.POST("", CreateBlogEntry)
			blogRoutes.PUT("/:id", UpdateBlogEntry)
			blogRoutes.DELETE("/:id", DeleteBlogEntry)
			blogRoutes.POST("/:id/comments", CreateComment)
			blogRoutes.DELETE("/:id/comments/:commentID", DeleteComment)
			blogRoutes.POST("/:id/like", LikeBlogEntry)
			blogRoutes.DELETE("/:id/like", UnlikeBlogEntry)
		}

		// Comment like routes
		commentPublic := apiV1.Group("/comments")
		commentPublic.Use(auth.OptionalAuthMiddleware())
		{
			commentPublic.GET("/:id/likes", GetCommentLikes)
			commentPublic.GET("/:id/like-count", GetCommentLikeCount)
		}

		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.POST("/:id/like", LikeComment)
			commentRoutes.DELETE("/:id/like", UnlikeComment)
		}

		// Social routes (protected)
		socialRoutes := apiV1.Group("")
		socialRoutes.Use(auth.AuthMiddleware())
		{
			socialRoutes.POST("/friend-requests", SendFriendRequest)
			socialRoutes.GET("/friend-requests/pending", GetPendingRequests)
			socialRoutes.GET("/friend-requests/pending/sent", GetPendingSentRequests)
			socialRoutes.POST("/friend-requests/:id/accept", AcceptFriendRequest)
			socialRoutes.DELETE("/friend-requests/:id", RemoveFriendRequest)
			socialRoutes.GET("/followers", GetFollowers)
			socialRoutes.GET("/following", GetFollowing)
			socialRoutes.DELETE("/following/:userID", UnfollowUser)
			socialRoutes.DELETE("/followers/:userID", RemoveFollower)
		}
	}
}
