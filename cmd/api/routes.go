package main

import (
	"social-platform/internal/auth"
	"social-platform/internal/httpapi"
	"social-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authSvc *auth.Service, resolver *rbac.Resolver) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	// Auth lifecycle. Login and refresh are reachable without an access
	// token; refresh proves possession of the refresh token instead.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", auth.RequireAccessToken(authSvc), h.Logout)
	}

	// Everything below requires a valid access token.
	protected := v1.Group("")
	protected.Use(auth.RequireAccessToken(authSvc))
	{
		protected.GET("/me", h.Me)

		postsGroup := protected.Group("/posts")
		{
			postsGroup.POST("", rbac.RequirePermission(resolver, rbac.PermPostCreate), h.CreatePost)
			postsGroup.GET("/:post_id", h.GetPost)
			postsGroup.PUT("/:post_id", h.UpdatePost)
			postsGroup.PATCH("/:post_id/visibility", h.SetPostHidden)
			postsGroup.DELETE("/:post_id", h.DeletePost)

			postsGroup.POST("/:post_id/comments", rbac.RequirePermission(resolver, rbac.PermCommentCreate), h.CreateComment)
		}

		commentsGroup := protected.Group("/comments")
		{
			commentsGroup.PUT("/:comment_id", h.UpdateComment)
			commentsGroup.DELETE("/:comment_id", h.DeleteComment)
		}
	}
}
