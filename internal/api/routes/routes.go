package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/interviewxp/backend/internal/api/handlers"
	"github.com/interviewxp/backend/internal/api/middleware"
	"github.com/interviewxp/backend/internal/auth"
)

type Deps struct {
	Tokens  *auth.TokenIssuer
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Session *handlers.SessionHandler
	Chat    *handlers.ChatHandler
	WS      *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(d.Tokens))

	protected.GET("/auth/me", d.Auth.Me)

	protected.GET("/profile/me", d.Profile.Me)
	protected.PUT("/profile/preferences", d.Profile.UpdatePreferences)
	protected.GET("/profile/stats", d.Profile.Stats)
	protected.DELETE("/profile", d.Profile.Clear)

	protected.POST("/session/start", d.Session.Start)
	protected.GET("/session/history", d.Session.List)
	protected.GET("/session/:session_id", d.Session.Get)
	protected.POST("/session/:session_id/end", d.Session.End)

	protected.GET("/chat/recent", d.Chat.RecentActivity)
	protected.POST("/chat/:session_id/start", d.Chat.Start)
	protected.POST("/chat/:session_id/message", d.Chat.SendMessage)
	protected.GET("/chat/:session_id/transcript", d.Chat.Transcript)
	protected.POST("/chat/:session_id/reset", d.Chat.Reset)
	protected.GET("/chat/:session_id/status", d.Chat.Status)

	// WebSocket
	protected.GET("/ws/session/:session_id", d.WS.SessionWS)

	// Admin
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/users/:user_id/sessions", d.Session.ListForUser)
}
