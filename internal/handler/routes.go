package handler

import (
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler mounted under /api/v1
type Handlers struct {
	Auth      *AuthHandler
	Entry     *EntryHandler
	Recurring *RecurringHandler
	Balance   *BalanceHandler
	NetWorth  *NetWorthHandler
	Asset     *AssetHandler
	Goal      *GoalHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	api := e.Group("/api/v1")

	// The callback runs before the owner exists, so it only checks the token
	auth := api.Group("/auth")
	auth.POST("/callback", h.Auth.Callback, authMiddleware.AuthenticateToken())
	auth.GET("/me", h.Auth.Me, authMiddleware.Authenticate())
	auth.POST("/logout", h.Auth.Logout, authMiddleware.Authenticate())

	protected := api.Group("")
	protected.Use(authMiddleware.Authenticate())
	protected.Use(middleware.RateLimitMiddleware(rateLimiter))

	entries := protected.Group("/entries")
	entries.POST("", h.Entry.CreateEntry)
	entries.GET("", h.Entry.ListEntries)
	entries.GET("/:id", h.Entry.GetEntry)
	entries.PUT("/:id", h.Entry.UpdateEntry)
	entries.DELETE("/:id", h.Entry.DeleteEntry)

	recurring := protected.Group("/recurring")
	recurring.POST("", h.Recurring.CreateRecurring)
	recurring.GET("", h.Recurring.ListRecurring)
	recurring.GET("/instances/:year/:month", h.Recurring.GetInstances)
	recurring.GET("/:id", h.Recurring.GetRecurring)
	recurring.PUT("/:id", h.Recurring.UpdateRecurring)
	recurring.DELETE("/:id", h.Recurring.DeleteRecurring)

	balances := protected.Group("/balances")
	balances.GET("", h.Balance.ListBalances)
	balances.POST("/export", h.Balance.ExportBalances)
	balances.GET("/:year/:month", h.Balance.GetBalance)
	balances.POST("/:year/:month/recalculate", h.Balance.Recalculate)
	balances.POST("/:year/:month/cascade", h.Balance.Cascade)

	protected.GET("/projections/:year/:month", h.Balance.GetProjection)

	networth := protected.Group("/networth")
	networth.POST("", h.NetWorth.CreateSnapshot)
	networth.GET("", h.NetWorth.ListSnapshots)
	networth.GET("/:id", h.NetWorth.GetSnapshot)
	networth.PUT("/:id", h.NetWorth.UpdateSnapshot)
	networth.DELETE("/:id", h.NetWorth.DeleteSnapshot)

	assets := protected.Group("/assets")
	assets.POST("", h.Asset.CreateAsset)
	assets.GET("", h.Asset.ListAssets)
	assets.GET("/summary", h.Asset.GetSummary)
	assets.GET("/:id", h.Asset.GetAsset)
	assets.PUT("/:id", h.Asset.UpdateAsset)
	assets.DELETE("/:id", h.Asset.DeleteAsset)

	goals := protected.Group("/goals")
	goals.POST("", h.Goal.CreateGoal)
	goals.GET("", h.Goal.ListGoals)
	goals.GET("/:id", h.Goal.GetGoal)
	goals.PUT("/:id", h.Goal.UpdateGoal)
	goals.DELETE("/:id", h.Goal.DeleteGoal)

	// Browsers cannot set headers on upgrade requests; the token rides in the query string
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}
}
