package routes

import (
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Kingezdev/GreenGrass/handlers"
	"github.com/Kingezdev/GreenGrass/middleware"
	"github.com/Kingezdev/GreenGrass/moderation"
)

// RegisterRoutes wires every controller onto the echo instance. All
// routes except the health check require a caller session.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheck)

	authed := e.Group("", middleware.Session())

	properties := handlers.NewPropertyController()
	authed.GET("/properties", properties.ListProperties)
	authed.GET("/properties/:id", properties.GetProperty)
	authed.POST("/properties", properties.CreateProperty, middleware.RequireLandlord)
	authed.PUT("/properties/:id", properties.UpdateProperty, middleware.RequireLandlord)
	authed.DELETE("/properties/:id", properties.DeleteProperty, middleware.RequireLandlord)

	favorites := handlers.NewFavoriteController()
	authed.POST("/favorites", favorites.CreateFavorite)
	authed.GET("/favorites", favorites.ListFavorites)
	authed.DELETE("/favorites/:propertyId", favorites.DeleteFavorite)

	// Message sending is rate limited per sender.
	rateRPM := 30
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateRPM = n
		}
	}
	limiter := middleware.NewLimiterStore(rateRPM, 5, time.Minute)

	messages := handlers.NewMessageController(moderation.ContactLeakPolicy{})
	authed.GET("/messages/:threadId", messages.GetThread)
	authed.POST("/messages", messages.SendMessage, middleware.RateLimit(limiter))

	payments := handlers.NewPaymentController(
		handlers.NewRedisSessionStore(handlers.SessionTTL()),
		handlers.NewMongoTransactionLog(),
		handlers.NewMongoPropertyChecker(),
	)
	authed.POST("/payments/:propertyId", payments.BeginCheckout)
	authed.GET("/payments/:propertyId", payments.GetSession)
	authed.POST("/payments/:propertyId/submit", payments.SubmitPayment)
	authed.POST("/payments/:propertyId/confirm", payments.ConfirmPayment)
	authed.POST("/payments/:propertyId/fail", payments.FailPayment)
	authed.DELETE("/payments/:propertyId", payments.AbandonCheckout)
	authed.GET("/transactions", payments.ListTransactions)
}
