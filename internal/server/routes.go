package server

import (
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Auth routes
	e.POST("/auth/register", routes.RegisterHandler)
	e.POST("/auth/login", routes.LoginHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	apiRoutes.GET("/me", routes.GetMeHandler)

	// Case routes
	apiRoutes.GET("/cases", routes.GetCasesHandler)
	apiRoutes.POST("/cases", routes.CreateCaseHandler)
	apiRoutes.GET("/cases/:id", routes.GetCaseHandler)
	apiRoutes.DELETE("/cases/:id", routes.DeleteCaseHandler)

	// Chat routes
	apiRoutes.POST("/cases/:id/chat", routes.ChatCaseHandler)
	apiRoutes.GET("/cases/:id/messages", routes.GetMessagesHandler)

	// Graph routes
	apiRoutes.GET("/cases/:id/graph", routes.GetGraphHandler)
	apiRoutes.POST("/cases/:id/clear", routes.ClearGraphHandler)

	// Evidence routes
	apiRoutes.GET("/cases/:id/evidence", routes.GetEvidenceHandler)
	apiRoutes.POST("/cases/:id/evidence", routes.AddEvidenceHandler)

	// Websocket chat authenticates via query parameters
	e.GET("/ws", routes.ChatSocketHandler)
}
