package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/logger"
)

// GetMeHandler returns the authenticated user.
func GetMeHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	u, err := db.New(conn).GetUserByID(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to load user", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, u)
}
