package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/logger"
)

// GetMessagesHandler returns the chat history of a case in chronological
// order.
func GetMessagesHandler(c echo.Context) error {
	type getMessagesParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type getMessagesResponse struct {
		Message  string       `json:"message"`
		Messages []db.Message `json:"messages,omitempty"`
	}

	params := new(getMessagesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getMessagesResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getMessagesResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	_, err := q.GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, getMessagesResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, getMessagesResponse{
			Message: "Internal server error",
		})
	}

	messages, err := q.ListMessages(ctx, params.CaseID)
	if err != nil {
		logger.Error("Failed to list messages", "err", err)
		return c.JSON(http.StatusInternalServerError, getMessagesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getMessagesResponse{
		Message:  "Messages retrieved successfully",
		Messages: messages,
	})
}
