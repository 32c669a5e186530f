package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/graph"
	"github.com/inquesta/casefile/pkg/logger"
)

// ClearGraphHandler resets a case graph to empty. Messages and evidence
// records are kept.
func ClearGraphHandler(c echo.Context) error {
	type clearGraphParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type clearGraphResponse struct {
		Message string `json:"message"`
	}

	params := new(clearGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, clearGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, clearGraphResponse{
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

	cs, err := q.GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, clearGraphResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, clearGraphResponse{
			Message: "Internal server error",
		})
	}

	empty, err := graph.New().Serialize()
	if err != nil {
		logger.Error("Failed to serialize empty graph", "err", err)
		return c.JSON(http.StatusInternalServerError, clearGraphResponse{
			Message: "Internal server error",
		})
	}

	err = q.UpdateCaseGraph(ctx, db.UpdateCaseGraphParams{
		ID:        cs.ID,
		GraphJSON: json.RawMessage(empty),
	})
	if err != nil {
		logger.Error("Failed to clear graph", "err", err)
		return c.JSON(http.StatusInternalServerError, clearGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, clearGraphResponse{
		Message: "Graph cleared successfully",
	})
}
