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

// GetCasesHandler lists the authenticated user's cases without their graph
// payloads.
func GetCasesHandler(c echo.Context) error {
	type getCasesResponse struct {
		Message string    `json:"message"`
		Cases   []db.Case `json:"cases,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	cases, err := db.New(conn).ListCases(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to list cases", "err", err)
		return c.JSON(http.StatusInternalServerError, getCasesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getCasesResponse{
		Message: "Cases retrieved successfully",
		Cases:   cases,
	})
}

// GetCaseHandler returns a single case owned by the authenticated user.
func GetCaseHandler(c echo.Context) error {
	type getCaseParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type getCaseResponse struct {
		Message string   `json:"message"`
		Case    *db.Case `json:"case,omitempty"`
	}

	params := new(getCaseParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCaseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCaseResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	cs, err := db.New(conn).GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, getCaseResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, getCaseResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getCaseResponse{
		Message: "Case retrieved successfully",
		Case:    &cs,
	})
}
