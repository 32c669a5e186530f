package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/graph"
	"github.com/inquesta/casefile/pkg/logger"
)

// CreateCaseHandler opens a new case with an empty knowledge graph.
func CreateCaseHandler(c echo.Context) error {
	type createCaseBody struct {
		Name string `json:"name" validate:"required"`
	}

	type createCaseResponse struct {
		Message string   `json:"message"`
		Case    *db.Case `json:"case,omitempty"`
	}

	data := new(createCaseBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createCaseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createCaseResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	empty, err := graph.New().Serialize()
	if err != nil {
		logger.Error("Failed to serialize empty graph", "err", err)
		return c.JSON(http.StatusInternalServerError, createCaseResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	cs, err := db.New(conn).CreateCase(ctx, db.CreateCaseParams{
		UserID:    user.UserID,
		Name:      data.Name,
		GraphJSON: json.RawMessage(empty),
	})
	if err != nil {
		logger.Error("Failed to create case", "err", err)
		return c.JSON(http.StatusInternalServerError, createCaseResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createCaseResponse{
		Message: "Case created successfully",
		Case:    &cs,
	})
}

// DeleteCaseHandler deletes a case owned by the authenticated user together
// with its messages and evidence records.
func DeleteCaseHandler(c echo.Context) error {
	type deleteCaseParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type deleteCaseResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteCaseParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteCaseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteCaseResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	err := db.New(conn).DeleteCase(ctx, db.DeleteCaseParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		logger.Error("Failed to delete case", "err", err)
		return c.JSON(http.StatusInternalServerError, deleteCaseResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteCaseResponse{
		Message: "Case deleted successfully",
	})
}
