package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/ingest"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/graph"
	"github.com/inquesta/casefile/pkg/logger"
)

// GetGraphHandler returns a case graph in the node/edge shape used by the
// frontend renderer.
func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type getGraphResponse struct {
		Message string          `json:"message"`
		Nodes   []graph.VizNode `json:"nodes"`
		Edges   []graph.VizEdge `json:"edges"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
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
			return c.JSON(http.StatusNotFound, getGraphResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, getGraphResponse{
			Message: "Internal server error",
		})
	}

	g := ingest.LoadCaseGraph(&cs)
	nodes, edges := g.VisualizationData()

	return c.JSON(http.StatusOK, getGraphResponse{
		Message: "Graph retrieved successfully",
		Nodes:   nodes,
		Edges:   edges,
	})
}
