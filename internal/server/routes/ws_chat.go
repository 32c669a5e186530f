package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/auth"
	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/logger"
)

const (
	closeInvalidToken = 4001
	closeCaseNotFound = 4004
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func closeWithCode(ws *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(time.Second)
	ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	ws.Close()
}

// ChatSocketHandler runs the chat loop over a websocket. Authentication uses
// token and case_id query parameters since browsers cannot set headers on
// websocket connections. Each user frame is echoed back before the assistant
// frame is sent.
func ChatSocketHandler(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	app := c.(*middleware.AppContext).App

	userID, err := auth.ParseToken(app.JWTSecret, c.QueryParam("token"))
	if err != nil {
		closeWithCode(ws, closeInvalidToken, "invalid token")
		return nil
	}

	caseID, err := strconv.ParseInt(c.QueryParam("case_id"), 10, 64)
	if err != nil {
		closeWithCode(ws, closeCaseNotFound, "case not found")
		return nil
	}

	ctx := c.Request().Context()
	_, err = db.New(app.DBConn).GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     caseID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			closeWithCode(ws, closeCaseNotFound, "case not found")
			return nil
		}
		logger.Error("Failed to load case", "err", err)
		closeWithCode(ws, websocket.CloseInternalServerErr, "internal error")
		return nil
	}
	defer ws.Close()

	type chatFrame struct {
		Type         string `json:"type"`
		Message      string `json:"message"`
		GraphUpdated bool   `json:"graph_updated,omitempty"`
	}

	for {
		var incoming struct {
			Message string `json:"message"`
		}
		if err := ws.ReadJSON(&incoming); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Websocket closed unexpectedly", "err", err)
			}
			return nil
		}
		if incoming.Message == "" {
			continue
		}

		err = ws.WriteJSON(chatFrame{
			Type:    "user",
			Message: incoming.Message,
		})
		if err != nil {
			return nil
		}

		result, err := runChatTurn(ctx, app, userID, caseID, incoming.Message)
		if err != nil {
			logger.Error("Chat turn failed", "case_id", caseID, "err", err)
			err = ws.WriteJSON(chatFrame{
				Type:    "error",
				Message: "Internal server error",
			})
			if err != nil {
				return nil
			}
			continue
		}

		err = ws.WriteJSON(chatFrame{
			Type:         "assistant",
			Message:      result.AssistantMessage.Content,
			GraphUpdated: result.GraphUpdated,
		})
		if err != nil {
			return nil
		}
	}
}
