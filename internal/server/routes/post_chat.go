package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/ingest"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/internal/util"
	"github.com/inquesta/casefile/pkg/ai"
	"github.com/inquesta/casefile/pkg/logger"
)

var errCaseNotFound = errors.New("case not found")

// chatHistoryLimit caps how many stored messages are replayed to the
// model as conversation history on each turn.
const chatHistoryLimit = 20

type chatTurnResult struct {
	UserMessage      db.Message `json:"user_message"`
	AssistantMessage db.Message `json:"assistant_message"`
	GraphUpdated     bool       `json:"graph_updated"`
}

// buildChatTurn assembles the model conversation: the stored history in
// chronological order followed by the analysis prompt for this turn.
func buildChatTurn(history []db.Message, prompt string) []ai.ChatMessage {
	chat := make([]ai.ChatMessage, 0, len(history)+1)
	for _, m := range history {
		chat = append(chat, ai.ChatMessage{Role: m.Role, Message: m.Content})
	}
	return append(chat, ai.ChatMessage{Role: "user", Message: prompt})
}

// runChatTurn folds a chat message into the case graph and generates the
// assistant's analysis. Shared by the HTTP and websocket chat endpoints.
func runChatTurn(
	ctx context.Context,
	app *middleware.App,
	userID int64,
	caseID int64,
	message string,
) (*chatTurnResult, error) {
	q := db.New(app.DBConn)

	cs, err := q.GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     caseID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %v", err)
	}

	message = util.SanitizePostgresText(message)
	g := ingest.LoadCaseGraph(&cs)

	result, err := ai.ExtractFromStatement(ctx, app.AiClient, message, g.Entities())
	if err != nil {
		return nil, fmt.Errorf("failed to extract entities: %v", err)
	}

	updated := ingest.ApplyExtraction(g, result)

	graphContext, err := g.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize graph: %v", err)
	}

	history, err := q.ListRecentMessages(ctx, db.ListRecentMessagesParams{
		CaseID: cs.ID,
		Limit:  chatHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %v", err)
	}

	prompt := fmt.Sprintf(ai.AnalysisPrompt, message, string(graphContext))

	// The first turn has no conversation to replay; later turns go through
	// the chat API with the stored history.
	var answer string
	if len(history) == 0 {
		answer, err = app.AiClient.GenerateCompletion(
			ctx,
			prompt,
			ai.WithSystemPrompts(ai.ChatSystemPrompt),
		)
	} else {
		answer, err = app.AiClient.GenerateChat(
			ctx,
			buildChatTurn(history, prompt),
			ai.WithSystemPrompts(ai.ChatSystemPrompt),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %v", err)
	}
	answer = util.SanitizePostgresText(answer)

	// The graph update and the message inserts commit together so that a
	// stored conversation never references facts the graph does not hold.
	tx, err := app.DBConn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)
	qtx := q.WithTx(tx)

	if updated {
		if err := ingest.SaveCaseGraph(&cs, g); err != nil {
			return nil, fmt.Errorf("failed to serialize graph: %v", err)
		}
		err = qtx.UpdateCaseGraph(ctx, db.UpdateCaseGraphParams{
			ID:        cs.ID,
			GraphJSON: cs.GraphJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save graph: %v", err)
		}
	}

	userMsgID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %v", err)
	}
	userMsg, err := qtx.AddMessage(ctx, db.AddMessageParams{
		PublicID: userMsgID,
		CaseID:   cs.ID,
		Role:     "user",
		Content:  message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store user message: %v", err)
	}

	assistantMsgID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %v", err)
	}
	assistantMsg, err := qtx.AddMessage(ctx, db.AddMessageParams{
		PublicID: assistantMsgID,
		CaseID:   cs.ID,
		Role:     "assistant",
		Content:  answer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	return &chatTurnResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		GraphUpdated:     updated,
	}, nil
}

// ChatCaseHandler handles a chat turn against a case. The message is mined
// for entities before the assistant answers, so new facts land in the graph
// even when the user is just describing the situation.
func ChatCaseHandler(c echo.Context) error {
	type chatRequest struct {
		CaseID  int64  `param:"id" validate:"required,numeric"`
		Message string `json:"message" validate:"required"`
	}

	type chatResponse struct {
		Message          string           `json:"message"`
		UserMessage      *db.Message      `json:"user_message,omitempty"`
		AssistantMessage *db.Message      `json:"assistant_message,omitempty"`
		GraphUpdated     bool             `json:"graph_updated"`
		Metrics          *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(chatRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	result, err := runChatTurn(ctx, app, user.UserID, data.CaseID, data.Message)
	if err != nil {
		if errors.Is(err, errCaseNotFound) {
			return c.JSON(http.StatusNotFound, chatResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Chat turn failed", "case_id", data.CaseID, "err", err)
		return c.JSON(http.StatusInternalServerError, chatResponse{
			Message: "Internal server error",
		})
	}

	metrics := app.AiClient.GetMetrics()
	return c.JSON(http.StatusOK, chatResponse{
		Message:          "Chat processed successfully",
		UserMessage:      &result.UserMessage,
		AssistantMessage: &result.AssistantMessage,
		GraphUpdated:     result.GraphUpdated,
		Metrics:          &metrics,
	})
}
