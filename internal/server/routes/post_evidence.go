package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/queue"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/internal/storage"
	"github.com/inquesta/casefile/pkg/loader"
	"github.com/inquesta/casefile/pkg/logger"
)

func evidenceTypeForName(name string) loader.EvidenceFileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return loader.EvidenceFileTypePDF
	case ".doc", ".docx":
		return loader.EvidenceFileTypeDocument
	default:
		return loader.EvidenceFileTypeText
	}
}

// AddEvidenceHandler attaches evidence to a case from multipart/form-data.
// Uploaded files land in S3; a "url" form field registers a web page as
// evidence instead. Each evidence record is queued for ingestion into the
// case graph.
func AddEvidenceHandler(c echo.Context) error {
	type addEvidenceParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type addEvidenceResponse struct {
		Message       string            `json:"message"`
		EvidenceFiles []db.EvidenceFile `json:"evidence_files,omitempty"`
	}

	params := new(addEvidenceParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, addEvidenceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, addEvidenceResponse{
			Message: "Invalid request body",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, addEvidenceResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	webURL := c.FormValue("url")
	if len(uploads) == 0 && webURL == "" {
		return c.JSON(http.StatusBadRequest, addEvidenceResponse{
			Message: "No evidence provided",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	tx, err := app.DBConn.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", "err", err)
		return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
			Message: "Internal server error",
		})
	}
	defer tx.Rollback(ctx)
	q := db.New(app.DBConn).WithTx(tx)

	_, err = q.GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, addEvidenceResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
			Message: "Internal server error",
		})
	}

	evidenceFiles := make([]db.EvidenceFile, 0)
	for _, file := range uploads {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, addEvidenceResponse{
				Message: "Could not open file",
			})
		}
		defer src.Close()

		fId, err := gonanoid.New()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
				Message: "Internal server error",
			})
		}
		key, err := storage.PutFile(
			ctx,
			app.S3,
			fmt.Sprintf("cases/%d/evidence", params.CaseID),
			file.Filename,
			fId,
			src,
		)
		if err != nil {
			logger.Error("Failed to upload file", "err", err)
			return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
				Message: "Internal server error",
			})
		}

		evidenceFile, err := q.AddEvidenceFile(ctx, db.AddEvidenceFileParams{
			CaseID:   params.CaseID,
			Name:     file.Filename,
			FileKey:  key,
			FileType: string(evidenceTypeForName(file.Filename)),
		})
		if err != nil {
			logger.Error("Failed to add evidence file", "err", err)
			return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
				Message: "Internal server error",
			})
		}
		evidenceFiles = append(evidenceFiles, evidenceFile)
	}

	if webURL != "" {
		evidenceFile, err := q.AddEvidenceFile(ctx, db.AddEvidenceFileParams{
			CaseID:   params.CaseID,
			Name:     webURL,
			FileKey:  webURL,
			FileType: string(loader.EvidenceFileTypeWeb),
		})
		if err != nil {
			logger.Error("Failed to add evidence file", "err", err)
			return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
				Message: "Internal server error",
			})
		}
		evidenceFiles = append(evidenceFiles, evidenceFile)
	}

	err = tx.Commit(ctx)
	if err != nil {
		logger.Error("Failed to commit transaction", "err", err)
		return c.JSON(http.StatusInternalServerError, addEvidenceResponse{
			Message: "Internal server error",
		})
	}

	for _, evidenceFile := range evidenceFiles {
		body, err := json.Marshal(queue.IngestMessage{
			CaseID: params.CaseID,
			FileID: evidenceFile.ID,
		})
		if err != nil {
			logger.Error("Failed to marshal ingest message", "err", err)
			continue
		}
		err = queue.PublishFIFO(ctx, app.Queue, queue.IngestQueue, body)
		if err != nil {
			logger.Error("Failed to publish to ingest_queue", "err", err)
		}
	}

	return c.JSON(http.StatusOK, addEvidenceResponse{
		Message:       "Evidence added successfully",
		EvidenceFiles: evidenceFiles,
	})
}

// GetEvidenceHandler lists the evidence attached to a case with its
// ingestion status.
func GetEvidenceHandler(c echo.Context) error {
	type getEvidenceParams struct {
		CaseID int64 `param:"id" validate:"required,numeric"`
	}

	type getEvidenceResponse struct {
		Message       string            `json:"message"`
		EvidenceFiles []db.EvidenceFile `json:"evidence_files,omitempty"`
	}

	params := new(getEvidenceParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getEvidenceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getEvidenceResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	_, err := q.GetCaseForUser(ctx, db.GetCaseForUserParams{
		ID:     params.CaseID,
		UserID: user.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, getEvidenceResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to load case", "err", err)
		return c.JSON(http.StatusInternalServerError, getEvidenceResponse{
			Message: "Internal server error",
		})
	}

	evidenceFiles, err := q.ListEvidenceFiles(ctx, params.CaseID)
	if err != nil {
		logger.Error("Failed to list evidence files", "err", err)
		return c.JSON(http.StatusInternalServerError, getEvidenceResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getEvidenceResponse{
		Message:       "Evidence retrieved successfully",
		EvidenceFiles: evidenceFiles,
	})
}
