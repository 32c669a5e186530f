package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/ingest"
	"github.com/inquesta/casefile/internal/util"
	"github.com/inquesta/casefile/pkg/ai"
	"github.com/inquesta/casefile/pkg/loader"
	loaderdoc "github.com/inquesta/casefile/pkg/loader/doc"
	loaderpdf "github.com/inquesta/casefile/pkg/loader/pdf"
	loaderweb "github.com/inquesta/casefile/pkg/loader/web"
	"github.com/inquesta/casefile/pkg/logger"
)

// IngestMessage is the payload published to the ingest queue. FileID refers
// to an uploaded evidence file; alternatively a raw statement can be carried
// inline for ingestion without an evidence record.
type IngestMessage struct {
	CaseID    int64  `json:"case_id"`
	FileID    int64  `json:"file_id,omitempty"`
	Statement string `json:"statement,omitempty"`
}

// IngestProcessor folds uploaded evidence files into their case graph. The
// wrapped loaders cache parsed text so that retried messages do not hit
// storage or re-parse the document again.
type IngestProcessor struct {
	conn     *pgxpool.Pool
	aiClient ai.CaseAIClient
	raw      loader.EvidenceFileLoader
	pdf      loader.EvidenceFileLoader
	doc      loader.EvidenceFileLoader
	web      loader.EvidenceFileLoader
}

// NewIngestProcessorParams defines the input parameters for creating a new
// IngestProcessor instance. Storage is the loader used to fetch raw file
// bytes, usually backed by S3.
type NewIngestProcessorParams struct {
	Conn     *pgxpool.Pool
	AiClient ai.CaseAIClient
	Storage  loader.EvidenceFileLoader
}

func NewIngestProcessor(params NewIngestProcessorParams) *IngestProcessor {
	return &IngestProcessor{
		conn:     params.Conn,
		aiClient: params.AiClient,
		raw:      params.Storage,
		pdf:      loaderpdf.NewPDFEvidenceLoader(params.Storage),
		doc:      loaderdoc.NewDocEvidenceLoader(params.Storage),
		web:      loaderweb.NewWebEvidenceLoader(),
	}
}

func (p *IngestProcessor) evidenceFile(file db.EvidenceFile) loader.EvidenceFile {
	params := loader.NewEvidenceFileParams{
		ID:       strconv.FormatInt(file.ID, 10),
		FilePath: file.FileKey,
	}

	switch loader.EvidenceFileType(file.FileType) {
	case loader.EvidenceFileTypePDF:
		params.Loader = p.pdf
		return loader.NewPDFEvidenceFile(params)
	case loader.EvidenceFileTypeDocument:
		params.Loader = p.doc
		return loader.NewDocumentEvidenceFile(params)
	case loader.EvidenceFileTypeWeb:
		params.Loader = p.web
		return loader.NewWebEvidenceFile(params)
	default:
		params.Loader = p.raw
		return loader.NewTextEvidenceFile(params)
	}
}

// foldText extracts entities and relations from text against the case's
// known entities and persists the updated graph. Folding is idempotent, so
// redelivered messages are safe.
func (p *IngestProcessor) foldText(ctx context.Context, queries *db.Queries, caseID int64, text string) error {
	c, err := queries.GetCase(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to load case %d: %v", caseID, err)
	}

	g := ingest.LoadCaseGraph(&c)
	result, err := ai.ExtractFromStatement(ctx, p.aiClient, text, g.Entities())
	if err != nil {
		return fmt.Errorf("failed to extract entities for case %d: %v", caseID, err)
	}

	if ingest.ApplyExtraction(g, result) {
		if err := ingest.SaveCaseGraph(&c, g); err != nil {
			return fmt.Errorf("failed to serialize graph for case %d: %v", c.ID, err)
		}
		err = queries.UpdateCaseGraph(ctx, db.UpdateCaseGraphParams{
			ID:        c.ID,
			GraphJSON: c.GraphJSON,
		})
		if err != nil {
			return fmt.Errorf("failed to save graph for case %d: %v", c.ID, err)
		}
	}

	logger.Info("Folded text into case graph", "case_id", c.ID, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return nil
}

// Process handles a single ingest message. Evidence files are loaded through
// the configured loaders; inline statements are folded directly.
func (p *IngestProcessor) Process(ctx context.Context, body []byte) error {
	var msg IngestMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal ingest message: %v", err)
	}

	queries := db.New(p.conn)

	if msg.Statement != "" {
		return p.foldText(ctx, queries, msg.CaseID, util.SanitizePostgresText(msg.Statement))
	}

	file, err := queries.GetEvidenceFile(ctx, msg.FileID)
	if err != nil {
		return fmt.Errorf("failed to load evidence file %d: %v", msg.FileID, err)
	}

	err = queries.UpdateEvidenceFileStatus(ctx, db.UpdateEvidenceFileStatusParams{
		ID:     file.ID,
		Status: "processing",
	})
	if err != nil {
		return fmt.Errorf("failed to mark evidence file %d as processing: %v", file.ID, err)
	}

	ev := p.evidenceFile(file)
	raw, err := ev.GetText(ctx)
	if err != nil {
		p.markFailed(ctx, queries, file.ID)
		return fmt.Errorf("failed to load text for evidence file %d: %v", file.ID, err)
	}

	err = p.foldText(ctx, queries, file.CaseID, util.SanitizePostgresText(string(raw)))
	if err != nil {
		p.markFailed(ctx, queries, file.ID)
		return err
	}

	err = queries.UpdateEvidenceFileStatus(ctx, db.UpdateEvidenceFileStatusParams{
		ID:     file.ID,
		Status: "done",
	})
	if err != nil {
		return fmt.Errorf("failed to mark evidence file %d as done: %v", file.ID, err)
	}

	logger.Info("Processed evidence file", "file_id", file.ID, "case_id", file.CaseID)
	return nil
}

func (p *IngestProcessor) markFailed(ctx context.Context, queries *db.Queries, fileID int64) {
	err := queries.UpdateEvidenceFileStatus(ctx, db.UpdateEvidenceFileStatusParams{
		ID:     fileID,
		Status: "failed",
	})
	if err != nil {
		logger.Error("Failed to mark evidence file as failed", "file_id", fileID, "error", err)
	}
}
