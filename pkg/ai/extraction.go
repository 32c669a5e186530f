package ai

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/inquesta/casefile/internal/util"
)

const (
	// ExtractChunkTokens caps each extraction request. Statements above this
	// are split on sentence boundaries and processed as separate chunks.
	ExtractChunkTokens = 3000

	// ExtractConcurrency limits parallel extraction requests per statement.
	ExtractConcurrency = 4

	// ExtractMaxTries retries failed extraction requests, which covers
	// transient model errors and malformed JSON responses.
	ExtractMaxTries = 3

	extractEncoder = "o200k_base"
)

// ExtractedEntity is a single entity produced by the extraction model.
type ExtractedEntity struct {
	Name       string         `json:"name" jsonschema_description:"Name of the entity."`
	Type       string         `json:"type" jsonschema_description:"Type of the entity (Person, Location, Object, Event, Organization)."`
	Attributes map[string]any `json:"attributes" jsonschema_description:"Additional attributes like age, role, time."`
}

// ExtractedRelation is a single relationship produced by the extraction model.
type ExtractedRelation struct {
	Source       string `json:"source" jsonschema_description:"Name of the source entity."`
	Target       string `json:"target" jsonschema_description:"Name of the target entity."`
	RelationType string `json:"relation_type" jsonschema_description:"Type of relationship (e.g. seen_at, works_for, knows)."`
}

// ExtractionResult is the structured output of one extraction call.
type ExtractionResult struct {
	Entities  []ExtractedEntity   `json:"entities" jsonschema_description:"Entities found in the text."`
	Relations []ExtractedRelation `json:"relations" jsonschema_description:"Relationships between the found entities."`
}

// ExtractFromStatement runs entity extraction over a free-text statement.
// Long statements are chunked on sentence boundaries and processed
// concurrently; results are concatenated in chunk order so that downstream
// graph merging stays deterministic. existingEntities are the labels already
// present in the case graph and steer the model toward reusing known names.
func ExtractFromStatement(
	ctx context.Context,
	aiClient CaseAIClient,
	statement string,
	existingEntities []string,
) (*ExtractionResult, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("ai client is nil")
	}

	statement = strings.TrimSpace(statement)
	if statement == "" {
		return &ExtractionResult{}, nil
	}

	chunks, err := util.ChunkText(statement, extractEncoder, ExtractChunkTokens)
	if err != nil {
		return nil, fmt.Errorf("chunk statement: %w", err)
	}
	if len(chunks) == 0 {
		return &ExtractionResult{}, nil
	}

	known := strings.Join(existingEntities, ", ")
	results := make([]*ExtractionResult, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(ExtractConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			prompt := fmt.Sprintf("Analyze this text:\n%s", chunk)
			result, err := util.RetryWithContext(gCtx, ExtractMaxTries, func(ctx context.Context) (*ExtractionResult, error) {
				var result ExtractionResult
				err := aiClient.GenerateCompletionWithFormat(
					ctx,
					"extraction_result",
					"Entities and relationships extracted from investigative text",
					prompt,
					&result,
					WithSystemPrompts(fmt.Sprintf(ExtractPrompt, known)),
					WithTemperature(0.2),
				)
				if err != nil {
					return nil, err
				}
				return &result, nil
			})
			if err != nil {
				return fmt.Errorf("extract chunk %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &ExtractionResult{}
	for _, r := range results {
		if r == nil {
			continue
		}
		merged.Entities = append(merged.Entities, r.Entities...)
		merged.Relations = append(merged.Relations, r.Relations...)
	}
	return merged, nil
}
