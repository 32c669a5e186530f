package openai

import (
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/inquesta/casefile/pkg/ai"
)

// CaseOpenAIClient talks to an OpenAI-compatible chat API for entity
// extraction and investigative chat.
//
// A CaseOpenAIClient should be created using NewCaseOpenAIClient.
type CaseOpenAIClient struct {
	chatModel       string
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewCaseOpenAIClientParams defines the configuration parameters for creating
// a new CaseOpenAIClient.
//
// ChatModel is used for chat and analysis responses.
// ExtractionModel is used for structured entity extraction.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL means the official OpenAI endpoint.
type NewCaseOpenAIClientParams struct {
	ChatModel       string
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewCaseOpenAIClient creates and returns a new CaseOpenAIClient configured
// with the provided parameters.
func NewCaseOpenAIClient(
	params NewCaseOpenAIClientParams,
) *CaseOpenAIClient {
	return &CaseOpenAIClient{
		chatModel:       params.ChatModel,
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
