package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/inquesta/casefile/internal/util"
	"github.com/inquesta/casefile/pkg/ai"
	oai "github.com/inquesta/casefile/pkg/ai/ollama"
	gai "github.com/inquesta/casefile/pkg/ai/openai"
	"github.com/inquesta/casefile/pkg/logger"
)

type AppUser struct {
	UserID int64
	Email  string
}

type App struct {
	DBConn    *pgxpool.Pool
	Queue     *amqp091.Channel
	S3        *s3.Client
	AiClient  ai.CaseAIClient
	JWTSecret []byte
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	queue *amqp091.Channel,
	s3 *s3.Client,
	jwtSecret []byte,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			adapter := util.GetEnv("AI_ADAPTER")
			var aiClient ai.CaseAIClient

			switch adapter {
			case "ollama":
				client, err := oai.NewCaseOllamaClient(oai.NewCaseOllamaClientParams{
					ChatModel:       util.GetEnv("AI_CHAT_MODEL"),
					ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

					BaseURL: util.GetEnv("AI_CHAT_URL"),
					ApiKey:  util.GetEnv("AI_CHAT_KEY"),

					MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
				})
				if err != nil {
					logger.Fatal("Failed to create Ollama client", "err", err)
				}
				aiClient = client
			default:
				aiClient = gai.NewCaseOpenAIClient(gai.NewCaseOpenAIClientParams{
					ChatModel:       util.GetEnv("AI_CHAT_MODEL"),
					ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

					ChatURL: util.GetEnv("AI_CHAT_URL"),
					ChatKey: util.GetEnv("AI_CHAT_KEY"),
				})
			}

			app := &App{
				DBConn:    db,
				Queue:     queue,
				S3:        s3,
				AiClient:  aiClient,
				JWTSecret: jwtSecret,
			}
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
