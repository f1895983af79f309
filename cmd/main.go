package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"portfolio-chat/handler"
	"portfolio-chat/internal/integrations/openai"
	"portfolio-chat/internal/integrations/paramstore"
	"portfolio-chat/internal/prompts"
	"portfolio-chat/internal/repository"
	"portfolio-chat/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	portfolioTable := mustEnv("PORTFOLIO_TABLE")
	paramPrefix := mustEnv("PARAM_PREFIX")
	openaiModel := os.Getenv("OPENAI_MODEL") // empty selects the client default

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	projectStore, err := repository.New(awsdynamodb.NewFromConfig(cfg), portfolioTable)
	if err != nil {
		slog.Error("failed to create portfolio store", "err", err)
		os.Exit(1)
	}
	promptSource, err := prompts.New(ssmClient, paramPrefix)
	if err != nil {
		slog.Error("failed to create prompt source", "err", err)
		os.Exit(1)
	}
	llmClient, err := openai.NewClient(ssmClient, paramPrefix, openaiModel)
	if err != nil {
		slog.Error("failed to create OpenAI client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(llmClient, projectStore, promptSource, slog.Default())
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}
