package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"portfolio-chat/internal/domain"
)

const (
	// TemplateChat is the prompt-source key for the user prompt template.
	TemplateChat = "chat"

	// Health states reported by HealthCheck.
	HealthOK             = "OK"
	HealthLLMUnavailable = "LLM_UNAVAILABLE"
	HealthLLMError       = "LLM_ERROR"

	// Daily request allowance reported by Usage. Not enforced.
	usageDailyLimit = 100

	msgStandardPending    = "I don't have a prepared answer for that yet. Could you rephrase your question?"
	msgServiceUnavailable = "The assistant is taking a short break right now. Please try again in a few minutes!"
	msgSystemError        = "Sorry, something went wrong on my side while answering. Please try again."
)

// LLMClient is the language-model port. A single implementation is wired at
// startup and must be safe for concurrent use by simultaneous requests.
type LLMClient interface {
	IsAvailable(ctx context.Context) bool
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// PromptSource supplies externally configured prompt text. Implementations
// fall back to fixed defaults and never fail the pipeline.
type PromptSource interface {
	SystemPrompt(ctx context.Context) string
	Template(ctx context.Context, key string) string
}

// ChatService runs the chat pipeline: validate, classify, then either answer
// immediately or ground a model call on portfolio context. Every code path
// ends in a well-formed ChatResponse; nothing escapes as an error.
type ChatService struct {
	llm      LLMClient
	projects ProjectSource
	prompts  PromptSource
	logger   *slog.Logger
}

// ChatInput is one visitor question with its optional project hint.
type ChatInput struct {
	Question        string
	SelectedProject string
	SessionID       string
}

func NewChatService(llm LLMClient, projects ProjectSource, prompts PromptSource, logger *slog.Logger) (*ChatService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	if projects == nil {
		return nil, errors.New("usecase: project source must not be nil")
	}
	if prompts == nil {
		return nil, errors.New("usecase: prompt source must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{llm: llm, projects: projects, prompts: prompts, logger: logger}, nil
}

// ProcessQuestion answers one visitor question. Unexpected failures anywhere
// in the pipeline are caught here and folded into a SystemError response.
func (s *ChatService) ProcessQuestion(ctx context.Context, in ChatInput) (resp domain.ChatResponse) {
	session := strings.TrimSpace(in.SessionID)
	if session == "" {
		session = newSessionID()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat pipeline panic", "session", session, "panic", r)
			resp = domain.ChatResponse{
				Text:         msgSystemError,
				ResponseType: domain.ResponseSystemError,
				ErrorDetail:  "unexpected_failure",
			}
		}
	}()

	if v := Validate(in.Question); !v.OK {
		return domain.ChatResponse{
			Text:         v.Message,
			ResponseType: v.ResponseType,
			ErrorDetail:  v.Reason,
		}
	}

	question := strings.TrimSpace(in.Question)
	cls := Classify(question)
	s.logger.Info("question classified",
		"session", session, "type", cls.Type, "confidence", cls.Confidence, "useModel", cls.UseModel)

	if cls.ImmediateAnswer != "" {
		rt := domain.ResponseSuccess
		if cls.Type == domain.QuestionPersonalInfo {
			rt = domain.ResponsePersonalInfo
		}
		return domain.ChatResponse{Text: cls.ImmediateAnswer, ResponseType: rt, Success: true}
	}
	if !cls.UseModel {
		return domain.ChatResponse{Text: msgStandardPending, ResponseType: domain.ResponseSuccess, Success: true}
	}

	return s.generate(ctx, session, question, in.SelectedProject)
}

// generate is the model branch: build context, assemble the prompt, call the
// orchestrated model and map the outcome onto the response taxonomy.
func (s *ChatService) generate(ctx context.Context, session, question, selectedProject string) domain.ChatResponse {
	contextText := BuildContext(ctx, s.projects, selectedProject)
	systemPrompt := s.prompts.SystemPrompt(ctx)
	template := s.prompts.Template(ctx, TemplateChat)
	userPrompt := BuildUserPrompt(template, contextText, question)

	answer, err := s.invokeModel(ctx, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, ErrLLMUnavailable) {
			// Not an error state: the visitor sees a friendly apology.
			return domain.ChatResponse{
				Text:         msgServiceUnavailable,
				ResponseType: domain.ResponseSuccess,
				Success:      true,
			}
		}
		s.logger.Error("llm call failed", "session", session, "err", err)
		return domain.ChatResponse{
			Text:         msgSystemError,
			ResponseType: domain.ResponseSystemError,
			ErrorDetail:  "model_call_failed",
		}
	}

	return domain.ChatResponse{Text: answer, ResponseType: domain.ResponseSuccess, Success: true}
}

// invokeModel is the orchestration boundary. Availability is re-checked on
// every call (no cached down state) and provider errors never escape
// unwrapped.
func (s *ChatService) invokeModel(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if !s.llm.IsAvailable(ctx) {
		return "", ErrLLMUnavailable
	}
	answer, err := s.llm.Chat(ctx, systemPrompt, userMessage)
	if err != nil {
		return "", &LLMCallError{Err: err}
	}
	return answer, nil
}

// HealthCheck reflects the LLM port's availability. A failure inside the
// check itself reports LLM_ERROR rather than propagating.
func (s *ChatService) HealthCheck(ctx context.Context) (status string) {
	defer func() {
		if recover() != nil {
			status = HealthLLMError
		}
	}()
	if s.llm.IsAvailable(ctx) {
		return HealthOK
	}
	return HealthLLMUnavailable
}

// Usage reports request counters. Rate limiting is not enforced; counters
// stay at zero until a real limiter with its own counter store lands.
func (s *ChatService) Usage() domain.UsageReport {
	return domain.UsageReport{DailyLimit: usageDailyLimit}
}

// newSessionID is a seam for tests, mirroring uuid generation at the edges.
var newSessionID = func() string {
	return uuid.NewString()
}
