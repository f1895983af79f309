// Package handler adapts API Gateway proxy events to the chat service.
// Pipeline failures are in-band response types, so chat calls always return
// HTTP 200; only malformed requests and unknown routes map to error codes.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/usecase"
)

// ChatService is the inbound port the handler drives.
type ChatService interface {
	ProcessQuestion(ctx context.Context, in usecase.ChatInput) domain.ChatResponse
	HealthCheck(ctx context.Context) string
	Usage() domain.UsageReport
}

type Handler struct {
	service ChatService
}

func NewHandler(service ChatService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	return &Handler{service: service}, nil
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handle routes one proxy event: POST /chat, GET /health, GET /usage.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	method := strings.ToUpper(event.HTTPMethod)
	path := event.Path

	switch {
	case method == http.MethodPost && path == "/chat":
		return h.handleChat(ctx, event), nil
	case method == http.MethodGet && path == "/health":
		return jsonResponse(http.StatusOK, healthResponse{Status: h.service.HealthCheck(ctx)}), nil
	case method == http.MethodGet && path == "/usage":
		return jsonResponse(http.StatusOK, h.service.Usage()), nil
	default:
		return jsonResponse(http.StatusNotFound, errorResponse{Error: "not_found"}), nil
	}
}

func (h *Handler) handleChat(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	body, err := requestBody(event)
	if err != nil {
		return badRequest()
	}

	var req domain.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return badRequest()
	}

	resp := h.service.ProcessQuestion(ctx, usecase.ChatInput{
		Question:        req.Question,
		SelectedProject: req.SelectedProject,
		SessionID:       req.SessionID,
	})
	return jsonResponse(http.StatusOK, resp)
}

func badRequest() events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusBadRequest, domain.ChatResponse{
		Text:         "The request body could not be read. Send JSON with a question field.",
		ResponseType: domain.ResponseInvalidInput,
		ErrorDetail:  "malformed_body",
	})
}

func requestBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	return base64.StdEncoding.DecodeString(event.Body)
}

func jsonResponse(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"encoding_failed"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
