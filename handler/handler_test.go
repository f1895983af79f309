package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/usecase"
)

type stubService struct {
	resp   domain.ChatResponse
	health string
	in     usecase.ChatInput
	calls  int
}

func (s *stubService) ProcessQuestion(_ context.Context, in usecase.ChatInput) domain.ChatResponse {
	s.calls++
	s.in = in
	return s.resp
}

func (s *stubService) HealthCheck(_ context.Context) string { return s.health }

func (s *stubService) Usage() domain.UsageReport {
	return domain.UsageReport{DailyLimit: 100}
}

func makeEvent(method, path, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func parseBody[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestNewHandler_ValidatesDependency(t *testing.T) {
	_, err := NewHandler(nil)
	require.Error(t, err)
}

func TestHandle_Chat_HappyPath(t *testing.T) {
	svc := &stubService{resp: domain.ChatResponse{
		Text:         "I build backends.",
		ResponseType: domain.ResponseSuccess,
		Success:      true,
	}}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	event := makeEvent(http.MethodPost, "/chat",
		`{"question":"What do you do?","selectedProject":"Portfolio Site","sessionId":"s-1"}`)
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, usecase.ChatInput{
		Question:        "What do you do?",
		SelectedProject: "Portfolio Site",
		SessionID:       "s-1",
	}, svc.in)

	out := parseBody[domain.ChatResponse](t, resp.Body)
	require.Equal(t, "I build backends.", out.Text)
	require.Equal(t, domain.ResponseSuccess, out.ResponseType)
	require.True(t, out.Success)
}

func TestHandle_Chat_Base64Body(t *testing.T) {
	svc := &stubService{resp: domain.ChatResponse{ResponseType: domain.ResponseSuccess, Success: true}}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	event := makeEvent(http.MethodPost, "/chat",
		base64.StdEncoding.EncodeToString([]byte(`{"question":"hi there"}`)))
	event.IsBase64Encoded = true

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hi there", svc.in.Question)
}

func TestHandle_Chat_MalformedBody(t *testing.T) {
	svc := &stubService{}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(http.MethodPost, "/chat", "not-json"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, svc.calls)

	out := parseBody[domain.ChatResponse](t, resp.Body)
	require.Equal(t, domain.ResponseInvalidInput, out.ResponseType)
	require.False(t, out.Success)
}

func TestHandle_Health(t *testing.T) {
	svc := &stubService{health: usecase.HealthLLMUnavailable}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(http.MethodGet, "/health", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := parseBody[healthResponse](t, resp.Body)
	require.Equal(t, usecase.HealthLLMUnavailable, out.Status)
}

func TestHandle_Usage(t *testing.T) {
	svc := &stubService{}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(http.MethodGet, "/usage", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := parseBody[domain.UsageReport](t, resp.Body)
	require.Zero(t, out.DailyCount)
	require.Equal(t, 100, out.DailyLimit)
}

func TestHandle_UnknownRoute(t *testing.T) {
	svc := &stubService{}
	h, err := NewHandler(svc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(http.MethodGet, "/nope", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
