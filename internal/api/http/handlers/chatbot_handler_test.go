package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/service"
)

func newChatTestApp() *fiber.App {
	app := fiber.New()
	handler := NewChatbotHandler(service.NewChatbotService())
	app.Post("/plant-gpt/chat", handler.Chat)
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) dto.ChatResponse {
	t.Helper()
	req := httptest.NewRequest("POST", "/plant-gpt/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

func TestChat_AnswersKeywordQuestion(t *testing.T) {
	app := newChatTestApp()

	reply := postChat(t, app, `{"message":"why are my leaves yellow?"}`)
	assert.Contains(t, reply.Response, "Yellow Leaves")
}

func TestChat_EmptyMessage(t *testing.T) {
	app := newChatTestApp()

	reply := postChat(t, app, `{"message":""}`)
	assert.Equal(t, service.EmptyMessageResponse, reply.Response)
}

func TestChat_MalformedBodyStillAnswers(t *testing.T) {
	app := newChatTestApp()

	reply := postChat(t, app, `{not json`)
	assert.Equal(t, service.EmptyMessageResponse, reply.Response)
}
