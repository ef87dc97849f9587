package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/service"
)

// ChatbotHandler serves the plant advice page and its chat endpoint.
type ChatbotHandler struct {
	chatbot *service.ChatbotService
}

// NewChatbotHandler constructs handler.
func NewChatbotHandler(chatbot *service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// Page handles GET /plant-gpt.
func (h *ChatbotHandler) Page(c *fiber.Ctx) error {
	return c.Render("plant-gpt", fiber.Map{
		"Title": "Plant Care Assistant",
		"User":  mustIdentity(c),
	})
}

// Chat handles POST /plant-gpt/chat. Unparseable input still gets the help
// response instead of an error; the widget always has something to show.
func (h *ChatbotHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	_ = c.BodyParser(&req)
	return c.JSON(dto.ChatResponse{Response: h.chatbot.Reply(req.Message)})
}
