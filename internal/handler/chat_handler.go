package handler

import (
	"log/slog"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/middleware"
	"github.com/arturoeanton/resume-insight-assistant/internal/service"
	"github.com/gofiber/fiber/v3"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the Resume Insight Assistant Backend!"

// ChatHandler exposes the grounded answer pipeline over HTTP.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Register sets up chat routes.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/", h.Root)
	router.Post("/api/chat", h.Chat)
}

// Root is the liveness/welcome endpoint.
func (h *ChatHandler) Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": WelcomeMessage})
}

// Chat answers a user message. Pipeline failures are reported in the reply
// text with status 200; only an unreadable body is rejected.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var body domain.ChatRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	slog.Info("received user message", "request_id", middleware.GetRequestID(c), "message", body.Message)

	resp := h.chatService.Answer(c.Context(), body.Message)

	slog.Info("sending reply", "request_id", middleware.GetRequestID(c), "outcome", resp.Outcome)
	return c.JSON(resp)
}
