package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/app/services"
)

// chatFallbackResponse is returned when the assistant backend is unreachable
const chatFallbackResponse = "I'm having trouble connecting right now. Please try again in a moment, or feel free to explore the platform features on your own!"

// ChatController handles assistant chat requests
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage forwards a question to the platform assistant
// @Summary Chat with the assistant
// @Description Sends a message, with optional conversation history, to the platform assistant and returns its reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message and optional history"
// @Success 200 {object} dto.ChatResponse "Assistant reply"
// @Failure 400 {object} dto.ErrorResponse "Message missing"
// @Failure 500 {object} dto.ChatResponse "Upstream failure, canned reply included"
// @Router /chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid chat payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	reply, err := c.chatService.SendMessage(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Chat request failed")
		// The client still gets a usable reply to show
		ctx.JSON(http.StatusInternalServerError, dto.ChatResponse{
			Response:  chatFallbackResponse,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{
		Response:  reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
