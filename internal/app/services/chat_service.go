package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/config"
)

// chatSystemPrompt instructs the model how to behave as the platform assistant
const chatSystemPrompt = `You are EduBot, an intelligent and friendly assistant for an educational platform called EduConnect that connects students with no access to formal education to volunteers who teach them.

Your role is to:
- Answer any general education-related questions (e.g., science, math, language, coding, history, etc.)
- Help users understand how to use the platform:
  * How to sign up as a student or volunteer
  * How to book a session (for students)
  * How to create a session (for volunteers)
  * How to upload resume (for volunteers)
  * How to view dashboard features
  * How to edit profile
  * How to change profile picture
  * How to view booked sessions
  * How to view enrolled students (for volunteers)
  * How to edit or delete sessions (for volunteers)
- Provide clear, simple, and respectful guidance for both students and volunteers
- Encourage learning and help users feel supported, no matter their background

Platform-specific information:
- Students can browse and book sessions created by volunteers
- Volunteers can create sessions, view their students, manage and edit their sessions
- Both users can edit their profiles and upload profile pictures
- The platform is designed for people without access to formal education
- Sessions can be on any educational topic
- Volunteers can edit their sessions anytime before they start
- If a volunteer deletes a session, it will be removed from student view automatically

Always assume the user may be new to technology and needs clear step-by-step answers. Avoid technical jargon. Be friendly, encouraging, and supportive at all times. Keep responses concise but helpful.`

// historyWindow limits how many previous turns are forwarded to the model
const historyWindow = 5

// ChatService defines the interface for assistant chat operations
type ChatService interface {
	SendMessage(ctx context.Context, req *dto.ChatRequest) (string, error)
}

// chatServiceImpl implements ChatService against an OpenAI-compatible API
type chatServiceImpl struct {
	client openai.Client
	model  string
	logger zerolog.Logger
}

// NewChatService creates a ChatService backed by the configured provider
func NewChatService(cfg config.ChatConfig, logger zerolog.Logger) ChatService {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &chatServiceImpl{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}
}

// SendMessage forwards the user's message, with a window of recent history,
// to the model and returns its reply
func (s *chatServiceImpl) SendMessage(ctx context.Context, req *dto.ChatRequest) (string, error) {
	userContent := req.Message
	if context := buildConversationContext(req.ConversationHistory); context != "" {
		userContent = fmt.Sprintf("Previous conversation context:\n%s\n\nCurrent question: %s", context, req.Message)
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt),
			openai.UserMessage(userContent),
		},
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
		TopP:        openai.Float(1),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Chat completion request failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// buildConversationContext flattens the last few turns into a transcript
func buildConversationContext(history []dto.ChatTurn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "User"
		if turn.IsBot {
			speaker = "Assistant"
		}
		lines = append(lines, speaker+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
