package dto

// ChatTurn is a single message of the client-side conversation history
type ChatTurn struct {
	Content string `json:"content"`
	IsBot   bool   `json:"isBot"`
}

// ChatRequest represents a question for the platform assistant
type ChatRequest struct {
	Message             string     `json:"message" binding:"required"`
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}
