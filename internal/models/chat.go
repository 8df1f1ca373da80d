package models

// Message is a single entry in the conversation sent to the completion API.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryTurn is one prior turn as the frontend stores it.
type HistoryTurn struct {
	Sender  string `json:"sender"` // "user" or anything else for the chief
	Message string `json:"message"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message             string        `json:"message"`
	Mode                string        `json:"mode"`
	ConversationHistory []HistoryTurn `json:"conversationHistory"`
}

// ChatResponse is the reply returned to the caller on success.
type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}
