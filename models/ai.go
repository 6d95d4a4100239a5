package models

// ChatRequest is the payload of POST /api/ai/chat.
type ChatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

// ChatTurn is one message in a stored conversation.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// ChatContext is the conversation kept between requests.
type ChatContext struct {
	Turns []ChatTurn `json:"turns"`
}
