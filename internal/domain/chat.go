package domain

import "time"

// ChatMessage one line in the assistant panel
type ChatMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}
