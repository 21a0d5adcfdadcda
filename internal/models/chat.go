package models

import "time"

// MessageType distinguishes player chat from engine-generated notices.
type MessageType string

const (
	PlayerMessage MessageType = "PLAYER_MESSAGE"
	SystemMessage MessageType = "SYSTEM_MESSAGE"
)

// ChatLimit bounds the per-game chat log; the oldest message is evicted
// once the limit is reached.
const ChatLimit = 100

// ChatMessage is a single chat log entry. The json tags match the wire
// format of chat_message events and projected chat history.
type ChatMessage struct {
	Sender    string      `json:"sender"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
}

// NewChatMessage stamps a chat message with the current time.
func NewChatMessage(sender, message string, typ MessageType) ChatMessage {
	return ChatMessage{
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
		Type:      typ,
	}
}
