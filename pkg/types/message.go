package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	// RoleSystem is the role for system instruction messages.
	RoleSystem MessageRole = "system"
	// RoleUser is the role for user-supplied messages.
	RoleUser MessageRole = "user"
	// RoleAssistant is the role for model-generated messages.
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversation message exchanged with an LLM provider.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewSystemMessage creates a message with the system role.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a message with the user role.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a message with the assistant role.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// ModelInfo describes the LLM model backing a provider.
type ModelInfo struct {
	Provider          string
	Name              string
	MaxTokens         int
	SupportsStreaming bool
	Metadata          map[string]interface{}
}
