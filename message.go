package ace

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message represents a single turn in a conversation transcript.
type Message struct {
	// ID is an optional unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// ToolCalls contains tool invocation requests. Populated on assistant
	// messages when the model wants to use tools, and echoed on tool
	// messages so the originating call can be replayed on the wire.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolResults contains results from tool executions.
	// Only populated when Role is RoleTool.
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewUserMessage creates a user message with the given text.
func NewUserMessage(text string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleUser, Content: text}
}

// NewAssistantMessage creates an assistant message with the given text.
func NewAssistantMessage(text string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleAssistant, Content: text}
}

// NewToolTurn creates a tool message pairing the calls the model issued
// with the results of dispatching them. Keeping both sides on the turn
// lets a transcript be converted back to any provider's wire format
// without guessing which call produced which result.
func NewToolTurn(calls []ToolCall, results []ToolResult) Message {
	return Message{
		ID:          GenerateMessageID(),
		Role:        RoleTool,
		ToolCalls:   calls,
		ToolResults: results,
	}
}

// Response represents a complete response from a chat provider.
type Response struct {
	Content      string `json:"content,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Usage        Usage  `json:"usage"`
	// ToolCalls contains any tool invocation requests from the model.
	// Check if len(ToolCalls) > 0 to determine if tools should be executed.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Usage contains token usage information for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}
