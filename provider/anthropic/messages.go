package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/illyshaieb/ace"
)

// convertMessages maps an ace transcript to Anthropic message params. A
// tool turn expands into an assistant message of tool_use blocks
// followed by a user message of tool_result blocks.
func convertMessages(messages []ace.Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case ace.RoleUser:
			// The API rejects empty text blocks.
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case ace.RoleAssistant:
			if msg.Content != "" {
				result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case ace.RoleTool:
			var callBlocks []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				callBlocks = append(callBlocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				var input any
				json.Unmarshal([]byte(tc.Arguments), &input)
				callBlocks = append(callBlocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
			if len(callBlocks) > 0 {
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleAssistant,
					Content: callBlocks,
				})
			}

			var resultBlocks []anthropic.ContentBlockParamUnion
			for _, tr := range msg.ToolResults {
				resultBlocks = append(resultBlocks, anthropic.NewToolResultBlock(tr.ToolCallID, tr.Content, tr.IsError))
			}
			if len(resultBlocks) > 0 {
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleUser,
					Content: resultBlocks,
				})
			}
		default:
			// System content travels through MessageNewParams.System.
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}

	return result
}
