package google

import (
	"encoding/json"

	"google.golang.org/genai"

	"github.com/illyshaieb/ace"
)

// convertMessages maps an ace transcript to Gemini contents. A tool turn
// carries the model's tool calls and their results together, so it
// expands into a "model" content of FunctionCall parts followed by a
// "user" content of FunctionResponse parts.
func convertMessages(messages []ace.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case ace.RoleTool:
			var callParts []*genai.Part
			if msg.Content != "" {
				callParts = append(callParts, &genai.Part{Text: msg.Content})
			}
			names := make(map[string]string, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				names[tc.ID] = tc.Name
				var args map[string]any
				json.Unmarshal([]byte(tc.Arguments), &args)
				callParts = append(callParts, &genai.Part{
					FunctionCall: &genai.FunctionCall{Name: tc.Name, Args: args},
				})
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: callParts})

			var resultParts []*genai.Part
			for _, tr := range msg.ToolResults {
				var result map[string]any
				if err := json.Unmarshal([]byte(tr.Content), &result); err != nil {
					result = map[string]any{"result": tr.Content}
				}
				if tr.IsError {
					result["error"] = true
				}
				resultParts = append(resultParts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						Name:     names[tr.ToolCallID],
						Response: result,
					},
				})
			}
			contents = append(contents, &genai.Content{Role: "user", Parts: resultParts})

		case ace.RoleAssistant:
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: msg.Content}},
				})
			}

		default:
			// User and system turns travel as user contents. The persona
			// is sent as a SystemInstruction, not through here.
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: msg.Content}},
				})
			}
		}
	}

	return contents
}
