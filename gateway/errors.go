package gateway

import "fmt"

// ToolLoopExceededError reports that the model kept requesting tools
// past the configured round cap and the turn was abandoned.
type ToolLoopExceededError struct {
	Rounds int
}

func (e *ToolLoopExceededError) Error() string {
	return fmt.Sprintf("gateway: tool loop exceeded %d rounds without a final reply", e.Rounds)
}
