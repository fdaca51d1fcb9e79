// Package gateway drives the tool-calling exchange with a hosted model.
//
// A Gateway owns one conversation loop: it sends the session transcript
// plus the registry's tool declarations to the provider, dispatches any
// tool calls the model returns, appends the results to the session, and
// repeats until the model produces a final text reply. The loop is
// bounded; a model that never converges is cut off after a fixed number
// of tool rounds and the turn fails with a user-facing apology instead
// of spinning forever.
//
// Per user turn the loop moves through:
//
//	AwaitingModel → (Dispatching → AwaitingModel)* → FinalReply | Failed
//
// No fault escapes SendTurn raw. Dispatch failures re-enter the loop as
// failed tool results the model can recover from; provider faults and
// loop exhaustion end the turn with Result.Text set to an apology and
// the typed error alongside.
package gateway
