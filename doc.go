// Package ace provides the shared wire types for the ACE personal
// assistant: conversation messages, tool declarations, tool calls and
// results, chat options, and the provider interface the gateway speaks
// through.
//
// The packages that build on these types are:
//
//   - [github.com/illyshaieb/ace/action]: the action registry and dispatcher
//   - [github.com/illyshaieb/ace/gateway]: the bounded tool-calling loop
//   - [github.com/illyshaieb/ace/session]: the conversation transcript
//   - [github.com/illyshaieb/ace/assistant]: the single user-facing operation
//   - [github.com/illyshaieb/ace/provider/...]: hosted model backends
//
// A front end only needs the assistant:
//
//	reply, err := asst.Respond(ctx, "what's the weather in London?")
package ace
