// Command ace is a console personal assistant. It routes typed input to
// a hosted chat model, lets the model call the built-in skills, and
// persists the conversation in SQLite.
//
// Usage:
//
//	go run ./cmd/ace
//
// Configuration comes from the environment (or a .env file):
// ACE_PROVIDER selects anthropic, openai, or google; the matching
// *_API_KEY must be set. See LoadConfig for the full list.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/action"
	"github.com/illyshaieb/ace/assistant"
	"github.com/illyshaieb/ace/gateway"
	"github.com/illyshaieb/ace/provider"
	"github.com/illyshaieb/ace/skill"
	"github.com/illyshaieb/ace/store/sqlite"
)

const (
	aceID   = "ACE"
	userID  = "YOU"
	exitCmd = "exit"

	welcomeMessage = "Hello! I am ACE, your personal assistant. How can I help you today?"
	goodbyeMessage = "Goodbye! It was a pleasure assisting you."

	persona = "You are ACE, a helpful and concise personal assistant created by Illy Shaieb. " +
		"Use the available actions whenever they can answer the user's request, " +
		"and reply in plain conversational text."
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chat, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	conversation, err := openConversation(ctx, store, cfg.Resume)
	if err != nil {
		return err
	}

	registry := action.NewRegistry(action.WithLogger(logger))
	skills := skill.New(skill.WithWeatherAPIKey(cfg.WeatherKey))
	if err := skills.RegisterAll(registry); err != nil {
		return err
	}

	gwOpts := []gateway.Option{
		gateway.WithPersona(persona),
		gateway.WithMaxRounds(cfg.MaxRounds),
		gateway.WithLogger(logger),
	}
	if cfg.Model != "" {
		gwOpts = append(gwOpts, gateway.WithChatOptions(ace.WithModel(cfg.Model)))
	}
	gw := gateway.New(chat, registry, gwOpts...)

	a, err := assistant.New(ctx, gw,
		assistant.WithRecorder(conversation),
		assistant.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Println(banner())
	fmt.Println("    Welcome to ACE! Type 'exit' to quit.")
	fmt.Println()
	display(aceID, welcomeMessage)
	if err := conversation.Record(ctx, []ace.Message{ace.NewAssistantMessage(welcomeMessage)}); err != nil {
		logger.Warn("recording welcome message", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s: ", userID)
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, exitCmd) {
			break
		}

		reply, err := a.Respond(ctx, input)
		if err != nil {
			logger.Warn("turn failed", "error", err)
			if ctx.Err() != nil {
				break
			}
		}
		if reply != "" {
			display(aceID, reply)
		}
	}

	display(aceID, goodbyeMessage)
	if err := conversation.Record(context.WithoutCancel(ctx), []ace.Message{ace.NewAssistantMessage(goodbyeMessage)}); err != nil {
		logger.Warn("recording goodbye message", "error", err)
	}
	return scanner.Err()
}

// openConversation picks the most recent conversation when resume is
// set and one exists, and starts a fresh one otherwise.
func openConversation(ctx context.Context, store *sqlite.Store, resume bool) (*sqlite.Conversation, error) {
	if resume {
		id, ok, err := store.LatestConversation(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return store.Conversation(id), nil
		}
	}
	id, err := store.StartConversation(ctx)
	if err != nil {
		return nil, err
	}
	return store.Conversation(id), nil
}

func buildProvider(ctx context.Context, cfg *Config) (ace.ChatProvider, error) {
	name := ace.Provider(cfg.Provider)
	switch name {
	case ace.ProviderAnthropic:
		return provider.New(ctx, name, cfg.AnthropicKey)
	case ace.ProviderOpenAI:
		return provider.New(ctx, name, cfg.OpenAIKey)
	case ace.ProviderGoogle:
		return provider.New(ctx, name, cfg.GoogleKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func display(sender, text string) {
	fmt.Printf("%s: %s\n", sender, text)
}

func banner() string {
	const width = 80
	title := " ACE "
	pad := (width - len(title)) / 2
	return strings.Repeat("=", pad) + title + strings.Repeat("=", width-pad-len(title))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
