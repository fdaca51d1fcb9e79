package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/illyshaieb/ace/action"
)

func (s *Skills) joke() action.Descriptor {
	return action.Descriptor{
		Name:        "joke",
		Description: "Tell a random joke.",
		Handler: func(ctx context.Context, _ action.Args) (any, error) {
			return s.fetchJoke(ctx)
		},
	}
}

func (s *Skills) fetchJoke(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jokeURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("joke service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("joke service returned status %d", resp.StatusCode)
	}

	var joke struct {
		Setup     string `json:"setup"`
		Punchline string `json:"punchline"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return "", fmt.Errorf("decoding joke: %w", err)
	}
	if joke.Setup == "" || joke.Punchline == "" {
		return "", fmt.Errorf("joke service returned an incomplete joke")
	}

	punchline := joke.Punchline
	if !strings.HasSuffix(punchline, ".") && !strings.HasSuffix(punchline, "!") && !strings.HasSuffix(punchline, "?") {
		punchline += "."
	}
	return fmt.Sprintf("%s ... %s", joke.Setup, punchline), nil
}
