// Package skill provides the built-in actions the assistant ships with:
// small conversational skills, dice and coins, and skills backed by
// external HTTP services for jokes and weather.
package skill

import (
	"net/http"
	"time"

	"github.com/illyshaieb/ace/action"
)

const (
	defaultJokeURL    = "https://official-joke-api.appspot.com/random_joke"
	defaultWeatherURL = "https://api.weatherapi.com/v1/current.json"
)

// Skills holds the shared collaborators for the built-in actions.
type Skills struct {
	httpClient *http.Client
	jokeURL    string
	weatherURL string
	weatherKey string
	now        func() time.Time
}

// Option configures the skill set.
type Option func(*Skills)

// WithHTTPClient sets the client used for outbound service calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Skills) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithJokeURL overrides the joke service endpoint.
func WithJokeURL(url string) Option {
	return func(s *Skills) { s.jokeURL = url }
}

// WithWeatherURL overrides the weather service endpoint.
func WithWeatherURL(url string) Option {
	return func(s *Skills) { s.weatherURL = url }
}

// WithWeatherAPIKey sets the weather service API key. Without a key the
// weather skill reports that it is unconfigured rather than failing.
func WithWeatherAPIKey(key string) Option {
	return func(s *Skills) { s.weatherKey = key }
}

// WithClock overrides the time source for the time and date skills.
func WithClock(now func() time.Time) Option {
	return func(s *Skills) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds the skill set.
func New(opts ...Option) *Skills {
	s := &Skills{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		jokeURL:    defaultJokeURL,
		weatherURL: defaultWeatherURL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterAll registers every built-in action on the registry.
func (s *Skills) RegisterAll(reg *action.Registry) error {
	for _, d := range []action.Descriptor{
		s.greet(),
		s.identify(),
		s.creator(),
		s.getTime(),
		s.getDate(),
		s.help(),
		s.joke(),
		s.flipCoin(),
		s.rollDie(),
		s.randomNumber(),
		s.getWeather(),
	} {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}
