package skill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illyshaieb/ace/action"
)

func registryWith(t *testing.T, s *Skills) *action.Registry {
	t.Helper()
	reg := action.NewRegistry()
	require.NoError(t, s.RegisterAll(reg))
	return reg
}

func invoke(t *testing.T, reg *action.Registry, name string, args action.Args) (any, error) {
	t.Helper()
	d, err := reg.Get(name)
	require.NoError(t, err)
	return d.Handler(context.Background(), args)
}

func TestRegisterAll(t *testing.T) {
	reg := registryWith(t, New())
	assert.Equal(t, []string{
		"greet", "identify", "creator", "get_time", "get_date", "help",
		"joke", "flip_coin", "roll_die", "random_number", "get_weather",
	}, reg.Names())
}

func TestBasicSkills(t *testing.T) {
	reg := registryWith(t, New())

	tests := []struct {
		name string
		want string
	}{
		{"greet", "Hello! How can I assist you today?"},
		{"identify", "I am ACE, your personal assistant."},
		{"creator", "I was created by Illy Shaieb."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoke(t, reg, tt.name, action.Args{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTime(t *testing.T) {
	fixed := time.Date(2025, time.March, 3, 14, 5, 0, 0, time.UTC)
	reg := registryWith(t, New(WithClock(func() time.Time { return fixed })))

	got, err := invoke(t, reg, "get_time", action.Args{})
	require.NoError(t, err)
	assert.Equal(t, "The current time is 14:05.", got)
}

func TestGetDate(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "Today's date is Saturday 1st March 2025."},
		{2, "Today's date is Sunday 2nd March 2025."},
		{3, "Today's date is Monday 3rd March 2025."},
		{4, "Today's date is Tuesday 4th March 2025."},
		{11, "Today's date is Tuesday 11th March 2025."},
		{12, "Today's date is Wednesday 12th March 2025."},
		{13, "Today's date is Thursday 13th March 2025."},
		{21, "Today's date is Friday 21st March 2025."},
		{22, "Today's date is Saturday 22nd March 2025."},
		{23, "Today's date is Sunday 23rd March 2025."},
		{31, "Today's date is Monday 31st March 2025."},
	}
	for _, tt := range tests {
		fixed := time.Date(2025, time.March, tt.day, 9, 0, 0, 0, time.UTC)
		reg := registryWith(t, New(WithClock(func() time.Time { return fixed })))

		got, err := invoke(t, reg, "get_date", action.Args{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFlipCoin(t *testing.T) {
	reg := registryWith(t, New())
	for range 20 {
		got, err := invoke(t, reg, "flip_coin", action.Args{})
		require.NoError(t, err)
		assert.Contains(t, []any{"Heads", "Tails"}, got)
	}
}

func TestRollDie(t *testing.T) {
	reg := registryWith(t, New())

	t.Run("default six sides", func(t *testing.T) {
		for range 20 {
			got, err := invoke(t, reg, "roll_die", action.Args{})
			require.NoError(t, err)
			n := got.(int)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 6)
		}
	})

	t.Run("custom sides", func(t *testing.T) {
		got, err := invoke(t, reg, "roll_die", action.Args{"sides": float64(20)})
		require.NoError(t, err)
		n := got.(int)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 20)
	})

	t.Run("too few sides", func(t *testing.T) {
		_, err := invoke(t, reg, "roll_die", action.Args{"sides": float64(1)})
		assert.Error(t, err)
	})
}

func TestRandomNumber(t *testing.T) {
	reg := registryWith(t, New())

	t.Run("within bounds", func(t *testing.T) {
		for range 20 {
			got, err := invoke(t, reg, "random_number", action.Args{
				"min_value": float64(1), "max_value": float64(10),
			})
			require.NoError(t, err)
			n := got.(int)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 10)
		}
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := invoke(t, reg, "random_number", action.Args{
			"min_value": float64(10), "max_value": float64(1),
		})
		assert.Error(t, err)
	})
}

func TestJoke(t *testing.T) {
	t.Run("adds sentence stop", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"setup": "Why did the gopher cross the road", "punchline": "To get to the other goroutine"}`))
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithJokeURL(srv.URL)))

		got, err := invoke(t, reg, "joke", action.Args{})
		require.NoError(t, err)
		assert.Equal(t, "Why did the gopher cross the road ... To get to the other goroutine.", got)
	})

	t.Run("keeps existing punctuation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"setup": "Knock knock", "punchline": "Who's there?"}`))
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithJokeURL(srv.URL)))

		got, err := invoke(t, reg, "joke", action.Args{})
		require.NoError(t, err)
		assert.Equal(t, "Knock knock ... Who's there?", got)
	})

	t.Run("incomplete joke", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"setup": "", "punchline": ""}`))
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithJokeURL(srv.URL)))

		_, err := invoke(t, reg, "joke", action.Args{})
		assert.Error(t, err)
	})

	t.Run("service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithJokeURL(srv.URL)))

		_, err := invoke(t, reg, "joke", action.Args{})
		assert.Error(t, err)
	})
}

func TestGetWeather(t *testing.T) {
	t.Run("reports conditions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "London", r.URL.Query().Get("q"))
			w.Write([]byte(`{
				"location": {"name": "London"},
				"current": {"temp_c": 15.0, "feelslike_c": 13.5, "condition": {"text": "Partly cloudy"}}
			}`))
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithWeatherURL(srv.URL), WithWeatherAPIKey("test-key")))

		got, err := invoke(t, reg, "get_weather", action.Args{"location": "London"})
		require.NoError(t, err)
		assert.Equal(t, "It's partly cloudy in London right now. The temperature is 15.0°C, but it feels more like 13.5°C.", got)
	})

	t.Run("missing api key", func(t *testing.T) {
		reg := registryWith(t, New())

		_, err := invoke(t, reg, "get_weather", action.Args{"location": "London"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WEATHER_API_KEY")
	})

	t.Run("unexpected response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()
		reg := registryWith(t, New(WithWeatherURL(srv.URL), WithWeatherAPIKey("test-key")))

		_, err := invoke(t, reg, "get_weather", action.Args{"location": "London"})
		assert.Error(t, err)
	})
}
