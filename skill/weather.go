package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/illyshaieb/ace/action"
)

func (s *Skills) getWeather() action.Descriptor {
	return action.Descriptor{
		Name:        "get_weather",
		Description: "Get the current weather for a location.",
		Params: action.Params{
			{Name: "location", Type: action.TypeString, Description: "City or place name, as given by the user.", Required: true},
		},
		RequiresInput: true,
		Handler: func(ctx context.Context, args action.Args) (any, error) {
			location := args.String("location")
			return s.fetchWeather(ctx, location)
		},
	}
}

func (s *Skills) fetchWeather(ctx context.Context, location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", fmt.Errorf("no location given")
	}
	if s.weatherKey == "" {
		return "", fmt.Errorf("weather service is not configured: WEATHER_API_KEY is not set")
	}

	query := url.Values{}
	query.Set("key", s.weatherKey)
	query.Set("q", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.weatherURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var report struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current struct {
			TempC     float64 `json:"temp_c"`
			FeelsLike float64 `json:"feelslike_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return "", fmt.Errorf("decoding weather report: %w", err)
	}
	if report.Location.Name == "" {
		return "", fmt.Errorf("weather service returned an unexpected response")
	}

	return fmt.Sprintf("It's %s in %s right now. The temperature is %.1f°C, but it feels more like %.1f°C.",
		strings.ToLower(report.Current.Condition.Text), report.Location.Name,
		report.Current.TempC, report.Current.FeelsLike), nil
}
