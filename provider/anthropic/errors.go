package anthropic

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/illyshaieb/ace"
)

// wrapError categorizes an Anthropic SDK error so the retry layer can
// tell transient faults from permanent ones, honoring Retry-After when
// the API sends one.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.StatusCode
	msg := err.Error()
	if retryAfter := parseRetryAfter(apiErr.Response); retryAfter > 0 {
		return ace.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}

	switch categorizeStatusCode(code) {
	case ace.ErrorTransient:
		return ace.NewTransientError(msg, code, err)
	case ace.ErrorPermanent:
		return ace.NewPermanentError(msg, code, err)
	case ace.ErrorUserInput:
		return ace.NewUserInputError(msg, code, err)
	default:
		return err
	}
}

func categorizeStatusCode(code int) ace.ErrorCategory {
	switch {
	case code == 429:
		return ace.ErrorTransient
	case code >= 500 && code < 600:
		return ace.ErrorTransient
	case code == 401 || code == 403:
		return ace.ErrorPermanent
	case code == 400 || code == 404 || code == 422:
		return ace.ErrorUserInput
	default:
		return ace.ErrorPermanent
	}
}

// parseRetryAfter extracts the Retry-After duration from an HTTP
// response. Returns 0 if the header is absent or unparsable.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
