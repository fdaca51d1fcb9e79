package google

import (
	"errors"

	"google.golang.org/genai"

	"github.com/illyshaieb/ace"
)

// wrapError categorizes a Gemini API error so the retry layer can tell
// transient faults from permanent ones. The genai APIError does not
// expose headers, so no Retry-After hint is available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.Code
	msg := err.Error()
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
