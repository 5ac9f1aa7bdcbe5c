package audit

import (
	"net/url"
	"strings"

	"github.com/daphnetxg/homepage-audit/internal/platform/errs"
)

const urlFormatHint = "Enter a valid site address, for example https://example.com."

// NormalizeURL turns raw user input into a fetchable absolute URL:
// it trims whitespace, defaults to https:// when no scheme is given,
// and drops any fragment. Unusable input yields an InvalidInput
// error, never a panic, since this sits on the request path.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "The URL is empty. " + urlFormatHint,
		}
	}

	if !hasHTTPScheme(trimmed) {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: urlFormatHint,
			Cause:   err,
		}
	}
	if u.Host == "" {
		return "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: urlFormatHint,
		}
	}

	u.Fragment = ""
	return u.String(), nil
}

func hasHTTPScheme(s string) bool {
	ls := strings.ToLower(s)
	return strings.HasPrefix(ls, "http://") || strings.HasPrefix(ls, "https://")
}
