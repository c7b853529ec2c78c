package twocaptcha

import "fmt"

// APIError is a failure reported by the captcha service itself: any
// response whose errorId is nonzero. Code and Description carry the
// service's values verbatim so callers can branch on Code rather than
// parse message text.
type APIError struct {
	ErrorID     int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("2captcha: %s (errorId %d): %s", e.Code, e.ErrorID, e.Description)
	}
	return fmt.Sprintf("2captcha: %s (errorId %d)", e.Code, e.ErrorID)
}
