package auth

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ConfigError reports a registration that is missing, malformed, or still
// carrying template values. Fatal to authentication, not to the process.
type ConfigError struct {
	Path            string
	Placeholder     bool
	TemplateWritten bool
	Err             error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Placeholder:
		return fmt.Sprintf("registration at %s contains placeholder values; edit it with your OAuth client ID and secret", e.Path)
	case e.TemplateWritten:
		return fmt.Sprintf("no registration found; a template has been written to %s for you to fill in", e.Path)
	default:
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PendingError reports that manual authorization is required before a
// credential can be issued. AuthURL is the consent URL the operator must
// open.
type PendingError struct {
	AuthURL string
}

func (e *PendingError) Error() string {
	return "authorization required: open " + e.AuthURL + " and provide the code"
}

// ExchangeReason classifies a failed code exchange. Remediation differs:
// an expired or reused code needs a fresh consent round trip, a bad client
// needs the registration fixed.
type ExchangeReason int

const (
	ReasonUnknown ExchangeReason = iota
	ReasonCodeExpired
	ReasonBadClient
)

func (r ExchangeReason) String() string {
	switch r {
	case ReasonCodeExpired:
		return "authorization code expired or already used"
	case ReasonBadClient:
		return "client registration rejected by the provider"
	default:
		return "token exchange failed"
	}
}

// ExchangeError reports a failed code exchange with a structured reason.
type ExchangeError struct {
	Reason ExchangeReason
	Err    error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// exchangeError maps a provider token-endpoint failure onto a reason code.
// The provider's structured error field is authoritative; message text is
// never inspected.
func exchangeError(err error) *ExchangeError {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		switch rerr.ErrorCode {
		case "invalid_grant":
			return &ExchangeError{Reason: ReasonCodeExpired, Err: err}
		case "invalid_client", "unauthorized_client":
			return &ExchangeError{Reason: ReasonBadClient, Err: err}
		}
	}
	return &ExchangeError{Reason: ReasonUnknown, Err: err}
}
