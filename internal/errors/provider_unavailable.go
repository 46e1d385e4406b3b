package errors

import "errors"

// ProviderUnavailableError signals that a photo or summary provider could
// not serve a request: missing API credential, transport failure or a
// non-2xx response. Callers treat it as an empty result, never as fatal.
type ProviderUnavailableError struct {
	Provider string
	Message  string
}

func (e *ProviderUnavailableError) Error() string {
	return e.Provider + ": " + e.Message
}

// NewProviderUnavailableError creates a ProviderUnavailableError for the
// named provider.
func NewProviderUnavailableError(provider, message string) *ProviderUnavailableError {
	return &ProviderUnavailableError{Provider: provider, Message: message}
}

// IsProviderUnavailable reports whether err is a ProviderUnavailableError
// (even when wrapped).
func IsProviderUnavailable(err error) bool {
	var perr *ProviderUnavailableError
	return errors.As(err, &perr)
}
