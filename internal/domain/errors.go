package domain

import "errors"

// Domain errors
var (
	ErrSubmissionPending    = errors.New("submission already in progress")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrCopyUnsupported      = errors.New("copy not supported")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrConfigNotFound       = errors.New("config file not found")
	ErrInvalidConfig        = errors.New("invalid configuration")
)

// NetworkErrorPrefix is prepended to transport failures before they are shown
const NetworkErrorPrefix = "Network error: "

// NetworkErrorMessage formats a transport-level failure for display
func NetworkErrorMessage(err error) string {
	if err == nil {
		return NetworkErrorPrefix + "unknown error"
	}
	return NetworkErrorPrefix + err.Error()
}
