package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUpgradeRequired marks a version-gate rejection. Terminal for the
	// in-flight operation; callers must not retry.
	ErrUpgradeRequired = errors.New("client upgrade required")

	// ErrUnexpectedStatus covers non-2xx responses that carry no JSON envelope.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// UpgradeRequiredError carries the payload of an HTTP 426 response. By the
// time a caller sees it the local session has already been cleared.
type UpgradeRequiredError struct {
	DownloadURL    string `json:"download_url"`
	CurrentVersion string `json:"current_version"`
	MinVersion     string `json:"min_version"`
}

func (e *UpgradeRequiredError) Error() string {
	return fmt.Sprintf("client upgrade required: version %s is below the minimum %s", e.CurrentVersion, e.MinVersion)
}

func (e *UpgradeRequiredError) Unwrap() error { return ErrUpgradeRequired }

// ServerError is the server-provided rejection text, surfaced verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }
