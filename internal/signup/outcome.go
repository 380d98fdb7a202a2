package signup

import "errors"

// ErrMissingCredential is emitted when the popup returned an authorization
// response with neither a code nor an access token.
var ErrMissingCredential = errors.New("signup: authorization response has no code or access token")

// Success is emitted when the popup returned a usable authorization.
type Success struct {
	Code              string `json:"code"`
	BusinessAccountID string `json:"businessAccountId,omitempty"`
	PhoneNumberID     string `json:"phoneNumberId,omitempty"`
}

// Cancel is emitted when the user left the flow or the popup reported a cancel or error.
type Cancel struct {
	CurrentStep string `json:"currentStep,omitempty"`
}

// Handlers receive the launcher outcomes. Nil handlers are skipped.
type Handlers struct {
	Success func(Success)
	Cancel  func(Cancel)
	Error   func(error)
}
