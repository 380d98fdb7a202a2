// Package model holds the view state rendered by the signup component.
package model

import (
	"errors"
	"fmt"

	"github.com/Its-donkey/wa-signup/internal/sdk"
	"github.com/Its-donkey/wa-signup/internal/signup"
)

// OutcomeKind names the event a launch ended with.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeCancel  OutcomeKind = "cancel"
	OutcomeError   OutcomeKind = "error"
)

// Outcome is the last launcher event shown to the user.
type Outcome struct {
	Kind    OutcomeKind
	Success signup.Success
	Cancel  signup.Cancel
	Err     error
}

// SignupView is everything the component needs to render.
type SignupView struct {
	ButtonLabel string
	Disabled    bool
	ErrorText   string
	ShowRetry   bool
	ResultText  string
	// ResultTone is a CSS modifier: success, warning or error.
	ResultTone string
}

// StatusLabels maps loader states to button captions.
var StatusLabels = map[sdk.Status]string{
	sdk.StatusIdle:    "Preparing…",
	sdk.StatusLoading: "Loading Facebook…",
	sdk.StatusReady:   "Connect WhatsApp",
	sdk.StatusFailed:  "Unavailable",
}

// BuildSignupView derives the view from the loader state, whether a popup is
// open, and the last outcome (nil when there is none). The button stays
// clickable while a popup is open because an abandoned popup never reports back.
func BuildSignupView(snap sdk.Snapshot, pending bool, last *Outcome) SignupView {
	view := SignupView{
		ButtonLabel: StatusLabels[snap.Status],
		Disabled:    !snap.Ready(),
	}
	if pending {
		view.ButtonLabel = "Continue in the popup…"
	}
	if snap.Status == sdk.StatusFailed {
		view.ErrorText = LoadErrorText(snap.Err)
		view.ShowRetry = true
	}
	if last != nil {
		view.ResultText, view.ResultTone = describeOutcome(*last)
	}
	return view
}

// LoadErrorText turns a loader failure into an inline message.
func LoadErrorText(err error) string {
	switch {
	case err == nil:
		return "The Facebook SDK could not be loaded."
	case errors.Is(err, sdk.ErrMissingIdentity):
		return "The Facebook app id is not configured."
	case errors.Is(err, sdk.ErrScriptLoad):
		return "Could not load the Facebook SDK. Check your connection or content blockers."
	case errors.Is(err, sdk.ErrInitTimeout):
		return "The Facebook SDK took too long to start."
	case errors.Is(err, sdk.ErrInitException):
		return "The Facebook SDK failed to initialise."
	default:
		return err.Error()
	}
}

func describeOutcome(o Outcome) (text, tone string) {
	switch o.Kind {
	case OutcomeSuccess:
		text = "WhatsApp Business account connected."
		if o.Success.BusinessAccountID != "" {
			text = fmt.Sprintf("Connected WhatsApp Business account %s.", o.Success.BusinessAccountID)
		}
		if o.Success.PhoneNumberID != "" {
			text += fmt.Sprintf(" Phone number id %s.", o.Success.PhoneNumberID)
		}
		return text, "success"
	case OutcomeCancel:
		if o.Cancel.CurrentStep != "" {
			return fmt.Sprintf("Signup cancelled at step %s.", o.Cancel.CurrentStep), "warning"
		}
		return "Signup cancelled.", "warning"
	case OutcomeError:
		if o.Err != nil {
			return "Signup failed: " + o.Err.Error(), "error"
		}
		return "Signup failed.", "error"
	default:
		return "", ""
	}
}
