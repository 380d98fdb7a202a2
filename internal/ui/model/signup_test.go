package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Its-donkey/wa-signup/internal/sdk"
	"github.com/Its-donkey/wa-signup/internal/signup"
)

func TestBuildSignupViewByStatus(t *testing.T) {
	cases := []struct {
		name     string
		snap     sdk.Snapshot
		pending  bool
		label    string
		disabled bool
		retry    bool
	}{
		{name: "idle", snap: sdk.Snapshot{Status: sdk.StatusIdle}, label: "Preparing…", disabled: true},
		{name: "loading", snap: sdk.Snapshot{Status: sdk.StatusLoading}, label: "Loading Facebook…", disabled: true},
		{name: "ready", snap: sdk.Snapshot{Status: sdk.StatusReady}, label: "Connect WhatsApp"},
		{name: "pending popup", snap: sdk.Snapshot{Status: sdk.StatusReady}, pending: true, label: "Continue in the popup…"},
		{name: "failed", snap: sdk.Snapshot{Status: sdk.StatusFailed, Err: sdk.ErrInitTimeout}, label: "Unavailable", disabled: true, retry: true},
	}
	for _, tc := range cases {
		view := BuildSignupView(tc.snap, tc.pending, nil)
		if view.ButtonLabel != tc.label || view.Disabled != tc.disabled || view.ShowRetry != tc.retry {
			t.Fatalf("%s: unexpected view %+v", tc.name, view)
		}
		if tc.retry && view.ErrorText == "" {
			t.Fatalf("%s: expected inline error text", tc.name)
		}
	}
}

func TestLoadErrorText(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: sdk.ErrMissingIdentity, want: "The Facebook app id is not configured."},
		{err: fmt.Errorf("%w: %w", sdk.ErrScriptLoad, errors.New("blocked")), want: "Could not load the Facebook SDK. Check your connection or content blockers."},
		{err: fmt.Errorf("%w after 10s", sdk.ErrInitTimeout), want: "The Facebook SDK took too long to start."},
		{err: sdk.ErrInitException, want: "The Facebook SDK failed to initialise."},
		{err: errors.New("custom"), want: "custom"},
		{err: nil, want: "The Facebook SDK could not be loaded."},
	}
	for _, tc := range cases {
		if got := LoadErrorText(tc.err); got != tc.want {
			t.Fatalf("%v: expected %q got %q", tc.err, tc.want, got)
		}
	}
}

func TestBuildSignupViewOutcomes(t *testing.T) {
	ready := sdk.Snapshot{Status: sdk.StatusReady}
	cases := []struct {
		name string
		out  Outcome
		text string
		tone string
	}{
		{
			name: "success with ids",
			out:  Outcome{Kind: OutcomeSuccess, Success: signup.Success{Code: "abc", BusinessAccountID: "W1", PhoneNumberID: "P1"}},
			text: "Connected WhatsApp Business account W1. Phone number id P1.",
			tone: "success",
		},
		{
			name: "success without ids",
			out:  Outcome{Kind: OutcomeSuccess, Success: signup.Success{Code: "abc"}},
			text: "WhatsApp Business account connected.",
			tone: "success",
		},
		{
			name: "cancel with step",
			out:  Outcome{Kind: OutcomeCancel, Cancel: signup.Cancel{CurrentStep: "PHONE_NUMBER_SETUP"}},
			text: "Signup cancelled at step PHONE_NUMBER_SETUP.",
			tone: "warning",
		},
		{name: "cancel", out: Outcome{Kind: OutcomeCancel}, text: "Signup cancelled.", tone: "warning"},
		{
			name: "error",
			out:  Outcome{Kind: OutcomeError, Err: signup.ErrMissingCredential},
			text: "Signup failed: " + signup.ErrMissingCredential.Error(),
			tone: "error",
		},
	}
	for _, tc := range cases {
		out := tc.out
		view := BuildSignupView(ready, false, &out)
		if view.ResultText != tc.text || view.ResultTone != tc.tone {
			t.Fatalf("%s: unexpected result %q (%s)", tc.name, view.ResultText, view.ResultTone)
		}
	}
}
