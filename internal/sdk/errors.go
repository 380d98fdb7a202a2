package sdk

import "errors"

var (
	// ErrMissingIdentity reports that no app id was configured.
	ErrMissingIdentity = errors.New("sdk: missing app id")
	// ErrScriptLoad reports that the SDK script could not be fetched.
	ErrScriptLoad = errors.New("sdk: script load failed")
	// ErrInitTimeout reports that the readiness hook did not fire in time.
	ErrInitTimeout = errors.New("sdk: timed out waiting for readiness")
	// ErrInitException reports that FB.init raised an error.
	ErrInitException = errors.New("sdk: init failed")
)
