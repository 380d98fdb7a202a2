// Package sdk bootstraps the Facebook JavaScript SDK and tracks its readiness.
package sdk

import "strings"

const (
	// ScriptID identifies the injected SDK <script> element so repeated loads can detect it.
	ScriptID = "facebook-jssdk"

	// DefaultVersion is the Graph API version passed to FB.init when none is configured.
	DefaultVersion = "v21.0"

	productionScriptURL = "https://connect.facebook.net/en_US/sdk.js"
	debugScriptURL      = "https://connect.facebook.net/en_US/sdk/debug.js"
)

// Config holds the options forwarded to the SDK's init entry point.
type Config struct {
	// AppID is the client identifier. Loading fails without it.
	AppID   string
	Version string
	Cookie  bool
	XFBML   bool
	// Debug selects the unminified debug build of the SDK.
	Debug bool
}

// ScriptURL returns the remote SDK location for the configured build.
func (c Config) ScriptURL() string {
	if c.Debug {
		return debugScriptURL
	}
	return productionScriptURL
}

// Normalized trims the identifiers and fills in the default version.
func (c Config) Normalized() Config {
	c.AppID = strings.TrimSpace(c.AppID)
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	return c
}
