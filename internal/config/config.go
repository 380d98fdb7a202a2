// Package config loads the signup settings from the environment and moves the
// browser-visible subset into the page through data attributes.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Its-donkey/wa-signup/internal/sdk"
)

// Config represents the runtime settings for the UI server and the page it serves.
type Config struct {
	AppID        string        `env:"FB_APP_ID"`
	GraphVersion string        `env:"FB_GRAPH_API_VERSION" envDefault:"v21.0"`
	ConfigID     string        `env:"FB_SIGNUP_CONFIG_ID"`
	Debug        bool          `env:"FB_SDK_DEBUG"`
	Cookie       bool          `env:"FB_SDK_COOKIE" envDefault:"true"`
	XFBML        bool          `env:"FB_SDK_XFBML" envDefault:"true"`
	InitTimeout  time.Duration `env:"FB_SDK_INIT_TIMEOUT" envDefault:"10s"`
	LogLevel     string        `env:"SIGNUP_LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalise(), nil
}

// LoadFrom reads Config from the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalise(), nil
}

func (c Config) normalise() Config {
	c.AppID = strings.TrimSpace(c.AppID)
	c.GraphVersion = strings.TrimSpace(c.GraphVersion)
	c.ConfigID = strings.TrimSpace(c.ConfigID)
	if c.InitTimeout <= 0 {
		c.InitTimeout = sdk.DefaultTimeout
	}
	return c
}

// Page returns the settings the browser bundle needs.
func (c Config) Page() PageConfig {
	return PageConfig{
		AppID:        c.AppID,
		GraphVersion: c.GraphVersion,
		ConfigID:     c.ConfigID,
		Debug:        c.Debug,
		Cookie:       c.Cookie,
		XFBML:        c.XFBML,
		InitTimeout:  c.InitTimeout,
	}
}

// PageConfig is the browser-visible configuration embedded in the page shell.
type PageConfig struct {
	AppID        string
	GraphVersion string
	ConfigID     string
	Debug        bool
	Cookie       bool
	XFBML        bool
	InitTimeout  time.Duration
}

// RootElementID is the id of the element carrying the data attributes.
const RootElementID = "signup-root"

// Data attribute names on the signup root element.
const (
	AttrAppID        = "data-app-id"
	AttrGraphVersion = "data-graph-version"
	AttrConfigID     = "data-config-id"
	AttrDebug        = "data-sdk-debug"
	AttrCookie       = "data-sdk-cookie"
	AttrXFBML        = "data-sdk-xfbml"
	AttrInitTimeout  = "data-init-timeout-ms"
)

// Attributes renders the page config as data attributes.
func (p PageConfig) Attributes() map[string]string {
	return map[string]string{
		AttrAppID:        p.AppID,
		AttrGraphVersion: p.GraphVersion,
		AttrConfigID:     p.ConfigID,
		AttrDebug:        strconv.FormatBool(p.Debug),
		AttrCookie:       strconv.FormatBool(p.Cookie),
		AttrXFBML:        strconv.FormatBool(p.XFBML),
		AttrInitTimeout:  strconv.FormatInt(p.InitTimeout.Milliseconds(), 10),
	}
}

// PageConfigFromAttributes rebuilds a PageConfig from data attributes.
// Missing or malformed values fall back to the server defaults.
func PageConfigFromAttributes(lookup func(name string) string) PageConfig {
	flag := func(name string, fallback bool) bool {
		v, err := strconv.ParseBool(strings.TrimSpace(lookup(name)))
		if err != nil {
			return fallback
		}
		return v
	}
	timeout := sdk.DefaultTimeout
	if ms, err := strconv.ParseInt(strings.TrimSpace(lookup(AttrInitTimeout)), 10, 64); err == nil && ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}
	return PageConfig{
		AppID:        strings.TrimSpace(lookup(AttrAppID)),
		GraphVersion: strings.TrimSpace(lookup(AttrGraphVersion)),
		ConfigID:     strings.TrimSpace(lookup(AttrConfigID)),
		Debug:        flag(AttrDebug, false),
		Cookie:       flag(AttrCookie, true),
		XFBML:        flag(AttrXFBML, true),
		InitTimeout:  timeout,
	}
}

// SDK returns the loader configuration.
func (p PageConfig) SDK() sdk.Config {
	return sdk.Config{
		AppID:   p.AppID,
		Version: p.GraphVersion,
		Cookie:  p.Cookie,
		XFBML:   p.XFBML,
		Debug:   p.Debug,
	}.Normalized()
}
