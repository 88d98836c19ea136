package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Settings is the merged application settings map served by the container
// under "settings".
type Settings map[string]any

// Setting keys understood by the framework.
const (
	CookieLifetime                    = "cookieLifetime"
	CookiePath                        = "cookiePath"
	CookieDomain                      = "cookieDomain"
	CookieSecure                      = "cookieSecure"
	CookieHTTPOnly                    = "cookieHttpOnly"
	HTTPVersion                       = "httpVersion"
	ResponseChunkSize                 = "responseChunkSize"
	OutputBuffering                   = "outputBuffering"
	DetermineRouteBeforeAppMiddleware = "determineRouteBeforeAppMiddleware"
	DisplayErrorDetails               = "displayErrorDetails"
)

// DefaultSettings returns a fresh copy of the framework defaults.
func DefaultSettings() Settings {
	return Settings{
		CookieLifetime:                    "20 minutes",
		CookiePath:                        "/",
		CookieDomain:                      nil,
		CookieSecure:                      false,
		CookieHTTPOnly:                    false,
		HTTPVersion:                       "1.1",
		ResponseChunkSize:                 4096,
		OutputBuffering:                   "append",
		DetermineRouteBeforeAppMiddleware: false,
		DisplayErrorDetails:               false,
	}
}

// Merge returns a new map holding defaults overlaid with user. Keys present
// in user win; neither input is modified.
func Merge(defaults, user Settings) Settings {
	return lo.Assign(map[string]any(defaults), map[string]any(user))
}

// Get returns the raw value for key.
func (s Settings) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Options is the typed view of Settings.
type Options struct {
	CookieLifetime                    string `mapstructure:"cookieLifetime"`
	CookiePath                        string `mapstructure:"cookiePath"`
	CookieDomain                      string `mapstructure:"cookieDomain"`
	CookieSecure                      bool   `mapstructure:"cookieSecure"`
	CookieHTTPOnly                    bool   `mapstructure:"cookieHttpOnly"`
	HTTPVersion                       string `mapstructure:"httpVersion"`
	ResponseChunkSize                 int    `mapstructure:"responseChunkSize"`
	OutputBuffering                   string `mapstructure:"outputBuffering"`
	DetermineRouteBeforeAppMiddleware bool   `mapstructure:"determineRouteBeforeAppMiddleware"`
	DisplayErrorDetails               bool   `mapstructure:"displayErrorDetails"`
}

// Options decodes the framework keys of s. Unknown keys are ignored so
// applications can keep their own entries in the same map. String values
// such as "4096" or "true" (from env or YAML) are accepted.
func (s Settings) Options() (Options, error) {
	var opts Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, errors.Wrap(err, "settings: build decoder")
	}
	if err := dec.Decode(map[string]any(s)); err != nil {
		return opts, errors.Wrap(err, "settings: decode")
	}
	if opts.ResponseChunkSize <= 0 {
		opts.ResponseChunkSize = 4096
	}
	return opts, nil
}

// Cookie holds the defaults applied to cookies set on a response.
type Cookie struct {
	Lifetime time.Duration
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// Cookie returns the cookie defaults, parsing the lifetime.
func (o Options) Cookie() (Cookie, error) {
	lifetime, err := ParseLifetime(o.CookieLifetime)
	if err != nil {
		return Cookie{}, err
	}
	return Cookie{
		Lifetime: lifetime,
		Path:     o.CookiePath,
		Domain:   o.CookieDomain,
		Secure:   o.CookieSecure,
		HTTPOnly: o.CookieHTTPOnly,
	}, nil
}

var lifetimeUnits = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
}

// ParseLifetime accepts Go durations ("90m") and the "<n> <unit>" form
// ("20 minutes", "1 day"). An empty string means a session cookie.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	n, unit, ok := strings.Cut(s, " ")
	if !ok {
		return 0, errors.Errorf("settings: invalid lifetime %q", s)
	}
	count, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		return 0, errors.Wrapf(err, "settings: invalid lifetime %q", s)
	}
	unit = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), "s")
	d, ok := lifetimeUnits[unit]
	if !ok {
		return 0, errors.Errorf("settings: unknown lifetime unit in %q", s)
	}
	return time.Duration(count) * d, nil
}
