package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-rio/framework/config"
)

func TestMerge_UserWins(t *testing.T) {
	defaults := config.Settings{"a": 1, "b": 2}
	user := config.Settings{"b": 3, "c": 4}

	merged := config.Merge(defaults, user)

	assert.Equal(t, config.Settings{"a": 1, "b": 3, "c": 4}, merged)
	assert.Equal(t, config.Settings{"a": 1, "b": 2}, defaults, "defaults must not be modified")
	assert.Equal(t, config.Settings{"b": 3, "c": 4}, user, "user settings must not be modified")
}

func TestMerge_NilUser(t *testing.T) {
	merged := config.Merge(config.DefaultSettings(), nil)
	assert.Equal(t, config.DefaultSettings(), merged)
}

func TestDefaultSettings_Values(t *testing.T) {
	opts, err := config.DefaultSettings().Options()
	require.NoError(t, err)

	assert.Equal(t, config.Options{
		CookieLifetime:    "20 minutes",
		CookiePath:        "/",
		HTTPVersion:       "1.1",
		ResponseChunkSize: 4096,
		OutputBuffering:   "append",
	}, opts)

	v, ok := config.DefaultSettings().Get(config.CookieDomain)
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestOptions_WeaklyTypedValues(t *testing.T) {
	s := config.Merge(config.DefaultSettings(), config.Settings{
		config.ResponseChunkSize:   "512",
		config.DisplayErrorDetails: "true",
		config.CookieDomain:        "example.com",
		"custom":                   []int{1, 2},
	})

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, 512, opts.ResponseChunkSize)
	assert.True(t, opts.DisplayErrorDetails)
	assert.Equal(t, "example.com", opts.CookieDomain)
}

func TestOptions_NonPositiveChunkSizeFallsBack(t *testing.T) {
	opts, err := config.Settings{config.ResponseChunkSize: 0}.Options()
	require.NoError(t, err)
	assert.Equal(t, 4096, opts.ResponseChunkSize)
}

func TestOptions_InvalidValue(t *testing.T) {
	_, err := config.Settings{config.ResponseChunkSize: "lots"}.Options()
	assert.Error(t, err)
}

func TestParseLifetime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"20 minutes", 20 * time.Minute},
		{"1 minute", time.Minute},
		{"2 hours", 2 * time.Hour},
		{"1 day", 24 * time.Hour},
		{"3 Weeks", 21 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseLifetime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"soon", "x minutes", "5 fortnights"} {
		_, err := config.ParseLifetime(bad)
		assert.Error(t, err, bad)
	}
}

func TestOptions_Cookie(t *testing.T) {
	opts, err := config.DefaultSettings().Options()
	require.NoError(t, err)

	cookie, err := opts.Cookie()
	require.NoError(t, err)
	assert.Equal(t, config.Cookie{Lifetime: 20 * time.Minute, Path: "/"}, cookie)
}

func TestLoadFile(t *testing.T) {
	s, err := config.LoadFile("testdata/settings.yaml")
	require.NoError(t, err)
	assert.Equal(t, "2", s[config.HTTPVersion])
	assert.Equal(t, "hello", s["greeting"])

	opts, err := config.Merge(config.DefaultSettings(), s).Options()
	require.NoError(t, err)
	assert.Equal(t, 1024, opts.ResponseChunkSize)
	assert.True(t, opts.DisplayErrorDetails)
	assert.Equal(t, "/", opts.CookiePath)
}

func TestLoadFile_Errors(t *testing.T) {
	s, err := config.LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = config.LoadFile("testdata/missing.yaml")
	assert.ErrorContains(t, err, "failed to read settings file")

	_, err = config.LoadFile("testdata/broken.yaml")
	assert.ErrorContains(t, err, "failed to unmarshal settings file")
}

func TestDump_RoundTrips(t *testing.T) {
	b, err := config.Dump(config.Settings{config.HTTPVersion: "1.1"})
	require.NoError(t, err)
	assert.Equal(t, "httpVersion: \"1.1\"\n", string(b))
}
