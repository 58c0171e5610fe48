package app

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/dagcheck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestApplyModel(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyModel(&config.Model{
		Server: &config.Server{
			ListenAddr:   ptr("127.0.0.1:9000"),
			ReadTimeout:  ptr("3s"),
			MaxBodyBytes: ptr(int64(4096)),
		},
		CORS:     &config.CORS{AllowedOrigins: []string{"https://app.example.com"}},
		Log:      &config.Log{Format: ptr("text")},
		Realtime: &config.Realtime{Enabled: ptr(true)},
	})
	require.NoError(t, err)

	want := Config{
		ListenAddr:      "127.0.0.1:9000",
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    4096,
		AllowedOrigins:  []string{"https://app.example.com"},
		RealtimeEnabled: true,
		LogFormat:       "text",
		LogLevel:        "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ApplyModel() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyModel_NilAndInvalidDuration(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyModel(nil))
	assert.Equal(t, DefaultConfig(), cfg)

	err := cfg.ApplyModel(&config.Model{Server: &config.Server{WriteTimeout: ptr("soon")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.write_timeout")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		errText string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty listen address", mutate: func(c *Config) { c.ListenAddr = "" }, errText: "ListenAddr"},
		{name: "zero body limit", mutate: func(c *Config) { c.MaxBodyBytes = 0 }, errText: "MaxBodyBytes"},
		{name: "negative timeout", mutate: func(c *Config) { c.ReadTimeout = -time.Second }, errText: "negative"},
		{name: "no origins", mutate: func(c *Config) { c.AllowedOrigins = nil }, errText: "allowed origin"},
		{name: "empty origin", mutate: func(c *Config) { c.AllowedOrigins = []string{""} }, errText: "empty value"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, errText: "log format"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, errText: "log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			got, err := NewConfig(cfg)
			if tc.errText == "" {
				require.NoError(t, err)
				assert.Equal(t, cfg, *got)
				return
			}
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}
