package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/dagcheck/internal/app"
	"github.com/specialistvlad/dagcheck/internal/hcl_adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDefaults(mutate func(c *app.Config)) *app.Config {
	cfg := app.DefaultConfig()
	mutate(&cfg)
	return &cfg
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		args       []string
		expectExit bool
		expected   *Invocation
		checkOut   func(t *testing.T, output string)
	}{
		{
			name:       "no arguments prints usage",
			args:       nil,
			expectExit: true,
			checkOut: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage:")
			},
		},
		{
			name:       "help command",
			args:       []string{"help"},
			expectExit: true,
			checkOut: func(t *testing.T, output string) {
				assert.Contains(t, output, "dagcheck submit")
			},
		},
		{
			name:     "serve with defaults",
			args:     []string{"serve"},
			expected: &Invocation{Command: CommandServe, Config: withDefaults(func(c *app.Config) {})},
		},
		{
			name: "serve with all flags",
			args: []string{
				"serve",
				"--listen=127.0.0.1:9999",
				"--max-body-bytes=2048",
				"--realtime",
				"--cors-origin=https://a.example",
				"--cors-origin=https://b.example",
				"--log-level=DEBUG",
				"--log-format=text",
			},
			expected: &Invocation{Command: CommandServe, Config: withDefaults(func(c *app.Config) {
				c.ListenAddr = "127.0.0.1:9999"
				c.MaxBodyBytes = 2048
				c.RealtimeEnabled = true
				c.AllowedOrigins = []string{"https://a.example", "https://b.example"}
				c.LogLevel = "debug"
				c.LogFormat = "text"
			})},
		},
		{
			name: "check with defaults",
			args: []string{"check", "graph.json"},
			expected: &Invocation{
				Command:     CommandCheck,
				Config:      withDefaults(func(c *app.Config) {}),
				GraphPath:   "graph.json",
				Output:      "text",
				FailOnCycle: true,
			},
		},
		{
			name: "check with json output and no failure",
			args: []string{"check", "--output=JSON", "--fail-on-cycle=false", "graphs/"},
			expected: &Invocation{
				Command:   CommandCheck,
				Config:    withDefaults(func(c *app.Config) {}),
				GraphPath: "graphs/",
				Output:    "json",
			},
		},
		{
			name: "submit",
			args: []string{"submit", "--server=http://example:8000", "--timeout=2s", "g.hcl"},
			expected: &Invocation{
				Command:     CommandSubmit,
				Config:      withDefaults(func(c *app.Config) {}),
				GraphPath:   "g.hcl",
				ServerURL:   "http://example:8000",
				Timeout:     2 * time.Second,
				Output:      "text",
				FailOnCycle: true,
			},
		},
		{
			name:       "command help flag",
			args:       []string{"serve", "-h"},
			expectExit: true,
			checkOut: func(t *testing.T, output string) {
				assert.Contains(t, output, "-listen")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			inv, shouldExit, err := Parse(context.Background(), tc.args, out, hcl_adapter.NewLoader())
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)

			if tc.expected != nil {
				if diff := cmp.Diff(tc.expected, inv); diff != "" {
					t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOut != nil {
				tc.checkOut(t, out.String())
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		errText string
	}{
		{name: "unknown command", args: []string{"explode"}, errText: "unknown command"},
		{name: "unknown flag", args: []string{"serve", "--nope"}, errText: "flag provided but not defined: -nope"},
		{name: "bad log level", args: []string{"serve", "--log-level=loud"}, errText: "invalid log level"},
		{name: "bad log format", args: []string{"check", "--log-format=xml", "g.json"}, errText: "invalid log format"},
		{name: "serve with argument", args: []string{"serve", "extra"}, errText: "serve takes no arguments"},
		{name: "check without path", args: []string{"check"}, errText: "exactly one GRAPH_PATH"},
		{name: "check with two paths", args: []string{"check", "a.json", "b.json"}, errText: "exactly one GRAPH_PATH"},
		{name: "bad output", args: []string{"check", "--output=yaml", "g.json"}, errText: "invalid output"},
		{name: "empty server", args: []string{"submit", "--server=", "g.json"}, errText: "server URL cannot be empty"},
		{name: "missing config file", args: []string{"serve", "--config=/does/not/exist.hcl"}, errText: "failed to parse HCL file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inv, _, err := Parse(context.Background(), tc.args, &bytes.Buffer{}, hcl_adapter.NewLoader())
			require.Error(t, err)
			assert.Nil(t, inv)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errText)
		})
	}
}

func TestParse_ConfigFileLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dagcheck.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  listen_addr   = "127.0.0.1:7000"
  write_timeout = "30s"
}
cors {
  allowed_origins = ["https://from-file.example"]
}
log {
  level  = "warn"
  format = "text"
}
`), 0600))

	inv, _, err := Parse(context.Background(), []string{"serve", "--config", path, "--log-level=error"}, &bytes.Buffer{}, hcl_adapter.NewLoader())
	require.NoError(t, err)

	want := withDefaults(func(c *app.Config) {
		c.ListenAddr = "127.0.0.1:7000"
		c.WriteTimeout = 30 * time.Second
		c.AllowedOrigins = []string{"https://from-file.example"}
		c.LogFormat = "text"
		c.LogLevel = "error" // explicit flag beats the file
	})
	if diff := cmp.Diff(want, inv.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InvalidSettingsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dagcheck.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server { read_timeout = "later" }`), 0600))

	_, _, err := Parse(context.Background(), []string{"serve", "--config", path}, &bytes.Buffer{}, hcl_adapter.NewLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings file")
}
