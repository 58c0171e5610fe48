package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/dagcheck/internal/app"
	"github.com/specialistvlad/dagcheck/internal/config"
)

// Commands understood by Parse.
const (
	CommandServe  = "serve"
	CommandCheck  = "check"
	CommandSubmit = "submit"
)

// ExitCodeCycle is returned by check and submit when the graph has a cycle.
const ExitCodeCycle = 3

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is the fully resolved result of parsing the command line.
type Invocation struct {
	Command     string
	Config      *app.Config
	GraphPath   string
	ServerURL   string
	Timeout     time.Duration
	Output      string
	FailOnCycle bool
}

const usage = `
dagcheck - validates that a pipeline graph is a directed acyclic graph.

Usage:
  dagcheck serve  [options]
  dagcheck check  [options] GRAPH_PATH
  dagcheck submit [options] GRAPH_PATH

Commands:
  serve    Run the HTTP API (GET /, POST /pipelines/parse).
  check    Evaluate a graph file locally.
  submit   Send a graph file to a running server for evaluation.

Arguments:
  GRAPH_PATH
    A .json file in the API payload format, a .hcl file, or a directory of .hcl files.

Run 'dagcheck <command> -h' to list the options of a command.
`

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns the resolved
// Invocation, a boolean indicating if the program should exit cleanly, or an
// ExitError. When --config is given the settings file is read with loader.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	command := args[0]
	switch command {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	case CommandServe, CommandCheck, CommandSubmit:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q, expected one of: serve, check, submit", command)}
	}

	defaults := app.DefaultConfig()
	flagSet := flag.NewFlagSet("dagcheck "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	synopsis := command + " [options] GRAPH_PATH"
	if command == CommandServe {
		synopsis = command + " [options]"
	}
	flagSet.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  dagcheck %s\n\nOptions:\n", synopsis)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var (
		listenFlag   *string
		maxBodyFlag  *int64
		realtimeFlag *bool
		originsFlag  stringList
		serverFlag   *string
		timeoutFlag  *time.Duration
		outputFlag   *string
		failFlag     *bool
	)
	switch command {
	case CommandServe:
		listenFlag = flagSet.String("listen", defaults.ListenAddr, "Address the HTTP server listens on.")
		maxBodyFlag = flagSet.Int64("max-body-bytes", defaults.MaxBodyBytes, "Maximum accepted request body size in bytes.")
		realtimeFlag = flagSet.Bool("realtime", defaults.RealtimeEnabled, "Enable the Socket.IO transport under /socket.io/.")
		flagSet.Var(&originsFlag, "cors-origin", "Trusted origin for cross-origin requests. Repeatable. (default "+strings.Join(defaults.AllowedOrigins, ",")+")")
	case CommandSubmit:
		serverFlag = flagSet.String("server", "http://localhost:8000", "Base URL of a running dagcheck server.")
		timeoutFlag = flagSet.Duration("timeout", 10*time.Second, "Request timeout.")
		fallthrough
	case CommandCheck:
		outputFlag = flagSet.String("output", "text", "Report format. Options: 'text' or 'json'.")
		failFlag = flagSet.Bool("fail-on-cycle", true, "Exit with status 3 when the graph contains a cycle.")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", command)

	cfg := defaults
	if *configFlag != "" {
		model, err := loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if err := cfg.ApplyModel(model); err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid settings file %s: %v", *configFlag, err)}
		}
		slog.Debug("Settings file applied.", "path", *configFlag)
	}

	// Explicit flags win over the settings file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "listen":
			cfg.ListenAddr = *listenFlag
		case "max-body-bytes":
			cfg.MaxBodyBytes = *maxBodyFlag
		case "realtime":
			cfg.RealtimeEnabled = *realtimeFlag
		case "cors-origin":
			cfg.AllowedOrigins = []string(originsFlag)
		}
	})

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	inv := &Invocation{Command: command, Config: validated}
	if command == CommandServe {
		if flagSet.NArg() > 0 {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("serve takes no arguments, got %q", flagSet.Arg(0))}
		}
		slog.Debug("CLI parser finished successfully.", "command", command)
		return inv, false, nil
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s requires exactly one GRAPH_PATH argument", command)}
	}
	inv.GraphPath = flagSet.Arg(0)
	inv.FailOnCycle = *failFlag
	inv.Output = strings.ToLower(*outputFlag)
	if inv.Output != "text" && inv.Output != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'text' or 'json'"}
	}
	if command == CommandSubmit {
		inv.ServerURL = *serverFlag
		inv.Timeout = *timeoutFlag
		if inv.ServerURL == "" {
			return nil, false, &ExitError{Code: 2, Message: "server URL cannot be empty"}
		}
	}

	slog.Debug("CLI parser finished successfully.", "command", command, "path", inv.GraphPath)
	return inv, false, nil
}
