package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/dagcheck/internal/app"
	"github.com/specialistvlad/dagcheck/internal/cli"
	"github.com/specialistvlad/dagcheck/internal/hcl_adapter"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

// main is the entrypoint for the dagcheck application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Reports go to outW, logs to logW.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	loader := hcl_adapter.NewLoader()

	inv, shouldExit, err := cli.Parse(ctx, args, outW, loader)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a := app.New(logW, inv.Config, loader)

	var report pipeline.Report
	switch inv.Command {
	case cli.CommandServe:
		return a.Serve(ctx, nil)
	case cli.CommandCheck:
		report, err = a.Check(ctx, inv.GraphPath)
	case cli.CommandSubmit:
		report, err = a.Submit(ctx, inv.GraphPath, inv.ServerURL, inv.Timeout)
	default:
		return fmt.Errorf("unhandled command %q", inv.Command)
	}
	if err != nil {
		return err
	}

	if err := printReport(outW, inv.Output, report); err != nil {
		return err
	}
	if !report.IsDAG && inv.FailOnCycle {
		return &cli.ExitError{Code: cli.ExitCodeCycle, Message: "graph contains a cycle"}
	}
	return nil
}

func printReport(w io.Writer, format string, report pipeline.Report) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(report)
	}
	_, err := fmt.Fprintf(w, "nodes:  %d\nedges:  %d\nis_dag: %t\n", report.Nodes, report.Edges, report.IsDAG)
	return err
}
