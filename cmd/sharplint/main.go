// Command sharplint analyzes C# sources from the command line or serves
// diagnostics to editors over LSP.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/sharplint/internal/cli"
	"github.com/yaklabco/sharplint/internal/logging"

	// Registers the built-in analyzers.
	_ "github.com/yaklabco/sharplint/pkg/lint/rules"
)

// Set at build time via -ldflags.
//
//nolint:gochecknoglobals // ldflags targets must be package variables.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run executes the root command and maps its error to an exit code. An
// interrupt cancels ctx, which ends a lint run with partial results.
func run(ctx context.Context) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return cli.ExitSuccess
	case errors.Is(err, cli.ErrLintIssuesFound):
		// The report already said everything.
	default:
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
