// Package main is the notely command-line client for the multi-tenant notes API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"notely/internal/platform/config"
	"notely/internal/platform/httpclient"
	dErrors "notely/pkg/domain-errors"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors whose usage text has already been printed.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	name, rest := args[0], args[1:]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(stdout)
		return exitOK
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", name)
		printUsage(stderr)
		return exitUsage
	}
	if cmd.offline {
		return report(stderr, cmd.run(ctx, &app{stdout: stdout, stderr: stderr}, rest), cmd.fallback)
	}

	cfg := config.FromEnv()
	a, err := newApp(ctx, cfg, stdout, stderr, appOptions{quietUnauthorized: cmd.quietUnauthorized})
	if err != nil {
		return report(stderr, err, "Failed to start")
	}
	defer a.close(ctx)

	if cmd.requiresSession {
		// A signed-out user gets one clear message before any request is made.
		if _, err := a.auth.Require(ctx); err != nil {
			return report(stderr, err, cmd.fallback)
		}
	}
	return report(stderr, cmd.run(ctx, a, rest), cmd.fallback)
}

// report prints the user-facing message for err and maps it to an exit code.
// Client-side refusals carry their own message; server failures show the
// server's message or the per-command fallback.
func report(stderr io.Writer, err error, fallback string) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return exitUsage
	}

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		fmt.Fprintln(stderr, "Error:", domainErr.Error())
		return exitError
	}
	fmt.Fprintln(stderr, "Error:", httpclient.ServerMessage(err, fallback))
	return exitError
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `notely - multi-tenant notes from the command line

Usage:
  notely <command> [flags]

Commands:
  login        Sign in (--email/--password, or --demo <email>)
  logout       Forget the stored session
  whoami       Show the signed-in user (--refresh to ask the server)
  accounts     List the demo accounts
  dashboard    Show user, plan, notes and (for admins) tenant users
  notes        list | show <id> | create | edit <id> | delete <id>
  users        list | invite --email <email> [--role member|admin]   (admins)
  upgrade      Upgrade the tenant to the Pro plan                    (admins)
  health       Check that the API is reachable

Environment:
  NOTELY_API_URL            API base URL (default http://localhost:5000/api)
  NOTELY_SESSION_FILE       Session file path
  NOTELY_SESSION_REDIS_URL  Store the session in Redis instead
  NOTELY_PROFILE            Session profile name (default "default")
  NOTELY_HTTP_TIMEOUT       Request timeout, e.g. 10s (default none)
  NOTELY_LOG_LEVEL          debug | info | warn | error (default warn)
  NOTELY_METRICS_FILE       Write Prometheus metrics here after each run
`)
}
