// Command taskctl is the terminal client for the tasktrack API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"tasktrack/internal/client/apiclient"
	"tasktrack/internal/client/credential"
	"tasktrack/internal/client/gate"
	"tasktrack/internal/errors"

	"github.com/spf13/pflag"
)

const (
	defaultServer        = "http://localhost:5000"
	defaultVerifyTimeout = 10 * time.Second
	envServer            = "TASKTRACK_SERVER"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errDenied) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		server        string
		credFile      string
		verifyTimeout time.Duration
		verbose       bool
	)

	flagSet := pflag.NewFlagSet("taskctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&server, "server", envOr(envServer, defaultServer), "API base URL (env "+envServer+")")
	flagSet.StringVar(&credFile, "credential-file", "", "where the session is stored (default: user config dir)")
	flagSet.DurationVar(&verifyTimeout, "verify-timeout", defaultVerifyTimeout, "give up on session verification after this long")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)

		return errors.New("missing command")
	}

	if credFile == "" {
		path, err := credential.DefaultPath()
		if err != nil {
			return err
		}
		credFile = path
	}

	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store := credential.NewFileStore(credFile)
	client := apiclient.New(server, store)
	a := &app{
		client: client,
		gate:   gate.New(store, client, gate.WithTimeout(verifyTimeout), gate.WithLogger(logger)),
		in:     newPrompter(stdin, stdout),
		out:    stdout,
	}

	return a.dispatch(ctx, rest[0], rest[1:])
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `Usage: taskctl [global flags] <command> [flags]

Commands:
  register     create an account and sign in
  login        sign in
  logout       forget the stored session
  verify       check the stored session with the server
  whoami       show the signed-in user
  tasks list   list all tasks, newest first
  tasks add    create a task
  tasks edit   change a task
  tasks rm     delete a task

Global flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}
