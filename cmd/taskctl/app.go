package main

import (
	"context"
	"fmt"
	"io"

	"tasktrack/internal/client/apiclient"
	"tasktrack/internal/client/gate"
	"tasktrack/internal/errors"

	"github.com/spf13/pflag"
)

// errDenied is returned after the redirect hint has been printed.
var errDenied = errors.New("not signed in")

type app struct {
	client *apiclient.Client
	gate   *gate.Gate
	in     *prompter
	out    io.Writer
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "verify":
		return a.verify(ctx)
	case "whoami":
		return a.protected(ctx, a.whoami)
	case "tasks":
		return a.tasks(ctx, args)
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

// protected runs fn only if the stored session verifies. While the check is
// in flight nothing from fn is printed.
func (a *app) protected(ctx context.Context, fn func(context.Context) error) error {
	state, err := a.checkSession(ctx)
	if err != nil {
		return err
	}
	if state != gate.Granted {
		fmt.Fprintln(a.out, "You are not signed in or your session expired. Run `taskctl login`.")

		return errDenied
	}

	return fn(ctx)
}

func (a *app) checkSession(ctx context.Context) (gate.State, error) {
	boundary := a.gate.Mount(ctx, func(s gate.State) {
		if s == gate.Checking {
			fmt.Fprintln(a.out, "Checking authentication...")
		}
	})
	defer boundary.Unmount()

	return boundary.Wait(ctx)
}

func (a *app) verify(ctx context.Context) error {
	state, err := a.checkSession(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session %s\n", state)
	if state != gate.Granted {
		return errDenied
	}

	return nil
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)

	return fs
}
