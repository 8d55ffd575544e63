package main

import (
	"context"
	"fmt"

	"tasktrack/internal/client/apiclient"
)

func (a *app) register(ctx context.Context, args []string) error {
	var req apiclient.RegisterRequest

	fs := newFlagSet("register", a.out)
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Country, "country", "", "country")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Name, err = a.in.Line("Name", req.Name); err != nil {
		return err
	}
	if req.Email, err = a.in.Line("Email", req.Email); err != nil {
		return err
	}
	if req.Country, err = a.in.Line("Country", req.Country); err != nil {
		return err
	}
	if req.Password, err = a.in.Password(); err != nil {
		return err
	}

	session, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s. You are signed in.\n", session.User.Name)

	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	var email string

	fs := newFlagSet("login", a.out)
	fs.StringVar(&email, "email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := a.in.Line("Email", email)
	if err != nil {
		return err
	}
	password, err := a.in.Password()
	if err != nil {
		return err
	}

	session, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s.\n", session.User.Email)

	return nil
}

func (a *app) logout() error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")

	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", user.Name, user.Email, user.Country)

	return nil
}
