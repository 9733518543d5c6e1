package main

import (
	"context"
	"fmt"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/auth"
)

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: login <username> <password>"}
	}
	manager := auth.NewManager(a.client, a.sessions)
	resp, err := manager.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", resp.Username, resp.Role)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	manager := auth.NewManager(a.client, a.sessions)
	if err := manager.SignOut(ctx); err != nil {
		// The local session is already cleared; only mention the server.
		fmt.Println("logged out (server-side logout failed:", err, ")")
		return nil
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: register <username> <email> <password> [phone] [address]"}
	}
	phone, address := "", ""
	if len(args) > 3 {
		phone = args[3]
	}
	if len(args) > 4 {
		address = args[4]
	}
	resp, err := a.client.Auth().Register(ctx, args[0], args[1], args[2], phone, address)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func (a *app) whoami() error {
	if !a.sessions.IsLoggedIn() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s), user id %d\n",
		a.sessions.Username(), a.sessions.Email(), a.sessions.Role(), a.sessions.UserID())
	return nil
}
