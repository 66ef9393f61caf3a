package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) register(ctx context.Context) {

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	session, res, err := a.users.Register(ctx, username, email)
	if err != nil {
		a.log.Error(ctx, "register failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}

	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		a.setSession(session)
	}
}

func (a *App) login(ctx context.Context) {

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	session, res, err := a.users.Login(ctx, username)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}

	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		a.setSession(session)
	}
}

func (a *App) logout(ctx context.Context) {
	if err := a.users.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) whoami() {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", a.session.Username, a.session.Email, a.session.ID)
}

func (a *App) listUsers(ctx context.Context) {
	all := a.users.ListUsers(ctx)
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No registered users")
		return
	}
	for _, u := range all {
		created := time.UnixMilli(u.CreatedAt).Format("2006-01-02")
		fmt.Fprintf(a.out, "%s  %s <%s>  since %s\n", u.ID, u.Username, u.Email, created)
	}
}

func (a *App) deleteUser(ctx context.Context, args []string) {

	id, err := a.argOrPrompt(args, "Enter user id to delete")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if !GetConfirm(a.reader, "Delete user "+id+"? Their tasks are kept.", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if _, err := a.users.DeleteUser(ctx, id); err != nil {
		a.log.Error(ctx, "delete user failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}

	if a.session != nil && a.session.ID == id {
		a.setSession(nil)
	}
	fmt.Fprintln(a.out, "User deleted")
}

// argOrPrompt takes the first argument when given, otherwise asks for it.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}
