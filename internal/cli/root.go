package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.Username)
}

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to taskpad (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "taskpad %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "users":
			a.listUsers(ctx)
		case "deluser":
			a.deleteUser(ctx, args)
		case "add":
			a.addTask(ctx)
		case "list", "ls":
			a.listTasks(ctx)
		case "find":
			a.setQuery(args)
		case "filter":
			a.setFilter(args)
		case "sort":
			a.setSort(args)
		case "edit":
			a.editTask(ctx, args)
		case "done":
			a.toggleTask(ctx, args)
		case "del":
			a.deleteTask(ctx, args)
		case "cleardone":
			a.clearCompleted(ctx)
		case "clearall":
			a.clearAll(ctx)
		case "export":
			a.exportTasks(ctx)
		case "import":
			a.importTasks(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}

}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: add, list, find, filter, sort, edit, done, del, cleardone, clearall, export, import, whoami, users, deluser, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, users, exit")
	}
}
