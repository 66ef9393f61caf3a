package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskpad/taskpad/internal/tasks"
	"github.com/taskpad/taskpad/internal/views"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return false
	}
	return true
}

func (a *App) addTask(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(a.out, "Title is required")
		return
	}

	note, err := GetSimpleText(a.reader, "Enter note (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	due, err := GetSimpleText(a.reader, "Enter due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.repo.Add(ctx, title, note, due); err != nil {
		a.log.Error(ctx, "add task failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}
	fmt.Fprintln(a.out, "Task added")
}

func (a *App) listTasks(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	all := a.repo.List(ctx)
	view := views.Build(all, a.query, a.status, a.sortBy)

	c := views.Counts(all)
	fmt.Fprintf(a.out, "%d tasks: %d pending, %d completed", c.Total, c.Pending, c.Completed)
	if a.query != "" || a.status != views.FilterAll {
		fmt.Fprintf(a.out, " (showing %d)", len(view))
	}
	fmt.Fprintln(a.out)

	if len(view) == 0 {
		if a.query != "" || a.status != views.FilterAll {
			fmt.Fprintln(a.out, "No tasks match the current filters")
		} else {
			fmt.Fprintln(a.out, "No tasks yet. Add one with 'add'.")
		}
		return
	}

	for _, t := range view {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Title)
		if t.Due != "" {
			line += "  (due " + t.Due + ")"
		}
		if t.Note != "" {
			line += "  - " + t.Note
		}
		fmt.Fprintf(a.out, "%s\n    id %s\n", line, t.ID)
	}
}

func (a *App) setQuery(args []string) {
	a.query = strings.Join(args, " ")
	if a.query == "" {
		fmt.Fprintln(a.out, "Search cleared")
		return
	}
	fmt.Fprintf(a.out, "Searching for %q\n", a.query)
}

func (a *App) setFilter(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: filter <all|pending|completed>")
		return
	}
	switch args[0] {
	case "all":
		a.status = views.FilterAll
	case "pending":
		a.status = views.FilterPending
	case "completed":
		a.status = views.FilterCompleted
	default:
		fmt.Fprintln(a.out, "Usage: filter <all|pending|completed>")
		return
	}
	fmt.Fprintf(a.out, "Filter set to %s\n", args[0])
}

func (a *App) setSort(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: sort <created|due|title>")
		return
	}
	switch args[0] {
	case "created":
		a.sortBy = views.SortCreatedAt
	case "due":
		a.sortBy = views.SortDue
	case "title":
		a.sortBy = views.SortTitle
	default:
		fmt.Fprintln(a.out, "Usage: sort <created|due|title>")
		return
	}
	fmt.Fprintf(a.out, "Sorting by %s\n", args[0])
}

func (a *App) editTask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	id, err := a.argOrPrompt(args, "Enter task id to edit")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	upd := tasks.Update{}

	title, err := GetSimpleText(a.reader, "New title (empty keeps current)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if title != "" {
		upd.Title = &title
	}

	note, err := GetSimpleText(a.reader, "New note (empty keeps current, '-' clears)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if note == "-" {
		empty := ""
		upd.Note = &empty
	} else if note != "" {
		upd.Note = &note
	}

	due, err := GetSimpleText(a.reader, "New due date (empty keeps current, '-' clears)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if due == "-" {
		empty := ""
		upd.Due = &empty
	} else if due != "" {
		upd.Due = &due
	}

	if err := a.repo.Update(ctx, id, upd); err != nil {
		a.log.Error(ctx, "edit task failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}
	fmt.Fprintln(a.out, "Task updated")
}

func (a *App) toggleTask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	id, err := a.argOrPrompt(args, "Enter task id to toggle")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.repo.Toggle(ctx, id); err != nil {
		a.log.Error(ctx, "toggle task failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
	}
}

func (a *App) deleteTask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	id, err := a.argOrPrompt(args, "Enter task id to delete")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.repo.Delete(ctx, id); err != nil {
		a.log.Error(ctx, "delete task failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
	}
}

func (a *App) clearCompleted(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	if err := a.repo.DeleteCompleted(ctx); err != nil {
		a.log.Error(ctx, "clear completed failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}
	fmt.Fprintln(a.out, "Completed tasks deleted")
}

func (a *App) clearAll(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	if !GetConfirm(a.reader, "Delete ALL tasks? This cannot be undone.", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if err := a.repo.ClearAll(ctx); err != nil {
		a.log.Error(ctx, "clear all failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}
	fmt.Fprintln(a.out, "All tasks deleted")
}
