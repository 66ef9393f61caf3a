package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpad/taskpad/internal/backup"
	"github.com/taskpad/taskpad/internal/common"
)

func (a *App) exportTasks(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	all := a.repo.List(ctx)
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No tasks to export")
		return
	}

	path, err := backup.Write(a.config.ExportDir, all, a.now())
	if err != nil {
		a.log.Error(ctx, "export failed", "error", err)
		fmt.Fprintln(a.out, "Export failed")
		return
	}
	fmt.Fprintf(a.out, "Exported %d tasks to %s\n", len(all), path)
}

func (a *App) importTasks(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	path, err := a.argOrPrompt(args, "Enter backup file path")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	imported, err := backup.Read(path)
	if err != nil {
		a.log.Warn(ctx, "import rejected", "path", path, "error", err)
		if errors.Is(err, common.ErrImportFormat) {
			fmt.Fprintln(a.out, "Import failed, check the file format. Existing tasks are unchanged.")
		} else {
			fmt.Fprintln(a.out, "Could not read the backup file. Existing tasks are unchanged.")
		}
		return
	}

	if err := a.repo.Replace(ctx, imported); err != nil {
		a.log.Error(ctx, "import failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong, please try again")
		return
	}
	fmt.Fprintf(a.out, "Imported %d tasks\n", len(imported))
}
