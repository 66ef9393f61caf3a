// Package cli implements the interactive taskpad shell. It is presentation
// only: every data operation goes through the user directory, the task
// repository, the view builder, or the backup codec.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/logging"
	"github.com/taskpad/taskpad/internal/models"
	"github.com/taskpad/taskpad/internal/storage"
	"github.com/taskpad/taskpad/internal/tasks"
	"github.com/taskpad/taskpad/internal/users"
	"github.com/taskpad/taskpad/internal/views"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger

	db      *sql.DB
	store   storage.Store
	users   *users.Directory
	session *models.Session
	repo    *tasks.Repository

	// view state for the list command
	query  string
	status views.FilterStatus
	sortBy views.SortOption

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	st := storage.NewSQLiteStore(db)

	a := &App{
		config: cfg,
		log:    log,
		db:     db,
		store:  st,
		users:  users.NewDirectory(st, log),
		status: views.FilterAll,
		sortBy: views.SortCreatedAt,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}

	// restore the persisted session once at startup
	a.setSession(a.users.CurrentSession(ctx))

	return a, nil
}

// setSession swaps the active identity and rebinds the task repository to it.
// A nil session leaves an empty-scoped repository, so task commands degrade
// to no-ops instead of panicking.
func (a *App) setSession(s *models.Session) {
	a.session = s
	userID := ""
	if s != nil {
		userID = s.ID
	}
	a.repo = tasks.NewRepository(a.store, a.log, userID)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
