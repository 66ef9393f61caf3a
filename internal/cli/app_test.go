package cli

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskpad/taskpad/internal/backup"
	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/logging"
)

func newTestApp(t *testing.T, dbPath string) (*App, *bytes.Buffer) {
	t.Helper()

	if dbPath == "" {
		dbPath = ":memory:"
	}
	cfg := &config.Config{DatabasePath: dbPath, ExportDir: t.TempDir()}

	app, err := NewApp(context.Background(), cfg, logging.NewDiscard())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	out := &bytes.Buffer{}
	app.out = out
	return app, out
}

func feed(app *App, input string) {
	app.reader = bufio.NewReader(strings.NewReader(input))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestScenario_RegisterAddToggleRelogin(t *testing.T) {
	app, _ := newTestApp(t, "")
	ctx := context.Background()

	feed(app, "ann\na@x.com\n")
	app.register(ctx)
	require.True(t, app.isLoggedIn())

	feed(app, "Buy milk\n\n\n")
	app.addTask(ctx)

	list := app.repo.List(ctx)
	require.Len(t, list, 1)
	app.toggleTask(ctx, []string{list[0].ID})

	app.logout(ctx)
	require.False(t, app.isLoggedIn())
	assert.Empty(t, app.repo.List(ctx), "logged-out repository behaves as empty")

	feed(app, "ann\n")
	app.login(ctx)
	require.True(t, app.isLoggedIn())

	got := app.repo.List(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
	assert.True(t, got[0].Done)
}

func TestSessionRestoredAcrossRestarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taskpad.db")
	ctx := context.Background()

	app1, _ := newTestApp(t, dbPath)
	feed(app1, "ann\na@x.com\n")
	app1.register(ctx)
	require.True(t, app1.isLoggedIn())
	app1.Close()

	app2, _ := newTestApp(t, dbPath)
	require.True(t, app2.isLoggedIn(), "session must survive a restart")
	assert.Equal(t, "ann", app2.session.Username)
}

func TestTaskCommandsRequireLogin(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	app.addTask(ctx)
	app.listTasks(ctx)
	app.clearAll(ctx)
	app.exportTasks(ctx)

	assert.Contains(t, out.String(), "Please log in first")
}

func TestClearAll_RequiresConfirmation(t *testing.T) {
	app, _ := newTestApp(t, "")
	ctx := context.Background()

	feed(app, "ann\na@x.com\n")
	app.register(ctx)
	feed(app, "Buy milk\n\n\n")
	app.addTask(ctx)

	// declined: tasks stay
	feed(app, "n\n")
	app.clearAll(ctx)
	assert.Len(t, app.repo.List(ctx), 1)

	// confirmed: tasks gone
	feed(app, "y\n")
	app.clearAll(ctx)
	assert.Empty(t, app.repo.List(ctx))
}

func TestExportImportRoundTrip(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	app.now = func() time.Time { return now }

	feed(app, "ann\na@x.com\n")
	app.register(ctx)

	feed(app, "Buy milk\n2 liters\n2026-09-01\n")
	app.addTask(ctx)
	feed(app, "Call mom\n\n\n")
	app.addTask(ctx)

	before := app.repo.List(ctx)
	require.Len(t, before, 2)

	app.exportTasks(ctx)
	path := filepath.Join(app.config.ExportDir, backup.Filename(now))
	assert.Contains(t, out.String(), path)

	feed(app, "y\n")
	app.clearAll(ctx)
	require.Empty(t, app.repo.List(ctx))

	app.importTasks(ctx, []string{path})
	assert.Equal(t, before, app.repo.List(ctx))
}

func TestImport_BadFileLeavesTasksUntouched(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	feed(app, "ann\na@x.com\n")
	app.register(ctx)
	feed(app, "Buy milk\n\n\n")
	app.addTask(ctx)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, writeFile(bad, `{"not":"an array"}`))

	app.importTasks(ctx, []string{bad})

	assert.Contains(t, out.String(), "Import failed, check the file format")
	assert.Len(t, app.repo.List(ctx), 1)
}

func TestImport_MissingFileReportsReadError(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	feed(app, "ann\na@x.com\n")
	app.register(ctx)
	feed(app, "Buy milk\n\n\n")
	app.addTask(ctx)

	missing := filepath.Join(t.TempDir(), "nope.json")
	app.importTasks(ctx, []string{missing})

	assert.Contains(t, out.String(), "Could not read the backup file")
	assert.NotContains(t, out.String(), "check the file format")
	assert.Len(t, app.repo.List(ctx), 1)
}

func TestDeleteUser_OwnAccountLogsOut(t *testing.T) {
	app, _ := newTestApp(t, "")
	ctx := context.Background()

	feed(app, "ann\na@x.com\n")
	app.register(ctx)
	id := app.session.ID

	feed(app, "y\n")
	app.deleteUser(ctx, []string{id})

	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.users.ListUsers(ctx))
}
