// Package backup serializes a user's task set to the portable backup format
// and back: a pretty-printed JSON array, full fidelity (ids, owner, and
// timestamps included).
//
// Import performs no per-task validation and no re-stamping of ids or owner;
// the parsed array is handed back verbatim. That keeps a backup an exact
// mirror of what was exported, at the cost of trusting the file's contents.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taskpad/taskpad/internal/common"
	"github.com/taskpad/taskpad/internal/filex"
	"github.com/taskpad/taskpad/internal/models"
)

// Filename returns the backup file name for the given date, e.g.
// "taskpad-backup-2026-08-29.json".
func Filename(now time.Time) string {
	return fmt.Sprintf("taskpad-backup-%s.json", now.Format("2006-01-02"))
}

// Marshal renders tasks as a pretty-printed, human-diffable JSON array.
func Marshal(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

// Unmarshal parses backup file contents. Content that is not valid JSON, or
// valid JSON that is not an array, fails with an error wrapping
// common.ErrImportFormat; the caller's existing data stays untouched.
func Unmarshal(data []byte) ([]models.Task, error) {
	var shape any
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrImportFormat, err)
	}
	if _, ok := shape.([]any); !ok {
		return nil, common.ErrImportFormat
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrImportFormat, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Write stores a backup of tasks under dir, named for the given date, and
// returns the full path.
func Write(dir string, tasks []models.Task, now time.Time) (string, error) {
	data, err := Marshal(tasks)
	if err != nil {
		return "", err
	}

	if err := filex.EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return path, nil
}

// Read loads and parses a backup file.
func Read(path string) ([]models.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	return Unmarshal(data)
}
