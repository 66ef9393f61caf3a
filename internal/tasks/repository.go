// Package tasks implements the task repository: a per-user view over the
// single stored collection holding every user's tasks.
//
// Every mutation runs the merge-on-write protocol: re-read the full
// collection, partition out tasks belonging to other users, apply the change
// to the active user's slice, and write the union back as one value. That
// keeps concurrent repositories for different users from clobbering each
// other. It is best effort, not transactional: a write racing exactly inside
// another writer's read-modify-write window is still lost (last writer wins
// for the active user's own partition). This is a known limitation of the
// storage model.
package tasks

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskpad/taskpad/internal/logging"
	"github.com/taskpad/taskpad/internal/models"
	"github.com/taskpad/taskpad/internal/storage"
)

// Update carries the mutable task fields for Repository.Update. Nil fields
// are left untouched. ID, CreatedAt and UserID can never be changed.
type Update struct {
	Title *string
	Note  *string
	Due   *string
	Done  *bool
}

// Repository exposes CRUD over the tasks of one fixed user. A repository
// constructed with an empty user id behaves as empty and ignores mutations.
type Repository struct {
	store  storage.Store
	log    logging.Logger
	userID string

	// test seams
	now   func() time.Time
	newID func() string
}

func NewRepository(store storage.Store, log logging.Logger, userID string) *Repository {
	return &Repository{
		store:  store,
		log:    log,
		userID: userID,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns the active user's tasks in storage order, which is newest
// first since Add prepends. State is re-read from the store on every call so
// separate repository instances observe each other's writes.
func (r *Repository) List(ctx context.Context) []models.Task {
	if r.userID == "" {
		return []models.Task{}
	}
	mine, _ := partition(r.readAll(ctx), r.userID)
	return mine
}

// Add creates a task owned by the active user and prepends it, so new tasks
// sort first by default. No-op when there is no active user or the title is
// empty after trimming.
func (r *Repository) Add(ctx context.Context, title, note, due string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	return r.mutate(ctx, func(mine []models.Task) []models.Task {
		task := models.Task{
			ID:        r.newID(),
			Title:     title,
			Note:      strings.TrimSpace(note),
			Done:      false,
			CreatedAt: r.now().UnixMilli(),
			Due:       due,
			UserID:    r.userID,
		}
		return append([]models.Task{task}, mine...)
	})
}

// Update applies the given fields to the task with a matching id. An unknown
// id is a silent no-op.
func (r *Repository) Update(ctx context.Context, id string, upd Update) error {
	return r.mutate(ctx, func(mine []models.Task) []models.Task {
		for i := range mine {
			if mine[i].ID != id {
				continue
			}
			if upd.Title != nil {
				mine[i].Title = *upd.Title
			}
			if upd.Note != nil {
				mine[i].Note = *upd.Note
			}
			if upd.Due != nil {
				mine[i].Due = *upd.Due
			}
			if upd.Done != nil {
				mine[i].Done = *upd.Done
			}
		}
		return mine
	})
}

// Delete removes the task with a matching id; no-op if absent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.mutate(ctx, func(mine []models.Task) []models.Task {
		kept := mine[:0]
		for _, t := range mine {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		return kept
	})
}

// Toggle flips the done state of the task with a matching id; no-op if absent.
func (r *Repository) Toggle(ctx context.Context, id string) error {
	return r.mutate(ctx, func(mine []models.Task) []models.Task {
		for i := range mine {
			if mine[i].ID == id {
				mine[i].Done = !mine[i].Done
			}
		}
		return mine
	})
}

// DeleteCompleted removes every completed task. Idempotent.
func (r *Repository) DeleteCompleted(ctx context.Context) error {
	return r.mutate(ctx, func(mine []models.Task) []models.Task {
		kept := mine[:0]
		for _, t := range mine {
			if !t.Done {
				kept = append(kept, t)
			}
		}
		return kept
	})
}

// ClearAll empties the active user's task set. Destructive; callers must
// gate it behind an explicit confirmation.
func (r *Repository) ClearAll(ctx context.Context) error {
	return r.mutate(ctx, func([]models.Task) []models.Task {
		return []models.Task{}
	})
}

// Replace swaps the active user's entire set for the given tasks verbatim.
// Used by import: no per-task validation and no re-stamping of ids or owner,
// matching the backup format's full-fidelity contract.
func (r *Repository) Replace(ctx context.Context, imported []models.Task) error {
	return r.mutate(ctx, func([]models.Task) []models.Task {
		return imported
	})
}

// mutate is the merge-on-write routine: one read-modify-write cycle over the
// full stored collection, replacing only the active user's partition.
func (r *Repository) mutate(ctx context.Context, fn func(mine []models.Task) []models.Task) error {
	if r.userID == "" {
		return nil
	}

	all := r.readAll(ctx)
	mine, others := partition(all, r.userID)

	mine = fn(mine)

	return r.writeAll(ctx, append(others, mine...))
}

// readAll loads the full multi-user collection. Missing or malformed content
// degrades to an empty collection; the parse failure is logged.
func (r *Repository) readAll(ctx context.Context) []models.Task {
	raw, err := r.store.Get(ctx, storage.KeyTasks)
	if err != nil {
		r.log.Error(ctx, "failed to read task collection", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var all []models.Task
	if err := json.Unmarshal(raw, &all); err != nil {
		r.log.Warn(ctx, "failed to parse task collection", "error", err)
		return nil
	}
	return all
}

func (r *Repository) writeAll(ctx context.Context, all []models.Task) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyTasks, raw)
}

// partition splits the collection into the given user's tasks and everyone
// else's, both in stored order.
func partition(all []models.Task, userID string) (mine, others []models.Task) {
	mine = []models.Task{}
	others = []models.Task{}
	for _, t := range all {
		if t.UserID == userID {
			mine = append(mine, t)
		} else {
			others = append(others, t)
		}
	}
	return mine, others
}
