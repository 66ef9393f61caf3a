// Package users implements the user directory: the set of registered
// accounts, the uniqueness rules guarding it, and the persisted
// "current session" record.
//
// Authentication here is an identity claim, not a verified secret: login
// succeeds for any existing username. The directory never keeps ambient
// session state; callers receive an explicit *models.Session and thread it
// through themselves.
package users

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

// Result is the user-facing outcome of a directory operation. Validation
// failures are reported here rather than as errors.
type Result struct {
	Success bool
	Message string
}

// Directory manages registered users and the persisted session record.
type Directory struct {
	store storage.TxStore
	log   logging.Logger

	// test seams
	now   func() time.Time
	newID func() string
}

func NewDirectory(store storage.TxStore, log logging.Logger) *Directory {
	return &Directory{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListUsers returns every registered user. A missing or malformed directory
// record yields an empty slice; the condition is logged, never returned.
func (d *Directory) ListUsers(ctx context.Context) []models.User {
	return d.loadUsers(ctx, d.store)
}

func (d *Directory) loadUsers(ctx context.Context, st storage.Store) []models.User {
	raw, err := st.Get(ctx, storage.KeyUsers)
	if err != nil {
		d.log.Error(ctx, "failed to read user directory", "error", err)
		return []models.User{}
	}
	if raw == nil {
		return []models.User{}
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		d.log.Warn(ctx, "failed to parse user directory", "error", err)
		return []models.User{}
	}
	return users
}

// Register creates a new account and logs it in.
//
// Validation order, first failure wins: username non-empty after trim,
// email non-empty after trim, email contains '@', username not taken,
// email not taken. On any validation failure the directory and session
// are untouched. The returned error reports storage failures only.
func (d *Directory) Register(ctx context.Context, username, email string) (*models.Session, Result, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, Result{Message: "Please enter a username"}, nil
	}
	if email == "" {
		return nil, Result{Message: "Please enter an email address"}, nil
	}
	if !strings.Contains(email, "@") {
		return nil, Result{Message: "Please enter a valid email address"}, nil
	}

	existing := d.ListUsers(ctx)

	for _, u := range existing {
		if u.Username == username {
			return nil, Result{Message: "This username is already taken"}, nil
		}
	}
	for _, u := range existing {
		if u.Email == email {
			return nil, Result{Message: "This email is already registered"}, nil
		}
	}

	user := models.User{
		ID:        d.newID(),
		Username:  username,
		Email:     email,
		CreatedAt: d.now().UnixMilli(),
	}

	if err := d.persistUsers(ctx, d.store, append(existing, user)); err != nil {
		return nil, Result{}, err
	}

	session := models.SessionFor(user)
	if err := d.persistSession(ctx, session); err != nil {
		return nil, Result{}, err
	}

	return session, Result{Success: true, Message: "Account created"}, nil
}

// Login establishes a session for an existing username. No mutation happens
// on failure.
func (d *Directory) Login(ctx context.Context, username string) (*models.Session, Result, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, Result{Message: "Please enter a username"}, nil
	}

	for _, u := range d.ListUsers(ctx) {
		if u.Username == username {
			session := models.SessionFor(u)
			if err := d.persistSession(ctx, session); err != nil {
				return nil, Result{}, err
			}
			return session, Result{Success: true, Message: "Logged in"}, nil
		}
	}

	return nil, Result{Message: "User not found"}, nil
}

// Logout removes the persisted session record. Idempotent.
func (d *Directory) Logout(ctx context.Context) error {
	return d.store.Delete(ctx, storage.KeySession)
}

// CurrentSession restores the persisted session, or nil when absent. A
// malformed record is discarded so the next start begins logged out.
func (d *Directory) CurrentSession(ctx context.Context) *models.Session {
	raw, err := d.store.Get(ctx, storage.KeySession)
	if err != nil {
		d.log.Error(ctx, "failed to read session record", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		d.log.Warn(ctx, "discarding malformed session record", "error", err)
		if err := d.store.Delete(ctx, storage.KeySession); err != nil {
			d.log.Error(ctx, "failed to discard session record", "error", err)
		}
		return nil
	}
	return &session
}

// DeleteUser removes the user with the given id and persists the reduced
// directory. If the persisted session references that user, it is logged
// out as well; both writes happen in one transaction so a failure cannot
// leave a session pointing at a removed user. Owned tasks are deliberately
// left in place so the data survives a later re-registration.
//
// Returns true whether or not a user matched: absence counts as success.
func (d *Directory) DeleteUser(ctx context.Context, id string) (bool, error) {
	err := d.store.WithinTx(ctx, func(st storage.Store) error {
		users := d.loadUsers(ctx, st)

		remaining := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.ID != id {
				remaining = append(remaining, u)
			}
		}

		if err := d.persistUsers(ctx, st, remaining); err != nil {
			return err
		}

		if s := d.readSession(ctx, st); s != nil && s.ID == id {
			return st.Delete(ctx, storage.KeySession)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// readSession parses the persisted session record without the discard side
// effect of CurrentSession, so it is safe inside a transaction.
func (d *Directory) readSession(ctx context.Context, st storage.Store) *models.Session {
	raw, err := st.Get(ctx, storage.KeySession)
	if err != nil {
		d.log.Error(ctx, "failed to read session record", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil
	}
	return &session
}

func (d *Directory) persistUsers(ctx context.Context, st storage.Store, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return st.Set(ctx, storage.KeyUsers, raw)
}

func (d *Directory) persistSession(ctx context.Context, s *models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return d.store.Set(ctx, storage.KeySession, raw)
}
