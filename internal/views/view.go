// Package views derives presentation-ready projections of a user's tasks.
// Everything here is pure: inputs are never mutated and each call returns a
// fresh slice.
package views

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taskpad/taskpad/internal/models"
)

// FilterStatus selects tasks by completion state.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterPending   FilterStatus = "pending"
	FilterCompleted FilterStatus = "completed"
)

// SortOption selects the ordering of the projected list.
type SortOption string

const (
	SortCreatedAt SortOption = "createdAt"
	SortDue       SortOption = "due"
	SortTitle     SortOption = "title"
)

// titleCollator provides locale-aware title comparison. The view pipeline is
// single-threaded, so sharing one collator is fine.
var titleCollator = collate.New(language.Und)

// Build filters tasks by a case-insensitive substring query (matched against
// title or note; a task without a note never matches on note), then by
// completion status, then sorts:
//
//   - SortTitle: lexicographic ascending, locale-aware
//   - SortDue: due date ascending; tasks without a due date sort last and
//     keep their relative order
//   - SortCreatedAt (default): newest first
//
// An empty or whitespace-only query disables the search filter. A non-blank
// query is matched as typed, surrounding whitespace included.
func Build(tasks []models.Task, query string, status FilterStatus, sortBy SortOption) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))

	q := strings.ToLower(query)
	for _, task := range tasks {
		if strings.TrimSpace(q) != "" {
			title := strings.ToLower(task.Title)
			note := strings.ToLower(task.Note)
			if !strings.Contains(title, q) && !(task.Note != "" && strings.Contains(note, q)) {
				continue
			}
		}
		switch status {
		case FilterPending:
			if task.Done {
				continue
			}
		case FilterCompleted:
			if !task.Done {
				continue
			}
		}
		filtered = append(filtered, task)
	}

	switch sortBy {
	case SortTitle:
		sort.SliceStable(filtered, func(i, j int) bool {
			return titleCollator.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	case SortDue:
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i].Due, filtered[j].Due
			if a == "" {
				return false
			}
			if b == "" {
				return true
			}
			return a < b
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt > filtered[j].CreatedAt
		})
	}

	return filtered
}

// Counts summarizes a task list for the presentation header.
type CountSummary struct {
	Total     int
	Pending   int
	Completed int
}

func Counts(tasks []models.Task) CountSummary {
	c := CountSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
