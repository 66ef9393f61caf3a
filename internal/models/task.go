package models

// Task is a single to-do item owned by one user.
type Task struct {
	// ID is a globally unique identifier (uuid).
	ID string `json:"id"`

	// Title is the task title, trimmed, non-empty.
	Title string `json:"title"`

	// Note is an optional free-form annotation.
	Note string `json:"note,omitempty"`

	// Done is the completion state.
	Done bool `json:"done"`

	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`

	// Due is an optional due date in "YYYY-MM-DD" form.
	Due string `json:"due,omitempty"`

	// UserID identifies the owning user.
	UserID string `json:"userId"`
}
