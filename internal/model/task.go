package model

import (
	"strings"
	"time"
)

// Task is the domain model for a row of the tasks table.
// id and the timestamps are assigned by the data store.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Desc returns the description or "" when the task has none.
func (t Task) Desc() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// NewTask is the insert payload. A nil Description is stored as null.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Draft normalizes raw form input: both fields are trimmed and an empty
// description becomes nil. ok is false when the trimmed title is empty.
func Draft(title, description string) (nt NewTask, ok bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewTask{}, false
	}
	nt.Title = title
	if d := strings.TrimSpace(description); d != "" {
		nt.Description = &d
	}
	return nt, true
}

// Stats are the summary counts shown in the header.
type Stats struct {
	Total, Completed, Pending int
}

func Summarize(tasks []Task) Stats {
	var s Stats
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Total = len(tasks)
	s.Pending = s.Total - s.Completed
	return s
}
