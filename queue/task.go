package queue

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pbanos/hedgecut/dataset"
)

// Task represents a request to forget a
// training row.
type Task struct {
	// ID identifies the task in its queue.
	ID string
	// Row is the labeled row to forget.
	Row *dataset.Row
}

// NewTask takes a row and returns a task to
// forget it with a random ID.
func NewTask(r *dataset.Row) *Task {
	return &Task{ID: uuid.NewString(), Row: r}
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s %v}", t.ID, t.Row)
}
