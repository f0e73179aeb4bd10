package a2a

import "time"

/*
TaskState enumerates the terminal states a delivered task can be in.
*/
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

// timestampLayout matches what JavaScript's Date.toISOString produces, which
// is what the Telex side parses.
const timestampLayout = "2006-01-02T15:04:05.000Z"

type TaskStatus struct {
	State     TaskState `json:"state"`
	Timestamp string    `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
