// Package task defines the task model and pure transforms over a task collection.
//
// A collection is an ordered []Task. The functions in this package never touch
// storage: each returns a new slice and leaves its input untouched, so callers
// decide when to persist.
//
// # Task Status Values
//
//   - "todo": Task is pending (the status of every new task)
//   - "in-progress": Task is being worked on
//   - "done": Task is complete
//
// Status is an open string type. The three values above are the recognized
// set (see Status.Known), but a collection may hold any text because
// SetStatus accepts arbitrary values.
//
// # IDs
//
// New IDs are len(collection)+1. Deleting a task and adding another can
// therefore hand out an ID that an earlier, deleted task already used.
//
// # Timestamps
//
// Timestamps are written as local time in the layout
//
//	2006-01-02T15:04:05.000000
//
// and read from that layout (any fractional precision) or RFC 3339.
package task
