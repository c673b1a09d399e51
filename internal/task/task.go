// Package task holds the background jobs of the application: the reminder
// sweep and the expired-homework cleanup. Each job is an injectable Task
// whose single cycle can be executed directly, so tests run one sweep
// deterministically without any timer.
package task

import "context"

type Task interface {
	// Name identifies the task in logs.
	Name() string
	// Schedule returns the cron expression the task runs on.
	Schedule() string
	// Execute runs one cycle of the task.
	Execute(ctx context.Context) error
}
