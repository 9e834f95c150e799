package batch

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/ciphergen/pkg/core"
)

// Task statuses.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// TaskState is the live status of one task.
type TaskState struct {
	Cipher  core.Cipher `json:"cipher"`
	Length  int         `json:"length"`
	Status  string      `json:"status"`
	Done    int         `json:"done"`
	Total   int         `json:"total"`
	Retries int         `json:"retries"`
	Error   string      `json:"error,omitempty"`
}

func newTaskState(t Task) *TaskState {
	return &TaskState{Cipher: t.Cipher, Length: t.Length, Total: t.Iterations, Status: StatusPending}
}

// OrchestratorState exposes internal state for observability.
type OrchestratorState struct {
	RunID   string      `json:"run_id,omitempty"`
	Workers int         `json:"workers"`
	Tasks   []TaskState `json:"tasks"`
}

// State implements introspection.Introspectable.
func (o *Orchestrator) State() any {
	tasks := o.snapshot()
	o.mu.RLock()
	defer o.mu.RUnlock()
	return OrchestratorState{
		RunID:   o.runID,
		Workers: o.opts.workers,
		Tasks:   tasks,
	}
}

// ComponentType implements introspection.Component.
func (o *Orchestrator) ComponentType() string {
	return "orchestrator"
}

var _ introspection.Introspectable = (*Orchestrator)(nil)
var _ introspection.Component = (*Orchestrator)(nil)
