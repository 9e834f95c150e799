package batch

import (
	"time"

	"github.com/aretw0/ciphergen/pkg/core"
)

// Report summarizes a run. It is written next to the datasets as the run
// manifest.
type Report struct {
	RunID      string       `yaml:"run_id" json:"run_id"`
	Seed       uint64       `yaml:"seed" json:"seed"`
	Iterations int          `yaml:"iterations" json:"iterations"`
	MaxOffset  int          `yaml:"max_offset" json:"max_offset"`
	Started    time.Time    `yaml:"started" json:"started"`
	Finished   time.Time    `yaml:"finished" json:"finished"`
	Tasks      []TaskReport `yaml:"tasks" json:"tasks"`
}

// TaskReport is the outcome of one task.
type TaskReport struct {
	Cipher  core.Cipher `yaml:"cipher" json:"cipher"`
	Length  int         `yaml:"length" json:"length"`
	Records int         `yaml:"records" json:"records"`
	Retries int         `yaml:"retries" json:"retries"`
	Seconds float64     `yaml:"seconds" json:"seconds"`
	Error   string      `yaml:"error,omitempty" json:"error,omitempty"`

	err error
}

// Err returns the task failure as a *BatchError, or nil.
func (t TaskReport) Err() error {
	return t.err
}

// Failed returns the reports of failed tasks.
func (r Report) Failed() []TaskReport {
	var out []TaskReport
	for _, t := range r.Tasks {
		if t.Error != "" {
			out = append(out, t)
		}
	}
	return out
}

// Records returns the total number of records written by the run.
func (r Report) Records() int {
	n := 0
	for _, t := range r.Tasks {
		n += t.Records
	}
	return n
}
