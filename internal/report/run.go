// Package report renders the results of a validation run.
package report

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/andyballingall/json-schema-validator/internal/engine"
)

// Reporter writes a finished run.
type Reporter interface {
	Write(w io.Writer, r *Run) error
}

// Outcome is the result of validating one document. Selector is the JSONPath
// expression of the sub-document when --select was used, with the match index.
// Err is set when the document could not be read, in which case Result is empty.
type Outcome struct {
	Source   string
	Selector string
	Result   engine.Result
	Err      error
}

// Label names the document in reports.
func (o Outcome) Label() string {
	if o.Selector == "" {
		return o.Source
	}
	return o.Source + " " + o.Selector
}

func (o Outcome) Passed() bool {
	return o.Err == nil && o.Result.Valid()
}

type Run struct {
	ID         string
	SchemaPath string
	StartTime  time.Time
	EndTime    time.Time
	Outcomes   []Outcome
}

// NewRun starts a run against the schema at schemaPath.
func NewRun(schemaPath string) *Run {
	return &Run{
		ID:         uuid.New().String(),
		SchemaPath: schemaPath,
		StartTime:  time.Now(),
	}
}

func (r *Run) Add(o ...Outcome) {
	r.Outcomes = append(r.Outcomes, o...)
}

func (r *Run) Finish() {
	r.EndTime = time.Now()
}

func (r *Run) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

func (r *Run) Passed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Passed() {
			n++
		}
	}
	return n
}

func (r *Run) Failed() int {
	return len(r.Outcomes) - r.Passed()
}

// Valid reports whether every document passed.
func (r *Run) Valid() bool {
	return r.Failed() == 0
}
