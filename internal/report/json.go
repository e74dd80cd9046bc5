package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter writes the run as a JSON document.
type JSONReporter struct{}

type jsonError struct {
	Path    string `json:"path"`
	Pointer string `json:"pointer"`
	Kind    string `json:"kind"`
	Keyword string `json:"keyword"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

type jsonDocument struct {
	Source   string      `json:"source"`
	Selector string      `json:"selector,omitempty"`
	Valid    bool        `json:"valid"`
	Error    string      `json:"error,omitempty"`
	Errors   []jsonError `json:"errors"`
}

type jsonOutput struct {
	RunID     string `json:"runId"`
	Schema    string `json:"schema"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		TotalPassed int `json:"totalPassed"`
		TotalFailed int `json:"totalFailed"`
	} `json:"stats"`
	Documents []jsonDocument `json:"documents"`
}

func (jr *JSONReporter) Write(w io.Writer, r *Run) error {
	out := jsonOutput{
		RunID:     r.ID,
		Schema:    r.SchemaPath,
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.Duration().String(),
		Documents: make([]jsonDocument, 0, len(r.Outcomes)),
	}
	out.Stats.TotalPassed = r.Passed()
	out.Stats.TotalFailed = r.Failed()

	for _, o := range r.Outcomes {
		doc := jsonDocument{
			Source:   o.Source,
			Selector: o.Selector,
			Valid:    o.Passed(),
			Errors:   []jsonError{},
		}
		if o.Err != nil {
			doc.Error = o.Err.Error()
		}
		for _, e := range o.Result.Errors() {
			doc.Errors = append(doc.Errors, jsonError{
				Path:    e.Path.String(),
				Pointer: e.Path.Pointer(),
				Kind:    e.Kind.String(),
				Keyword: e.Keyword,
				Message: e.Message(),
				Stack:   e.Stack(),
			})
		}
		out.Documents = append(out.Documents, doc)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
