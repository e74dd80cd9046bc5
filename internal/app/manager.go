package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/theory/jsonpath"
	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/engine"
	"github.com/andyballingall/json-schema-validator/internal/fs"
	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/report"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

// ValidateRequest describes one `jsv validate` invocation.
type ValidateRequest struct {
	SchemaPath string
	Inputs     []string // files or directories
	Selector   string   // JSONPath expression; empty validates whole documents
	Format     config.OutputFormat
	BranchMode engine.BranchMode
	Verbose    bool
	UseColour  bool
}

// Manager defines the operations behind the jsv commands.
type Manager interface {
	Config() *config.Config
	Validate(ctx context.Context, req ValidateRequest) error
	WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error
	CheckSchema(ctx context.Context, schemaPath string) error
}

var _ Manager = (*LazyManager)(nil)

// LazyManager stands in for the real Manager until the root command has read
// the configuration and built it.
type LazyManager struct {
	inner  Manager
	closer io.Closer
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner reports whether the inner manager has been set, as it is in tests.
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

// Close releases resources, such as the log file, opened while building the manager.
func (l *LazyManager) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Config() *config.Config {
	return l.check().Config()
}

func (l *LazyManager) Validate(ctx context.Context, req ValidateRequest) error {
	return l.check().Validate(ctx, req)
}

func (l *LazyManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	return l.check().WatchValidation(ctx, req, readyChan)
}

func (l *LazyManager) CheckSchema(ctx context.Context, schemaPath string) error {
	return l.check().CheckSchema(ctx, schemaPath)
}

var _ Manager = (*CLIManager)(nil)

// CLIManager is the Manager used by the jsv binary.
type CLIManager struct {
	logger         *slog.Logger
	cfg            *config.Config
	loader         *schema.Loader
	reporterWriter io.Writer
	workers        int
}

func NewCLIManager(l *slog.Logger, cfg *config.Config, loader *schema.Loader, w io.Writer) *CLIManager {
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		loader:         loader,
		reporterWriter: w,
		workers:        runtime.GOMAXPROCS(0),
	}
}

func (m *CLIManager) Config() *config.Config {
	return m.cfg
}

func (m *CLIManager) CheckSchema(_ context.Context, schemaPath string) error {
	m.logger.Debug("checking schema", "path", schemaPath)
	if _, err := m.loader.LoadFile(schemaPath); err != nil {
		return err
	}
	fmt.Fprintf(m.reporterWriter, "%s is a valid schema\n", schemaPath)
	return nil
}

func (m *CLIManager) Validate(ctx context.Context, req ValidateRequest) error {
	m.logger.Debug("validating", "schema", req.SchemaPath, "inputs", req.Inputs, "select", req.Selector,
		"format", req.Format, "branchErrors", req.BranchMode, "verbose", req.Verbose)

	run, err := m.run(ctx, req)
	if err != nil {
		return err
	}

	if err = m.reporter(req).Write(m.reporterWriter, run); err != nil {
		return err
	}

	if !run.Valid() {
		return &ValidationFailedError{Failed: run.Failed(), Total: len(run.Outcomes)}
	}
	return nil
}

// WatchValidation validates once, then again after every change to the schema
// or an input, until the context is cancelled. A non-nil readyChan is sent a
// value once the watcher is listening.
func (m *CLIManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	if len(req.Inputs) == 0 {
		return &MissingInputsError{}
	}

	validate := func() {
		err := m.Validate(ctx, req)
		var failed *ValidationFailedError
		switch {
		case errors.As(err, &failed):
			m.logger.Warn("Validation failed", "error", err)
		case err != nil:
			m.logger.Error("Validation could not run", "error", err)
		}
	}
	validate()

	watcher := NewWatcher(append([]string{req.SchemaPath}, req.Inputs...), m.logger)
	if readyChan != nil {
		go func() {
			select {
			case <-watcher.Ready:
				readyChan <- struct{}{}
			case <-ctx.Done():
			}
		}()
	}

	return watcher.Watch(ctx, func(path string) {
		m.logger.Info("Changed:", "path", path)
		validate()
	})
}

func (m *CLIManager) reporter(req ValidateRequest) report.Reporter {
	if req.Format == config.OutputJSON {
		return &report.JSONReporter{}
	}
	return &report.TextReporter{Verbose: req.Verbose, UseColour: req.UseColour}
}

// run loads the schema and validates every input. Inputs are read and
// validated concurrently; outcomes keep input order.
func (m *CLIManager) run(ctx context.Context, req ValidateRequest) (*report.Run, error) {
	if len(req.Inputs) == 0 {
		return nil, &MissingInputsError{}
	}

	var selector *jsonpath.Path
	if req.Selector != "" {
		p, err := jsonpath.Parse(req.Selector)
		if err != nil {
			return nil, &InvalidSelectorError{Selector: req.Selector, Wrapped: err}
		}
		selector = p
	}

	run := report.NewRun(req.SchemaPath)

	node, err := m.loader.LoadFile(req.SchemaPath)
	if err != nil {
		return nil, err
	}

	files, err := fs.ExpandInputs(req.Inputs)
	if err != nil {
		return nil, err
	}

	v := engine.New(
		engine.WithBranchMode(req.BranchMode),
		engine.WithParallelism(m.cfg.Parallelism),
		engine.WithLogger(m.logger),
	)

	outcomes := make([][]report.Outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = m.validateFile(v, node, f, req.Selector, selector)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		run.Add(o...)
	}
	run.Finish()
	m.logger.Debug("run complete", "run", run.ID, "passed", run.Passed(), "failed", run.Failed())
	return run, nil
}

func (m *CLIManager) validateFile(
	v *engine.Validator, node *schema.Node, file, expr string, selector *jsonpath.Path,
) []report.Outcome {
	if selector == nil {
		value, err := instance.ParseFile(file)
		if err != nil {
			return []report.Outcome{{Source: file, Err: err}}
		}
		return []report.Outcome{{Source: file, Result: v.Validate(value, node)}}
	}

	//nolint:gosec // Inputs are chosen by the user
	data, err := os.ReadFile(file)
	if err != nil {
		return []report.Outcome{{Source: file, Err: err}}
	}
	var doc any
	if err = json.Unmarshal(data, &doc); err != nil {
		return []report.Outcome{{Source: file, Err: &instance.InvalidJSONError{Source: file}}}
	}

	matches := selector.Select(doc)
	if len(matches) == 0 {
		return []report.Outcome{{Source: file, Selector: expr, Err: &NoSelectionError{Selector: expr}}}
	}

	outcomes := make([]report.Outcome, 0, len(matches))
	for i, match := range matches {
		label := fmt.Sprintf("%s #%d", expr, i)
		value, err := instance.FromAny(match)
		if err != nil {
			outcomes = append(outcomes, report.Outcome{Source: file, Selector: label, Err: err})
			continue
		}
		outcomes = append(outcomes, report.Outcome{Source: file, Selector: label, Result: v.Validate(value, node)})
	}
	return outcomes
}
