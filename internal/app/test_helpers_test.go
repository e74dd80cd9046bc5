package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/json-schema-validator/internal/config"
)

const bodiesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "oneOf": [
    { "$ref": "#/BodyWithProperty2" },
    { "$ref": "#/BodyWithProperty3" }
  ],
  "BodyWithProperty2": {
    "type": "object",
    "required": ["p1", "p2"],
    "properties": {
      "p1": { "type": "string" },
      "p2": { "type": "string", "minLength": 1 },
      "p4": { "type": "string" }
    }
  },
  "BodyWithProperty3": {
    "type": "object",
    "required": ["p1", "p3"],
    "properties": {
      "p1": { "type": "string" },
      "p3": { "type": "string", "minLength": 1 },
      "p4": { "type": "string" }
    }
  }
}`

const notExactlyOne = "instance is not exactly one from <#/BodyWithProperty2>,<#/BodyWithProperty3>"

type MockManager struct {
	mock.Mock
	cfg *config.Config
}

func (m *MockManager) Config() *config.Config {
	if m.cfg == nil {
		return config.Default()
	}
	return m.cfg
}

func (m *MockManager) Validate(ctx context.Context, req ValidateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	args := m.Called(ctx, req, readyChan)
	return args.Error(0)
}

func (m *MockManager) CheckSchema(ctx context.Context, schemaPath string) error {
	args := m.Called(ctx, schemaPath)
	return args.Error(0)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// safeBuffer is a bytes.Buffer safe for concurrent use.
type safeBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *safeBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// waitFor polls until cond holds or the timeout passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}
