package metaschema

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var santhoshDrafts = map[Draft]*jsonschema.Draft{
	Draft4:       jsonschema.Draft4,
	Draft6:       jsonschema.Draft6,
	Draft7:       jsonschema.Draft7,
	Draft2019_09: jsonschema.Draft2019,
	Draft2020_12: jsonschema.Draft2020,
}

// NewSanthoshCompiler returns a Compiler backed by santhosh-tekuri/jsonschema/v6.
func NewSanthoshCompiler() Compiler {
	return &santhoshCompiler{c: jsonschema.NewCompiler(), draft: Draft7}
}

type santhoshCompiler struct {
	mu    sync.Mutex
	c     *jsonschema.Compiler
	draft Draft
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddResource(id, schemaData)
}

func (s *santhoshCompiler) Compile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.c.Compile(id)
	return err
}

func (s *santhoshCompiler) SetDefaultDraft(d Draft) error {
	sd, ok := santhoshDrafts[d]
	if !ok {
		return &UnsupportedDraftError{Draft: d, Supported: s.SupportedSchemaVersions()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
	s.c.DefaultDraft(sd)
	return nil
}

func (s *santhoshCompiler) SupportedSchemaVersions() []Draft {
	return []Draft{
		Draft4,
		Draft6,
		Draft7,
		Draft2019_09,
		Draft2020_12,
	}
}

func (s *santhoshCompiler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = jsonschema.NewCompiler()
	s.c.DefaultDraft(santhoshDrafts[s.draft])
}
