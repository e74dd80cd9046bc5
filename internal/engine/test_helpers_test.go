package engine

import (
	"path/filepath"
	"testing"

	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

const notExactlyOne = "instance is not exactly one from <#/BodyWithProperty2>,<#/BodyWithProperty3>"

func loadBodies(t *testing.T) *schema.Node {
	t.Helper()
	n, err := schema.NewLoader().LoadFile(filepath.Join("testdata", "bodies.schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func loadSchema(t *testing.T, doc string) *schema.Node {
	t.Helper()
	n, err := schema.Load([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func parse(t *testing.T, doc string) instance.Value {
	t.Helper()
	v, err := instance.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func stacksOf(errs []Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Stack()
	}
	return out
}
