// # internal/lint/resolver_test.go
package lint

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// buildResolver parses source and feeds every import and assignment in
// document order into a fresh resolver, mirroring what the engine does.
func buildResolver(t *testing.T, src string) (*pyast.Tree, *Resolver) {
	t.Helper()

	tree, err := pyast.Parse("test.py", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)

	r := NewResolver(tree)
	var feed func(n *sitter.Node)
	feed = func(n *sitter.Node) {
		switch n.Kind() {
		case pyast.KindImport:
			r.RecordImport(tree.ImportNames(n))
		case pyast.KindImportFrom:
			module, names := tree.FromImport(n)
			r.RecordFromImport(module, names)
		case pyast.KindAssignment:
			r.RecordAssign(n)
		}
		for _, child := range pyast.Children(n) {
			feed(child)
		}
	}
	feed(tree.Root())
	return tree, r
}

func TestResolverImportAliases(t *testing.T) {
	_, r := buildResolver(t, `
import os
import subprocess as sp
from pathlib import Path
from os import remove as rm
`)

	cases := map[string]string{
		"os":   "os",
		"sp":   "subprocess",
		"Path": "pathlib.Path",
		"rm":   "os.remove",
	}
	for local, want := range cases {
		got, ok := r.Lookup(local)
		if !ok {
			t.Errorf("Expected %s to be bound", local)
			continue
		}
		if got != want {
			t.Errorf("Expected %s -> %s, got %s", local, want, got)
		}
	}
}

func TestResolverAssignmentChains(t *testing.T) {
	_, r := buildResolver(t, `
import os
deleter = os.remove
also = deleter
`)

	got, ok := r.Lookup("also")
	if !ok || got != "os.remove" {
		t.Errorf("Expected also -> os.remove, got %q (bound=%v)", got, ok)
	}
}

func TestResolverCallResolvesThroughCallee(t *testing.T) {
	_, r := buildResolver(t, `
from pathlib import Path
p = Path("x")
`)

	got, ok := r.Lookup("p")
	if !ok || got != "pathlib.Path" {
		t.Errorf("Expected p -> pathlib.Path, got %q (bound=%v)", got, ok)
	}
}

func TestResolverUnresolvableBindsToItself(t *testing.T) {
	_, r := buildResolver(t, `
handle = [1, 2]
`)

	got, ok := r.Lookup("handle")
	if !ok || got != "handle" {
		t.Errorf("Expected handle -> handle, got %q (bound=%v)", got, ok)
	}
}

func TestResolverWildcardImportIgnored(t *testing.T) {
	_, r := buildResolver(t, `
from os import *
`)

	if _, ok := r.Lookup("*"); ok {
		t.Error("Expected wildcard import to record no binding")
	}
}
