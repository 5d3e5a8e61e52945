// # internal/lint/engine_test.go
package lint

import (
	"reflect"
	"testing"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

func lintSource(t *testing.T, version, src string) []Diagnostic {
	t.Helper()

	tree, err := pyast.Parse("test.py", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)

	target, err := ParseVersion(version)
	if err != nil {
		t.Fatal(err)
	}

	return NewEngine(tree, Options{Target: target}).Run()
}

func codes(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func assertCodes(t *testing.T, diags []Diagnostic, want ...string) {
	t.Helper()
	got := codes(diags)
	if len(want) == 0 {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected codes %v, got %v", want, got)
		for _, d := range diags {
			t.Logf("  %d:%d %s: %s", d.Location.Line, d.Location.Column, d.Code, d.Render())
		}
	}
}

func TestCleanSourceProducesNoFindings(t *testing.T) {
	diags := lintSource(t, "3.13", `
import json

def handler(data):
    return json.dumps(data)
`)
	assertCodes(t, diags)
}

func TestDeterministicOutput(t *testing.T) {
	src := `
import os
import requests
import lxml
import subprocess
from spwd import getspall

CACHE = {}

def run():
    os.remove("f")
    subprocess.call(["ls"])
    CACHE["k"] = 1
    while True:
        pass
`
	first := lintSource(t, "3.13", src)
	for i := 0; i < 10; i++ {
		again := lintSource(t, "3.13", src)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run %d differed from first run:\nfirst: %v\nagain: %v", i, first, again)
		}
	}
}

func TestSyntaxErrorsDoNotPanic(t *testing.T) {
	// Broken source still parses into a tree with error nodes. The engine
	// must walk it without crashing.
	diags := lintSource(t, "3.13", `
def broken(:
    os.remove(
`)
	_ = diags
}

func TestDiagnosticLocationIsOneBased(t *testing.T) {
	diags := lintSource(t, "3.13", `import requests`)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(diags))
	}
	if diags[0].Location.Line != 1 {
		t.Errorf("Expected line 1, got %d", diags[0].Location.Line)
	}
	if diags[0].Location.Column != 1 {
		t.Errorf("Expected column 1, got %d", diags[0].Location.Column)
	}
}
