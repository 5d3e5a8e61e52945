// # internal/lint/sleep.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// sleepCalls flags time.sleep() in playbook code. It tracks time-module
// aliases and direct sleep imports itself: the same module may legally be
// imported more than once under different names.
type sleepCalls struct {
	timeAliases  map[string]struct{}
	sleepAliases map[string]struct{}
}

const (
	timeModule    = "time"
	sleepFunction = "sleep"
)

func newSleepCalls() *sleepCalls {
	return &sleepCalls{
		timeAliases:  make(map[string]struct{}),
		sleepAliases: make(map[string]struct{}),
	}
}

func (s *sleepCalls) Name() string { return "no-sleeps" }

func (s *sleepCalls) Import(ctx *Context, n *sitter.Node, names []pyast.ImportName) {
	for _, name := range names {
		if name.Name == timeModule {
			s.timeAliases[name.Local()] = struct{}{}
		}
	}
}

func (s *sleepCalls) ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName) {
	if module != timeModule {
		return
	}
	for _, name := range names {
		if name.Name == sleepFunction {
			s.sleepAliases[name.Local()] = struct{}{}
		}
	}
}

func (s *sleepCalls) Call(ctx *Context, n *sitter.Node) {
	callee := pyast.Callee(n)
	if callee == nil {
		return
	}
	switch callee.Kind() {
	case pyast.KindAttribute:
		object, attr := pyast.AttributeParts(callee)
		if object == nil || object.Kind() != pyast.KindIdentifier {
			return
		}
		if ctx.Tree.Text(attr) != sleepFunction {
			return
		}
		if _, ok := s.timeAliases[ctx.Tree.Text(object)]; ok {
			ctx.Report("no-sleeps", n)
		}
	case pyast.KindIdentifier:
		if _, ok := s.sleepAliases[ctx.Tree.Text(callee)]; ok {
			ctx.Report("no-sleeps", n)
		}
	}
}
