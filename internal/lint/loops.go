// # internal/lint/loops.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// infiniteLoops flags while loops whose test folds to a definite truthy
// constant and whose body can neither break nor return. Indeterminate
// tests produce no diagnostic: the rule prefers false negatives over false
// positives. For loops are out of scope.
type infiniteLoops struct{}

func newInfiniteLoops() *infiniteLoops { return &infiniteLoops{} }

func (l *infiniteLoops) Name() string { return "no-infinite-loops" }

func (l *infiniteLoops) While(ctx *Context, n *sitter.Node) {
	condition := n.ChildByFieldName("condition")
	value, ok := ctx.Infer(condition)
	if !ok || !value.Truthy() {
		return
	}
	if hasReturn(n) || hasBreak(n) {
		return
	}
	ctx.Report("no-infinite-loops", n)
}

// hasReturn searches the whole subtree.
func hasReturn(n *sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == pyast.KindReturn {
			return true
		}
		if hasReturn(child) {
			return true
		}
	}
	return false
}

// hasBreak searches the subtree but does not descend into nested loops: a
// break inside an inner loop does not exit this one.
func hasBreak(n *sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case pyast.KindBreak:
			return true
		case pyast.KindWhile, pyast.KindFor:
			continue
		}
		if hasBreak(child) {
			return true
		}
	}
	return false
}
