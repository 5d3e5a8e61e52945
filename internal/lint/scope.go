// # internal/lint/scope.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// ModuleLevel reports whether a node sits at module scope. It walks the
// parent chain until it hits the file root (module level) or a class or
// function boundary (nested). Conditionals, loops, and try blocks do not
// change the classification.
func ModuleLevel(n *sitter.Node) bool {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case pyast.KindModule:
			return true
		case pyast.KindClassDef, pyast.KindFunctionDef:
			return false
		}
	}
	return true
}

// withinDynamicCondition reports whether the node is nested under an if,
// elif, or while whose test expression contains a function call anywhere
// in its subtree, i.e. a condition that is not statically predictable.
func withinDynamicCondition(n *sitter.Node) bool {
	for current := n; current != nil; current = current.Parent() {
		switch current.Kind() {
		case pyast.KindIf, pyast.KindElif, pyast.KindWhile:
			if pyast.ContainsCall(current.ChildByFieldName("condition")) {
				return true
			}
		}
	}
	return false
}
