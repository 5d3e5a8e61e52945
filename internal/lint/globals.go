// # internal/lint/globals.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Literal container kinds whose module-level bindings enter the
// mutable-global set.
var mutableLiteralKinds = []string{"list", "dictionary", "set"}

// Method names that mutate their receiver in place.
var mutateMethods = []string{
	"append",
	"extend",
	"insert",
	"remove",
	"pop",
	"clear",
	"sort",
	"reverse",
	"add",
	"discard",
	"update",
	"intersection_update",
	"difference_update",
	"symmetric_difference_update",
	"__setitem__",
	"setdefault",
	"popitem",
}

// globalMutations flags updates to module-level state after its initial
// creation. Playbook modules may be re-entered across independent runs, so
// any cross-invocation leak through a mutated global is undefined behavior.
// A fresh, non-conditional creation at load time is the only safe form.
//
// The mutable-global set is one-directional: deletion and reassignment to
// an immutable value never remove a name from it within a pass.
type globalMutations struct {
	mutableGlobals map[string]struct{}
}

func newGlobalMutations() *globalMutations {
	return &globalMutations{mutableGlobals: make(map[string]struct{})}
}

func (g *globalMutations) Name() string { return "no-globals" }

func (g *globalMutations) Assign(ctx *Context, n *sitter.Node) {
	left := n.ChildByFieldName("left")
	if left == nil || left.Kind() != pyast.KindIdentifier {
		return
	}
	name := ctx.Tree.Text(left)

	if ModuleLevel(n) {
		if withinDynamicCondition(n) {
			// A module-level binding under a call-bearing condition is
			// unpredictable across runs regardless of the target's type.
			ctx.Report("no-global-updates", n, name)
			return
		}
		right := n.ChildByFieldName("right")
		if right != nil && contains(mutableLiteralKinds, right.Kind()) {
			g.mutableGlobals[name] = struct{}{}
		}
		return
	}

	if g.tracked(ctx, name) {
		ctx.Report("no-global-updates", n, name)
	}
}

func (g *globalMutations) AugAssign(ctx *Context, n *sitter.Node) {
	left := n.ChildByFieldName("left")
	if left == nil || left.Kind() != pyast.KindIdentifier {
		return
	}
	g.checkUpdate(ctx, n, ctx.Tree.Text(left))
}

func (g *globalMutations) Subscript(ctx *Context, n *sitter.Node) {
	value := n.ChildByFieldName("value")
	if value == nil || value.Kind() != pyast.KindIdentifier {
		return
	}
	if !pyast.IsWriteTarget(n) {
		return
	}
	g.checkUpdate(ctx, n, ctx.Tree.Text(value))
}

// Call catches in-place mutations dispatched through a method, e.g.
// CACHE.update(...).
func (g *globalMutations) Call(ctx *Context, n *sitter.Node) {
	callee := pyast.Callee(n)
	if callee == nil || callee.Kind() != pyast.KindAttribute {
		return
	}
	object, attr := pyast.AttributeParts(callee)
	if object == nil || object.Kind() != pyast.KindIdentifier {
		return
	}
	if !contains(mutateMethods, ctx.Tree.Text(attr)) {
		return
	}
	g.checkUpdate(ctx, callee, ctx.Tree.Text(object))
}

func (g *globalMutations) checkUpdate(ctx *Context, n *sitter.Node, name string) {
	if ModuleLevel(n) {
		if withinDynamicCondition(n) {
			ctx.Report("no-global-updates", n, name)
		}
		return
	}
	if g.tracked(ctx, name) {
		ctx.Report("no-global-updates", n, name)
	}
}

// tracked reports whether the name refers to module state reachable from
// this scope: either declared with a "global" statement in the current
// function, or bound at module level to a mutable literal.
func (g *globalMutations) tracked(ctx *Context, name string) bool {
	if ctx.GlobalDeclared(name) {
		return true
	}
	_, ok := g.mutableGlobals[name]
	return ok
}
