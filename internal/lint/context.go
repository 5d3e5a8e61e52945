// # internal/lint/context.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Context carries the shared state of one analysis pass over one file: the
// alias table, the constant environment, the active-global set, and the
// diagnostic sink. It is never shared across passes; concurrent analysis of
// multiple files takes one engine (and so one context) each.
type Context struct {
	Tree     *pyast.Tree
	Resolver *Resolver

	constants      map[string]constBinding
	currentGlobals map[string]struct{}
	diags          []Diagnostic
}

type constBinding struct {
	value pyast.Constant
	known bool
}

func newContext(tree *pyast.Tree) *Context {
	return &Context{
		Tree:     tree,
		Resolver: NewResolver(tree),

		constants:      make(map[string]constBinding),
		currentGlobals: make(map[string]struct{}),
	}
}

// Report appends a diagnostic at the node's location. Diagnostics are data,
// not errors; the sink applies no severity policy and no deduplication.
func (c *Context) Report(code string, n *sitter.Node, args ...string) {
	c.diags = append(c.diags, Diagnostic{
		Code:     code,
		Location: c.Tree.Location(n),
		Args:     args,
	})
}

func (c *Context) Diagnostics() []Diagnostic {
	return c.diags
}

// Infer folds an expression to a constant, consulting the bindings recorded
// so far in the pass. Indeterminate expressions yield ok=false, never an
// error.
func (c *Context) Infer(n *sitter.Node) (pyast.Constant, bool) {
	return c.Tree.Fold(n, c)
}

// LookupConstant implements pyast.Env.
func (c *Context) LookupConstant(name string) (pyast.Constant, bool) {
	b, ok := c.constants[name]
	if !ok || !b.known {
		return pyast.Constant{}, false
	}
	return b.value, true
}

// recordConstant tracks name bindings for the inference environment. A
// binding to a non-foldable expression marks the name indeterminate; last
// write wins, matching the alias table's flat-scope simplification.
func (c *Context) recordConstant(assign *sitter.Node) {
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != pyast.KindIdentifier {
		return
	}
	name := c.Tree.Text(left)
	value, ok := c.Tree.Fold(right, c)
	c.constants[name] = constBinding{value: value, known: ok}
}

// DeclareGlobals records the names of a "global" statement for the
// remainder of the enclosing function body.
func (c *Context) DeclareGlobals(names []string) {
	for _, name := range names {
		c.currentGlobals[name] = struct{}{}
	}
}

// GlobalDeclared reports whether a name was re-bound to module scope in the
// current function body.
func (c *Context) GlobalDeclared(name string) bool {
	_, ok := c.currentGlobals[name]
	return ok
}

// enterFunction resets the active-global set. Entry into any function body
// clears it; there is no restore on exit, matching the single-pass
// last-write-wins model.
func (c *Context) enterFunction() {
	c.currentGlobals = make(map[string]struct{})
}
