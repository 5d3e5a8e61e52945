// # internal/lint/engine.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Checker is the base capability every rule implements. Rules additionally
// implement any of the per-node-kind interfaces below; the engine partitions
// them once at construction and holds no rule-specific knowledge.
type Checker interface {
	Name() string
}

type ImportChecker interface {
	Checker
	Import(ctx *Context, n *sitter.Node, names []pyast.ImportName)
}

type ImportFromChecker interface {
	Checker
	ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName)
}

type CallChecker interface {
	Checker
	Call(ctx *Context, n *sitter.Node)
}

type AttributeChecker interface {
	Checker
	Attribute(ctx *Context, n *sitter.Node)
}

type AssignChecker interface {
	Checker
	Assign(ctx *Context, n *sitter.Node)
}

type AugAssignChecker interface {
	Checker
	AugAssign(ctx *Context, n *sitter.Node)
}

type SubscriptChecker interface {
	Checker
	Subscript(ctx *Context, n *sitter.Node)
}

type ClassDefChecker interface {
	Checker
	ClassDef(ctx *Context, n *sitter.Node)
}

type FunctionDefChecker interface {
	Checker
	FunctionDef(ctx *Context, n *sitter.Node)
}

type WhileChecker interface {
	Checker
	While(ctx *Context, n *sitter.Node)
}

// Engine runs one analysis pass over one file: a single pre-order walk
// that dispatches each node to every registered rule interested in its
// kind. An engine instance is single-use and confined to one goroutine;
// analyze files concurrently with one engine each.
type Engine struct {
	ctx *Context

	imports      []ImportChecker
	fromImports  []ImportFromChecker
	calls        []CallChecker
	attributes   []AttributeChecker
	assigns      []AssignChecker
	augAssigns   []AugAssignChecker
	subscripts   []SubscriptChecker
	classDefs    []ClassDefChecker
	functionDefs []FunctionDefChecker
	whiles       []WhileChecker
}

// Options configure an engine. The caller supplies them; the engine never
// reads the environment or files directly.
type Options struct {
	Target Version
}

// NewEngine builds an engine with the default rule set for one file.
func NewEngine(tree *pyast.Tree, opts Options) *Engine {
	return NewEngineWithCheckers(tree, DefaultCheckers(opts.Target))
}

// NewEngineWithCheckers builds an engine with an explicit rule set,
// partitioning the rules by the node-kind capabilities they implement.
func NewEngineWithCheckers(tree *pyast.Tree, checkers []Checker) *Engine {
	e := &Engine{ctx: newContext(tree)}
	for _, c := range checkers {
		if v, ok := c.(ImportChecker); ok {
			e.imports = append(e.imports, v)
		}
		if v, ok := c.(ImportFromChecker); ok {
			e.fromImports = append(e.fromImports, v)
		}
		if v, ok := c.(CallChecker); ok {
			e.calls = append(e.calls, v)
		}
		if v, ok := c.(AttributeChecker); ok {
			e.attributes = append(e.attributes, v)
		}
		if v, ok := c.(AssignChecker); ok {
			e.assigns = append(e.assigns, v)
		}
		if v, ok := c.(AugAssignChecker); ok {
			e.augAssigns = append(e.augAssigns, v)
		}
		if v, ok := c.(SubscriptChecker); ok {
			e.subscripts = append(e.subscripts, v)
		}
		if v, ok := c.(ClassDefChecker); ok {
			e.classDefs = append(e.classDefs, v)
		}
		if v, ok := c.(FunctionDefChecker); ok {
			e.functionDefs = append(e.functionDefs, v)
		}
		if v, ok := c.(WhileChecker); ok {
			e.whiles = append(e.whiles, v)
		}
	}
	return e
}

// DefaultCheckers is the full rule set, gated for the given target version.
func DefaultCheckers(target Version) []Checker {
	return []Checker{
		newRemovedAPIs(target),
		newRandomDeprecations(target),
		newChainedClassmethod(target),
		newGlobalMutations(),
		newInfiniteLoops(),
		newModuleScopeAPIs(),
		newBannedCalls("avoid-filesystem-access", "no-filesystem-access", filesystemTable),
		newBannedCalls("avoid-shell-access", "no-shell-access", shellTable),
		newDiscouragedImports(),
		newSoupParserArgs(),
		newSleepCalls(),
	}
}

// Run performs the pass and returns the ordered diagnostic sequence.
func (e *Engine) Run() []Diagnostic {
	e.walk(e.ctx.Tree.Root())
	return e.ctx.Diagnostics()
}

// walk visits pre-order: shared context updates first (alias table,
// constants, scope sets), then rule dispatch, then children.
func (e *Engine) walk(n *sitter.Node) {
	ctx := e.ctx

	switch n.Kind() {
	case pyast.KindImport:
		names := ctx.Tree.ImportNames(n)
		ctx.Resolver.RecordImport(names)
		for _, c := range e.imports {
			c.Import(ctx, n, names)
		}

	case pyast.KindImportFrom:
		module, names := ctx.Tree.FromImport(n)
		ctx.Resolver.RecordFromImport(module, names)
		for _, c := range e.fromImports {
			c.ImportFrom(ctx, n, module, names)
		}

	case pyast.KindCall:
		for _, c := range e.calls {
			c.Call(ctx, n)
		}

	case pyast.KindAttribute:
		for _, c := range e.attributes {
			c.Attribute(ctx, n)
		}

	case pyast.KindAssignment:
		ctx.Resolver.RecordAssign(n)
		ctx.recordConstant(n)
		for _, c := range e.assigns {
			c.Assign(ctx, n)
		}

	case pyast.KindAugAssignment:
		for _, c := range e.augAssigns {
			c.AugAssign(ctx, n)
		}

	case pyast.KindSubscript:
		for _, c := range e.subscripts {
			c.Subscript(ctx, n)
		}

	case pyast.KindGlobal:
		var names []string
		for _, child := range pyast.Children(n) {
			if child.Kind() == pyast.KindIdentifier {
				names = append(names, ctx.Tree.Text(child))
			}
		}
		ctx.DeclareGlobals(names)

	case pyast.KindClassDef:
		for _, c := range e.classDefs {
			c.ClassDef(ctx, n)
		}

	case pyast.KindFunctionDef:
		ctx.enterFunction()
		for _, c := range e.functionDefs {
			c.FunctionDef(ctx, n)
		}

	case pyast.KindWhile:
		for _, c := range e.whiles {
			c.While(ctx, n)
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		e.walk(n.Child(i))
	}
}
