// # internal/lint/resolver.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Resolver maintains the per-file alias table mapping local names to the
// canonical dotted path they originate from. A single flat table covers the
// whole file: bindings are overwritten on reassignment and there is no
// per-scope shadowing, which the checkers rely on.
type Resolver struct {
	tree    *pyast.Tree
	aliases map[string]string
}

func NewResolver(tree *pyast.Tree) *Resolver {
	return &Resolver{
		tree:    tree,
		aliases: make(map[string]string),
	}
}

// RecordImport registers "import a.b as c" style bindings.
func (r *Resolver) RecordImport(names []pyast.ImportName) {
	for _, name := range names {
		r.aliases[name.Local()] = name.Name
	}
}

// RecordFromImport registers "from a.b import c as d" style bindings,
// pointing the local name at module.member.
func (r *Resolver) RecordFromImport(module string, names []pyast.ImportName) {
	for _, name := range names {
		if name.Name == "*" {
			continue
		}
		r.aliases[name.Local()] = module + "." + name.Name
	}
}

// RecordAssign chains assignments through the alias table, so that
// x = a.b.Thing() makes x resolve to a.b.Thing. An unresolvable right-hand
// side binds the target to its own name rather than poisoning it.
func (r *Resolver) RecordAssign(assign *sitter.Node) {
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil {
		return
	}

	value := r.Resolve(right)
	switch left.Kind() {
	case pyast.KindIdentifier:
		name := r.tree.Text(left)
		if value != "" {
			r.aliases[name] = value
		} else {
			r.aliases[name] = name
		}
	case pyast.KindAttribute:
		r.aliases[r.tree.Text(left)] = value
	}
}

// Resolve maps an expression to its canonical dotted path, or "" when the
// expression cannot be resolved. It never fails harder than that.
func (r *Resolver) Resolve(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case pyast.KindIdentifier:
		name := r.tree.Text(n)
		if full, ok := r.aliases[name]; ok {
			return full
		}
		return name
	case pyast.KindAttribute:
		object, attr := pyast.AttributeParts(n)
		base := r.Resolve(object)
		if base == "" {
			return r.tree.Text(attr)
		}
		return base + "." + r.tree.Text(attr)
	case pyast.KindCall:
		// Foo().bar resolves through the constructor call to Foo.bar.
		return r.Resolve(pyast.Callee(n))
	}
	return ""
}

// Lookup returns the alias binding for a bare name, if any.
func (r *Resolver) Lookup(name string) (string, bool) {
	full, ok := r.aliases[name]
	return full, ok
}
