// # internal/lint/removed.go
package lint

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Symbols removed from the standard library in Python 3.13. The checker
// only fires when analyzing under 3.9, where these still resolve. Tables
// are ordered slices so repeated passes emit diagnostics in the same order.

type symbolTable []symbolTableEntry

type symbolTableEntry struct {
	Module  string
	Members []string
}

func (t symbolTable) members(module string) []string {
	for _, e := range t {
		if e.Module == module {
			return e.Members
		}
	}
	return nil
}

var removedModules = []string{
	"distutils",
	"formatter",
	"parser",
	"binhex",
	"imp",
	"asynchat",
	"asyncore",
	"mailcap",
}

var removedClasses = symbolTable{
	{"pkgutil", []string{"ImpLoader", "ImpImporter"}},
	{"importlib.abc", []string{"Finder"}},
	{"asyncio.coroutines", []string{"CoroWrapper"}},
	{"configparser", []string{"SafeConfigParser", "LegacyInterpolation"}},
}

var removedMethods = symbolTable{
	{"importlib.util", []string{"set_package", "module_for_loader", "set_loader"}},
	{"re", []string{"template"}},
	{"configparser.RawConfigParser", []string{"readfp"}},
	{"pathlib.PurePath", []string{"__class_getitem__"}},
	{"pathlib.Path", []string{"link_to"}},
	{"ssl", []string{"RAND_pseudo_bytes", "RAND_egd", "wrap_socket", "match_hostname"}},
}

var removedAttributes = symbolTable{
	{"re", []string{"TEMPLATE", "T"}},
	{"typing", []string{"io", "re"}},
	{"configparser.ParsingError", []string{"filename"}},
}

var removedDecorators = symbolTable{
	{"asyncio", []string{"coroutine"}},
}

type removedAPIs struct {
	enabled bool
}

func newRemovedAPIs(target Version) *removedAPIs {
	return &removedAPIs{enabled: target.Is(3, 9)}
}

func (r *removedAPIs) Name() string { return "no-313-removals-on-39" }

func (r *removedAPIs) Import(ctx *Context, n *sitter.Node, names []pyast.ImportName) {
	if !r.enabled {
		return
	}
	for _, name := range names {
		if contains(removedModules, name.Name) {
			ctx.Report("no-313-removed-module", n, name.Name)
		}
	}
}

func (r *removedAPIs) ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName) {
	if !r.enabled {
		return
	}
	if contains(removedModules, module) {
		ctx.Report("no-313-removed-module", n, module)
	}

	for _, name := range names {
		fullName := module + "." + name.Name
		if contains(removedModules, fullName) {
			ctx.Report("no-313-removed-module", n, fullName)
		}
		if contains(removedAttributes.members(module), name.Name) {
			ctx.Report("no-313-removed-attribute", n, name.Name, module)
		}
		if contains(removedMethods.members(module), name.Name) {
			ctx.Report("no-313-removed-method", n, name.Name, module)
		}
		if contains(removedClasses.members(module), name.Name) {
			ctx.Report("no-313-removed-class", n, name.Name, module)
		}
	}
}

func (r *removedAPIs) Call(ctx *Context, n *sitter.Node) {
	if !r.enabled {
		return
	}
	r.checkTable(ctx, n, removedMethods, "no-313-removed-method")
	r.checkTable(ctx, n, removedClasses, "no-313-removed-class")
}

func (r *removedAPIs) Attribute(ctx *Context, n *sitter.Node) {
	if !r.enabled {
		return
	}
	r.checkTable(ctx, n, removedAttributes, "no-313-removed-attribute")
}

func (r *removedAPIs) ClassDef(ctx *Context, n *sitter.Node) {
	if !r.enabled {
		return
	}
	for _, base := range pyast.ClassBases(n) {
		r.checkTable(ctx, base, removedClasses, "no-313-removed-class")
	}
}

func (r *removedAPIs) FunctionDef(ctx *Context, n *sitter.Node) {
	if !r.enabled {
		return
	}
	for _, dec := range pyast.Decorators(n) {
		r.checkTable(ctx, dec, removedDecorators, "no-313-removed-decorator")
	}
}

// checkTable resolves the node's dotted path and tests its last segment
// against each table entry whose module prefixes the path.
func (r *removedAPIs) checkTable(ctx *Context, n *sitter.Node, table symbolTable, code string) {
	fullName := ctx.Resolver.Resolve(n)
	if fullName == "" {
		return
	}
	segments := strings.Split(fullName, ".")
	lastSegment := segments[len(segments)-1]

	for _, entry := range table {
		if strings.HasPrefix(fullName, entry.Module) && contains(entry.Members, lastSegment) {
			ctx.Report(code, n, lastSegment, entry.Module)
		}
	}
}

func contains(members []string, name string) bool {
	for _, m := range members {
		if m == name {
			return true
		}
	}
	return false
}
