// # internal/lint/libraries.go
package lint

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Libraries that are not recommended in playbooks. Each maps to its own
// diagnostic code so reports can be allow-listed per library.
var discouragedLibraries = []string{"requests", "lxml", "psycopg2"}

type discouragedImports struct{}

func newDiscouragedImports() *discouragedImports { return &discouragedImports{} }

func (d *discouragedImports) Name() string { return "not-recommended-libraries" }

func (d *discouragedImports) Import(ctx *Context, n *sitter.Node, names []pyast.ImportName) {
	seen := make(map[string]struct{})
	for _, name := range names {
		seen[name.Name] = struct{}{}
	}
	for _, library := range discouragedLibraries {
		if _, ok := seen[library]; ok {
			ctx.Report("not-recommended-libraries-"+library, n)
		}
	}
}

func (d *discouragedImports) ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName) {
	if contains(discouragedLibraries, module) {
		ctx.Report("not-recommended-libraries-"+module, n)
	}
}

// soupParserArgs flags BeautifulSoup constructions backed by the lxml
// parser. The parser comes from the "features" keyword, the second
// positional argument, or — when neither is given — the implicit default,
// which is the discouraged backend.
type soupParserArgs struct {
	bs4Aliases  map[string]struct{}
	soupAliases map[string]struct{}
}

var lxmlBackends = []string{"lxml", "lxml-xml", "xml"}

const (
	bs4Module         = "bs4"
	beautifulSoupName = "BeautifulSoup"
	parserArgKeyword  = "features"
)

func newSoupParserArgs() *soupParserArgs {
	return &soupParserArgs{
		bs4Aliases:  make(map[string]struct{}),
		soupAliases: make(map[string]struct{}),
	}
}

func (s *soupParserArgs) Name() string { return "no-lxml" }

func (s *soupParserArgs) Import(ctx *Context, n *sitter.Node, names []pyast.ImportName) {
	for _, name := range names {
		if name.Name == bs4Module {
			s.bs4Aliases[name.Local()] = struct{}{}
		}
	}
}

func (s *soupParserArgs) ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName) {
	if module != bs4Module {
		return
	}
	for _, name := range names {
		if name.Name == beautifulSoupName {
			s.soupAliases[name.Local()] = struct{}{}
		}
	}
}

func (s *soupParserArgs) Call(ctx *Context, n *sitter.Node) {
	if !s.isSoupCall(ctx, n) {
		return
	}

	for _, kw := range ctx.Tree.CallKeywords(n) {
		if strings.ToLower(kw.Name) == parserArgKeyword {
			s.checkParserValue(ctx, kw.Value)
			return
		}
	}

	args := pyast.CallArguments(n)
	if len(args) >= 2 {
		s.checkParserValue(ctx, args[1])
		return
	}

	// No parser given at all: the implicit default backend is lxml.
	ctx.Report("no-lxml", n)
}

func (s *soupParserArgs) isSoupCall(ctx *Context, n *sitter.Node) bool {
	callee := pyast.Callee(n)
	if callee == nil {
		return false
	}
	switch callee.Kind() {
	case pyast.KindAttribute:
		object, attr := pyast.AttributeParts(callee)
		if object == nil || object.Kind() != pyast.KindIdentifier {
			return false
		}
		if ctx.Tree.Text(attr) != beautifulSoupName {
			return false
		}
		_, ok := s.bs4Aliases[ctx.Tree.Text(object)]
		return ok
	case pyast.KindIdentifier:
		_, ok := s.soupAliases[ctx.Tree.Text(callee)]
		return ok
	}
	return false
}

// checkParserValue folds the argument (literal or constant-inferred) and
// matches it against the discouraged backend names. Indeterminate values
// are left alone.
func (s *soupParserArgs) checkParserValue(ctx *Context, value *sitter.Node) {
	c, ok := ctx.Infer(value)
	if !ok {
		return
	}
	text, ok := c.StringValue()
	if !ok {
		return
	}
	if contains(lxmlBackends, text) {
		ctx.Report("no-lxml", value)
	}
}
