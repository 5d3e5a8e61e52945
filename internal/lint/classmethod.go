// # internal/lint/classmethod.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// Descriptor decorators that no longer compose with @classmethod on
// Python 3.13.
var descriptorNames = []string{"property", "staticmethod", "cached_property", "abstractmethod"}

// chainedClassmethod flags class methods that stack @classmethod with
// another descriptor decorator. Only enabled from 3.13 on, where the
// __wrapped__ alternative exists.
type chainedClassmethod struct {
	enabled bool
}

func newChainedClassmethod(target Version) *chainedClassmethod {
	return &chainedClassmethod{enabled: target.AtLeast(3, 13)}
}

func (c *chainedClassmethod) Name() string { return "no-chained-classmethod-after-313" }

func (c *chainedClassmethod) ClassDef(ctx *Context, n *sitter.Node) {
	if !c.enabled {
		return
	}
	for _, def := range pyast.ClassBodyDefinitions(n) {
		c.checkDecorators(ctx, def)
	}
}

func (c *chainedClassmethod) checkDecorators(ctx *Context, def *sitter.Node) {
	decorators := pyast.Decorators(def)
	if len(decorators) < 2 {
		return
	}

	hasClassmethod := false
	for _, dec := range decorators {
		if ctx.Tree.Text(dec) == "classmethod" {
			hasClassmethod = true
			break
		}
	}
	if !hasClassmethod {
		return
	}

	// One diagnostic per chained descriptor, at the decorator itself.
	for _, dec := range decorators {
		text := ctx.Tree.Text(dec)
		if contains(descriptorNames, text) {
			ctx.Report("no-chained-classmethod", dec, text)
		}
	}
}
