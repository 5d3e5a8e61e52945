// # internal/lint/random.go
package lint

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

// randomDeprecations flags random-module call patterns whose behavior
// changed in Python 3.13: sample() and randrange() stopped coercing their
// arguments, and shuffle() lost its "random" parameter.
type randomDeprecations struct {
	enabled bool
}

func newRandomDeprecations(target Version) *randomDeprecations {
	return &randomDeprecations{enabled: target.AtLeast(3, 13)}
}

func (r *randomDeprecations) Name() string { return "no-313-random-deprecations" }

func (r *randomDeprecations) Call(ctx *Context, n *sitter.Node) {
	if !r.enabled {
		return
	}
	fullName := ctx.Resolver.Resolve(n)
	if !strings.HasPrefix(fullName, "random.") {
		return
	}

	segments := strings.Split(fullName, ".")
	switch segments[len(segments)-1] {
	case "sample":
		ctx.Report("consider-random-sample-sequence", n)
	case "randrange":
		ctx.Report("consider-random-randrange-integer-args", n)
	case "shuffle":
		r.checkShuffle(ctx, n)
	}
}

// checkShuffle fires only when the legacy randomness source is actually
// supplied, positionally or as random=.
func (r *randomDeprecations) checkShuffle(ctx *Context, n *sitter.Node) {
	if len(pyast.CallArguments(n)) > 1 {
		ctx.Report("no-random-shuffle-random-param", n)
	}
	for _, kw := range ctx.Tree.CallKeywords(n) {
		if kw.Name == "random" {
			ctx.Report("no-random-shuffle-random-param", n)
		}
	}
}
