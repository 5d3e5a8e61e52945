// # internal/pyast/infer.go
package pyast

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Constant is a folded literal value: bool, int64, float64, string, or nil
// for Python None.
type Constant struct {
	Value any
}

func (c Constant) Truthy() bool {
	switch v := c.Value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	}
	return false
}

func (c Constant) StringValue() (string, bool) {
	s, ok := c.Value.(string)
	return s, ok
}

// Env supplies name lookups for constant folding. The lint context
// implements it with the bindings it has seen so far in the pass.
type Env interface {
	LookupConstant(name string) (Constant, bool)
}

// Fold evaluates an expression to a constant on a best-effort basis. The
// second result is false whenever the value cannot be determined; folding
// never fails any harder than that.
func (t *Tree) Fold(n *sitter.Node, env Env) (Constant, bool) {
	if n == nil {
		return Constant{}, false
	}

	switch n.Kind() {
	case "true":
		return Constant{Value: true}, true
	case "false":
		return Constant{Value: false}, true
	case "none":
		return Constant{Value: nil}, true
	case "integer":
		return t.foldInteger(n)
	case "float":
		return t.foldFloat(n)
	case "string":
		return t.foldString(n)
	case "parenthesized_expression":
		return t.Fold(n.NamedChild(0), env)
	case "not_operator":
		inner, ok := t.Fold(n.ChildByFieldName("argument"), env)
		if !ok {
			return Constant{}, false
		}
		return Constant{Value: !inner.Truthy()}, true
	case "boolean_operator":
		return t.foldBoolean(n, env)
	case KindIdentifier:
		if env != nil {
			return env.LookupConstant(t.Text(n))
		}
	}
	return Constant{}, false
}

func (t *Tree) foldInteger(n *sitter.Node) (Constant, bool) {
	text := strings.ReplaceAll(t.Text(n), "_", "")
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return Constant{}, false
	}
	return Constant{Value: v}, true
}

func (t *Tree) foldFloat(n *sitter.Node) (Constant, bool) {
	text := strings.ReplaceAll(t.Text(n), "_", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Constant{}, false
	}
	return Constant{Value: v}, true
}

// foldString handles plain literals only. F-strings with interpolations and
// concatenated strings stay indeterminate.
func (t *Tree) foldString(n *sitter.Node) (Constant, bool) {
	var sb strings.Builder
	for _, child := range Children(n) {
		switch child.Kind() {
		case "string_start", "string_end":
		case "string_content", "escape_sequence":
			sb.WriteString(t.Text(child))
		default:
			return Constant{}, false
		}
	}
	return Constant{Value: sb.String()}, true
}

// foldBoolean applies Python's short-circuit semantics: "and" yields the
// left operand when falsy, "or" yields it when truthy, otherwise the right
// operand. Both sides must fold for the result to be known.
func (t *Tree) foldBoolean(n *sitter.Node, env Env) (Constant, bool) {
	left, ok := t.Fold(n.ChildByFieldName("left"), env)
	if !ok {
		return Constant{}, false
	}
	op := t.Text(n.ChildByFieldName("operator"))

	if op == "and" && !left.Truthy() {
		return left, true
	}
	if op == "or" && left.Truthy() {
		return left, true
	}
	return t.Fold(n.ChildByFieldName("right"), env)
}

// FoldsToLiteral reports whether the expression is a bare literal, without
// consulting any environment.
func (t *Tree) FoldsToLiteral(n *sitter.Node) (Constant, bool) {
	return t.Fold(n, nil)
}
