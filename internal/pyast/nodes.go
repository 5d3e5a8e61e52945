// # internal/pyast/nodes.go
package pyast

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node kinds from the tree-sitter Python grammar that the lint engine
// dispatches on.
const (
	KindModule        = "module"
	KindImport        = "import_statement"
	KindImportFrom    = "import_from_statement"
	KindCall          = "call"
	KindAttribute     = "attribute"
	KindIdentifier    = "identifier"
	KindAssignment    = "assignment"
	KindAugAssignment = "augmented_assignment"
	KindSubscript     = "subscript"
	KindGlobal        = "global_statement"
	KindClassDef      = "class_definition"
	KindFunctionDef   = "function_definition"
	KindDecoratedDef  = "decorated_definition"
	KindDecorator     = "decorator"
	KindWhile         = "while_statement"
	KindFor           = "for_statement"
	KindIf            = "if_statement"
	KindElif          = "elif_clause"
	KindBreak         = "break_statement"
	KindReturn        = "return_statement"
)

// ImportName is one imported module or member, with its optional alias.
type ImportName struct {
	Name  string
	Alias string
	Node  *sitter.Node
}

func (i ImportName) Local() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Name
}

func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// ImportNames extracts the imported names from an import_statement:
// "import a.b, c as d" yields {a.b, ""} and {c, d}.
func (t *Tree) ImportNames(n *sitter.Node) []ImportName {
	var names []ImportName
	for _, child := range Children(n) {
		switch child.Kind() {
		case "dotted_name", "identifier":
			names = append(names, ImportName{Name: t.Text(child), Node: child})
		case "aliased_import":
			names = append(names, t.aliasedImport(child))
		}
	}
	return names
}

// FromImport extracts the source module and imported members from an
// import_from_statement. A wildcard import yields a single "*" member.
// Relative imports keep their leading dots in the module text.
func (t *Tree) FromImport(n *sitter.Node) (string, []ImportName) {
	module := t.Text(n.ChildByFieldName("module_name"))

	var names []ImportName
	sawImport := false
	for _, child := range Children(n) {
		if child.Kind() == "import" {
			sawImport = true
			continue
		}
		if !sawImport {
			continue
		}
		switch child.Kind() {
		case "dotted_name", "identifier":
			names = append(names, ImportName{Name: t.Text(child), Node: child})
		case "aliased_import":
			names = append(names, t.aliasedImport(child))
		case "wildcard_import":
			names = append(names, ImportName{Name: "*", Node: child})
		}
	}
	return module, names
}

func (t *Tree) aliasedImport(n *sitter.Node) ImportName {
	return ImportName{
		Name:  t.Text(n.ChildByFieldName("name")),
		Alias: t.Text(n.ChildByFieldName("alias")),
		Node:  n,
	}
}

// Callee returns the function expression of a call node.
func Callee(call *sitter.Node) *sitter.Node {
	return call.ChildByFieldName("function")
}

// CallArguments returns the positional arguments of a call, in order,
// excluding keyword arguments.
func CallArguments(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		switch child.Kind() {
		case "keyword_argument", "comment":
		default:
			out = append(out, child)
		}
	}
	return out
}

// Keyword is one name=value argument of a call.
type Keyword struct {
	Name  string
	Value *sitter.Node
}

func (t *Tree) CallKeywords(call *sitter.Node) []Keyword {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var out []Keyword
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child.Kind() != "keyword_argument" {
			continue
		}
		out = append(out, Keyword{
			Name:  t.Text(child.ChildByFieldName("name")),
			Value: child.ChildByFieldName("value"),
		})
	}
	return out
}

// AttributeParts splits an attribute node into its base expression and
// member name node.
func AttributeParts(attr *sitter.Node) (*sitter.Node, *sitter.Node) {
	return attr.ChildByFieldName("object"), attr.ChildByFieldName("attribute")
}

// Decorators returns the decorator expressions applied to a function or
// class definition, or nil when the definition is not decorated. The
// grammar wraps decorated definitions in a decorated_definition parent.
func Decorators(def *sitter.Node) []*sitter.Node {
	parent := def.Parent()
	if parent == nil || parent.Kind() != KindDecoratedDef {
		return nil
	}
	var out []*sitter.Node
	for _, child := range Children(parent) {
		if child.Kind() == KindDecorator {
			// The decorator expression follows the "@" token.
			if expr := child.NamedChild(0); expr != nil {
				out = append(out, expr)
			}
		}
	}
	return out
}

// ClassBodyDefinitions returns the function definitions directly inside a
// class body, looking through decorated_definition wrappers.
func ClassBodyDefinitions(classDef *sitter.Node) []*sitter.Node {
	body := classDef.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var out []*sitter.Node
	for _, child := range Children(body) {
		switch child.Kind() {
		case KindFunctionDef:
			out = append(out, child)
		case KindDecoratedDef:
			if def := child.ChildByFieldName("definition"); def != nil && def.Kind() == KindFunctionDef {
				out = append(out, def)
			}
		}
	}
	return out
}

// ClassBases returns the base-class expressions of a class definition.
func ClassBases(classDef *sitter.Node) []*sitter.Node {
	supers := classDef.ChildByFieldName("superclasses")
	if supers == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < supers.NamedChildCount(); i++ {
		child := supers.NamedChild(i)
		if child.Kind() == "keyword_argument" || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// IsWriteTarget reports whether n is (part of) the assignment target of an
// enclosing assignment or augmented assignment, i.e. a store context.
func IsWriteTarget(n *sitter.Node) bool {
	current := n
	for {
		parent := current.Parent()
		if parent == nil {
			return false
		}
		switch parent.Kind() {
		case KindAssignment, KindAugAssignment:
			left := parent.ChildByFieldName("left")
			return left != nil && left.Id() == current.Id()
		case "pattern_list", "tuple_pattern":
			current = parent
		default:
			return false
		}
	}
}

// ContainsCall reports whether any call node appears in the subtree
// rooted at n.
func ContainsCall(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	if n.Kind() == KindCall {
		return true
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if ContainsCall(n.Child(i)) {
			return true
		}
	}
	return false
}
