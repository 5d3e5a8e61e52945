// # internal/pyast/parser.go
package pyast

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Tree is one parsed Python source file. All node accessors that need source
// text hang off the tree so checkers never touch raw bytes directly.
type Tree struct {
	Path   string
	Source []byte

	tree *sitter.Tree
	root *sitter.Node
}

type Location struct {
	File   string
	Line   int
	Column int
}

var pythonLanguage = sitter.NewLanguage(tree_sitter_python.Language())

func Parse(path string, content []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}

	return &Tree{
		Path:   path,
		Source: content,
		tree:   tree,
		root:   tree.RootNode(),
	}, nil
}

func (t *Tree) Root() *sitter.Node {
	return t.root
}

func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(t.Source[n.StartByte():n.EndByte()])
}

func (t *Tree) Location(n *sitter.Node) Location {
	return Location{
		File:   t.Path,
		Line:   int(n.StartPosition().Row) + 1,
		Column: int(n.StartPosition().Column) + 1,
	}
}
