// Package syntax wraps go-tree-sitter with ctxpack's grammar registry: one
// Grammar per supported language, each able to produce a fresh parser. The
// Method Extractor, Enclosing-Scope Resolver, and Callee Harvester are
// written against this one collaborator; the node kinds they match
// (method_declaration, method_invocation, ...) are Java's and are written
// into those components, not carried by the Grammar.
package syntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
)

// Grammar names one language's tree-sitter binding and its file extensions.
type Grammar struct {
	Name       string
	Extensions []string

	languagePtr func() *tree_sitter.Language
}

// NewParser constructs a fresh parser for this grammar. Callers must Close
// it; per spec.md §5, no parser outlives a single operation.
func (g *Grammar) NewParser() (*tree_sitter.Parser, error) {
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(g.languagePtr()); err != nil {
		p.Close()
		return nil, fmt.Errorf("syntax: set language %s: %w", g.Name, err)
	}
	return p, nil
}

var registry = map[string]*Grammar{}

func register(name string, exts []string, lang func() *tree_sitter.Language) {
	registry[name] = &Grammar{Name: name, Extensions: exts, languagePtr: lang}
}

func init() {
	register("java", []string{".java"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_java.Language())
	})
	register("go", []string{".go"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_go.Language())
	})
	register("python", []string{".py"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_python.Language())
	})
	register("javascript", []string{".js", ".jsx"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	})
	register("typescript", []string{".ts", ".tsx"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	})
	register("rust", []string{".rs"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_rust.Language())
	})
	register("php", []string{".php", ".phtml"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	})
	register("csharp", []string{".cs"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language())
	})
	register("cpp", []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	})
	register("zig", []string{".zig"}, func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_zig.Language())
	})
}

// DefaultLanguage is the reference grammar the core falls back to when a
// request does not specify one.
const DefaultLanguage = "java"

// Get returns the registered grammar for name, or false if unregistered.
func Get(name string) (*Grammar, bool) {
	g, ok := registry[name]
	return g, ok
}

// MustGet returns the named grammar, falling back to DefaultLanguage.
func MustGet(name string) *Grammar {
	if g, ok := Get(name); ok {
		return g
	}
	g, _ := Get(DefaultLanguage)
	return g
}

// Tree pairs a parsed tree-sitter tree with the exact byte buffer it was
// parsed from, so callers can slice node text without re-reading the file.
type Tree struct {
	inner  *tree_sitter.Tree
	Source []byte
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.inner != nil {
		t.inner.Close()
	}
}

// Root returns the tree's root node.
func (t *Tree) Root() *tree_sitter.Node {
	root := t.inner.RootNode()
	return &root
}

// Text returns the exact source slice spanned by n.
func (t *Tree) Text(n *tree_sitter.Node) string {
	a, b := n.StartByte(), n.EndByte()
	if a > b || int(b) > len(t.Source) {
		return ""
	}
	return string(t.Source[a:b])
}

// Parse parses source with grammar g. The tree-sitter C library mutates the
// buffer it's handed, so Parse takes its own defensive copy.
func Parse(g *Grammar, source []byte) (*Tree, error) {
	p, err := g.NewParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()

	buf := make([]byte, len(source))
	copy(buf, source)

	tree := p.Parse(buf, nil)
	if tree == nil {
		return nil, fmt.Errorf("syntax: %s parser returned no tree", g.Name)
	}

	return &Tree{inner: tree, Source: buf}, nil
}

// Walk performs a depth-first, pre-order traversal of n's subtree (n
// included), invoking visit on every node. Traversal stops early if visit
// returns false.
func Walk(n *tree_sitter.Node, visit func(*tree_sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child != nil {
			Walk(child, visit)
		}
	}
}

// DescendantForByteRange returns the smallest node in root's subtree whose
// byte range contains [start, end]. It mirrors tree-sitter's native
// ts_node_descendant_for_byte_range without relying on the binding
// exposing that call directly: it recursively descends into whichever
// child's range contains the target range, stopping when no child does.
func DescendantForByteRange(root *tree_sitter.Node, start, end uint) *tree_sitter.Node {
	cur := root
	for {
		count := cur.ChildCount()
		var next *tree_sitter.Node
		for i := uint(0); i < count; i++ {
			child := cur.Child(i)
			if child == nil {
				continue
			}
			if child.StartByte() <= start && end <= child.EndByte() {
				next = child
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// IsKind reports whether n's type label equals kind.
func IsKind(n *tree_sitter.Node, kind string) bool {
	return n != nil && n.Kind() == kind
}
