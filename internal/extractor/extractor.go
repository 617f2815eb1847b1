// Package extractor implements the Method Extractor: given a file and a
// method name, it returns the byte range and text of the method's first
// implemented declaration. A syntax-tree walk is the primary strategy;
// a text-only brace-matching scan covers languages or files the
// syntactic parser cannot handle.
package extractor

import (
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/ctxpack/internal/syntax"
	"github.com/standardbeagle/ctxpack/internal/types"
)

// Extract parses absPath with grammar g and returns the first
// method_declaration node whose name field equals methodName and which
// has a non-empty body. Abstract and interface declarations (no body)
// are skipped, not matched.
func Extract(g *syntax.Grammar, absPath, relPath, methodName string) types.Method {
	out := types.Method{AbsPath: absPath, RelPath: relPath}

	src, err := os.ReadFile(absPath)
	if err != nil {
		out.Reason = "failed to read file"
		return out
	}

	tree, err := syntax.Parse(g, src)
	if err != nil {
		return extractTextFallback(src, absPath, relPath, methodName)
	}
	defer tree.Close()

	method := findMethodDecl(tree, methodName)
	if method == nil {
		out.Reason = "method_declaration not found (or no body)"
		return out
	}

	a, b := method.StartByte(), method.EndByte()
	if a > b || int(b) > len(tree.Source) {
		out.Reason = "invalid node byte range"
		return out
	}

	out.Found = true
	out.Start = a
	out.End = b
	out.Text = string(tree.Source[a:b])
	out.Reason = "tree-sitter method_declaration match"
	return out
}

func findMethodDecl(tree *syntax.Tree, methodName string) *tree_sitter.Node {
	var found *tree_sitter.Node
	syntax.Walk(tree.Root(), func(n *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if syntax.IsKind(n, "method_declaration") {
			name := n.ChildByFieldName("name")
			if name != nil && tree.Text(name) == methodName && methodHasBody(n) {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// methodHasBody reports whether a method_declaration has an implemented
// body, excluding abstract and interface method signatures.
func methodHasBody(methodDecl *tree_sitter.Node) bool {
	body := methodDecl.ChildByFieldName("body")
	return body != nil
}
