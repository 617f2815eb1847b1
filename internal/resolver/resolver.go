// Package resolver implements the Enclosing-Scope Resolver: given a file
// and a byte offset, it finds the smallest syntax-tree node spanning
// that offset and climbs to the nearest preferred declaration ancestor.
package resolver

import (
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/ctxpack/internal/syntax"
	"github.com/standardbeagle/ctxpack/internal/types"
)

// Resolve parses absPath with grammar g and returns the smallest
// preferred enclosing declaration containing byteOffset. If no ancestor
// is a preferred type, it returns the whole file as the root node.
func Resolve(g *syntax.Grammar, absPath, relPath string, byteOffset uint) types.HitSnippet {
	out := types.HitSnippet{AbsPath: absPath, RelPath: relPath}

	src, err := os.ReadFile(absPath)
	if err != nil {
		out.Reason = "failed to read file"
		return out
	}

	if int(byteOffset) >= len(src) {
		out.Reason = "hit_byte_offset out of range"
		return out
	}

	tree, err := syntax.Parse(g, src)
	if err != nil {
		out.Reason = err.Error()
		return out
	}
	defer tree.Close()

	root := tree.Root()
	leaf := syntax.DescendantForByteRange(root, byteOffset, byteOffset)
	if leaf == nil {
		out.Reason = "descendant_for_byte_range returned null"
		return out
	}

	best := climbToPreferred(leaf)
	if best == nil {
		best = root
	}

	a, b := best.StartByte(), best.EndByte()
	if a > b || int(b) > len(tree.Source) {
		out.Reason = "invalid node byte range"
		return out
	}

	out.Found = true
	out.Kind = best.Kind()
	out.Start = a
	out.End = b
	out.Text = string(tree.Source[a:b])
	out.Reason = "tree-sitter enclosing node"
	return out
}

func climbToPreferred(n *tree_sitter.Node) *tree_sitter.Node {
	cur := n
	for cur != nil {
		if types.PreferredTypes[cur.Kind()] {
			return cur
		}
		cur = cur.Parent()
	}
	return nil
}
