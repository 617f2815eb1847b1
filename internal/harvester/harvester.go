// Package harvester implements the Callee Harvester: given a file and a
// byte range identifying a method or constructor body, it returns the
// de-duplicated, noise-filtered, alphabetically sorted list of names the
// body calls.
package harvester

import (
	"os"
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/ctxpack/internal/syntax"
	"github.com/standardbeagle/ctxpack/internal/types"
)

// Harvest parses absPath with grammar g, climbs from nodeStart to the
// enclosing method_declaration or constructor_declaration, and collects
// every method_invocation's callee name within it.
func Harvest(g *syntax.Grammar, absPath string, nodeStart, nodeEnd uint) []string {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil
	}
	if int(nodeStart) >= len(src) || int(nodeEnd) > len(src) || nodeStart >= nodeEnd {
		return nil
	}

	tree, err := syntax.Parse(g, src)
	if err != nil {
		return nil
	}
	defer tree.Close()

	leaf := syntax.DescendantForByteRange(tree.Root(), nodeStart, nodeStart)
	if leaf == nil {
		return nil
	}

	enclosing := climbToCallable(leaf)
	if enclosing == nil {
		return nil
	}

	seen := make(map[string]bool, 32)
	var out []string

	syntax.Walk(enclosing, func(n *tree_sitter.Node) bool {
		if !syntax.IsKind(n, "method_invocation") {
			return true
		}
		name := invocationName(tree, n)
		if name == "" || types.NoiseMethods[name] || len(name) < 2 {
			return true
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		return true
	})

	sort.Strings(out)
	return out
}

func climbToCallable(n *tree_sitter.Node) *tree_sitter.Node {
	cur := n
	for cur != nil {
		if syntax.IsKind(cur, "method_declaration") || syntax.IsKind(cur, "constructor_declaration") {
			return cur
		}
		cur = cur.Parent()
	}
	return nil
}

// invocationName extracts a method_invocation's callee name: the "name"
// field for a bare call, the "member" field for a qualified call
// (a.b.m(...)), or the first identifier among named children as a
// last resort.
func invocationName(tree *syntax.Tree, n *tree_sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return tree.Text(name)
	}
	if member := n.ChildByFieldName("member"); member != nil {
		return tree.Text(member)
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == "identifier" {
			return tree.Text(c)
		}
	}
	return ""
}
