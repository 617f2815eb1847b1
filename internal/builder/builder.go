// Package builder implements the Context Builder: it orchestrates the
// Locator, Extractor, Harvester, Search Driver, and Scope Resolver under
// hop/snippet/byte budgets to produce a ranked context pack.
package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/ctxpack/internal/extractor"
	"github.com/standardbeagle/ctxpack/internal/harvester"
	"github.com/standardbeagle/ctxpack/internal/locator"
	"github.com/standardbeagle/ctxpack/internal/resolver"
	"github.com/standardbeagle/ctxpack/internal/searchdriver"
	"github.com/standardbeagle/ctxpack/internal/syntax"
	"github.com/standardbeagle/ctxpack/internal/types"
)

// pending is one callable frontier entry awaiting callee harvest.
type pending struct {
	relPath, absPath, kind string
	start, end             uint
}

// Build runs the full Context Builder algorithm against the given file
// inventory. It degrades liberally: an unresolved anchor class or method
// yields an empty pack rather than an error, and Search Driver failures
// for one symbol are skipped rather than aborting the run.
func Build(ctx context.Context, g *syntax.Grammar, files []types.FileEntry, req types.ContextRequest, opt types.ContextOptions) types.ContextPack {
	var pack types.ContextPack

	loc := locator.Locate(req.AnchorClass, files)
	if !loc.Found {
		return pack
	}

	anchor := extractor.Extract(g, loc.AbsPath, loc.RelPath, req.AnchorMethod)
	if !anchor.Found {
		return pack
	}

	if opt.IncludeAnchorInSnippets {
		s := types.ContextSnippet{
			RelPath: loc.RelPath,
			AbsPath: loc.AbsPath,
			Kind:    "method_declaration",
			Start:   anchor.Start,
			End:     anchor.End,
			Score:   1000,
			Hop:     0,
			Symbol:  types.AnchorSymbol,
			Text:    anchor.Text,
		}
		pack.Snippets = append(pack.Snippets, s)
		pack.Stats.SnippetsWritten++
		pack.Stats.BytesWritten += len(anchor.Text)
	}

	frontier := []pending{{relPath: loc.RelPath, absPath: loc.AbsPath, kind: "method_declaration", start: anchor.Start, end: anchor.End}}

	seenSnips := map[uint64]bool{}
	seenSymbols := map[uint64]bool{}

	budgetExhausted := func() bool {
		return pack.Stats.SnippetsWritten >= opt.MaxSnippets || pack.Stats.BytesWritten >= opt.MaxBytes
	}

	for hop := 0; hop < opt.MaxHops; hop++ {
		if budgetExhausted() {
			break
		}

		var nextFrontier []pending

		for _, p := range frontier {
			if budgetExhausted() {
				break
			}
			if p.kind != "method_declaration" && p.kind != "constructor_declaration" {
				continue
			}

			callees := harvester.Harvest(g, p.absPath, p.start, p.end)
			if len(callees) > opt.MaxSymbolsPerMethod {
				callees = callees[:opt.MaxSymbolsPerMethod]
			}

			for _, sym := range callees {
				if budgetExhausted() {
					break
				}

				pack.Stats.SymbolsSeen++

				symKey := dedupKey(strconv.Itoa(hop), sym)
				if seenSymbols[symKey] {
					continue
				}
				seenSymbols[symKey] = true

				query := types.SearchQuery{
					Pattern:      regexForSymbolCall(sym),
					FixedString:  false,
					IncludeGlobs: req.IncludeGlobs,
					ExcludeGlobs: req.ExcludeGlobs,
				}

				pack.Stats.SearchQueries++

				result := searchdriver.Search(ctx, req.RepoRoot, query)
				if result.ExitCode == 2 {
					continue
				}

				pack.Stats.SearchHitsTotal += len(result.Hits)

				take := len(result.Hits)
				if take > opt.MaxHitsPerSymbol {
					take = opt.MaxHitsPerSymbol
				}

				type candidate struct {
					snip  types.HitSnippet
					score int
				}

				var cands []candidate
				for i := 0; i < take; i++ {
					h := result.Hits[i]
					sn := resolver.Resolve(g, h.AbsPath, relPathFor(h.AbsPath, req.RepoRoot), uint(h.AbsoluteOffset))
					if !sn.Found {
						continue
					}

					key := dedupKey(sn.RelPath, strconv.FormatUint(uint64(sn.Start), 10), strconv.FormatUint(uint64(sn.End), 10))
					if seenSnips[key] {
						continue
					}

					cands = append(cands, candidate{snip: sn, score: scoreSnippet(loc.RelPath, sn)})
				}

				if len(cands) == 0 {
					continue
				}

				sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

				emitCount := opt.MaxSnippetsPerSymbol
				if emitCount < 1 {
					emitCount = 1
				}

				for k := 0; k < emitCount && k < len(cands); k++ {
					best := cands[k]

					key := dedupKey(best.snip.RelPath, strconv.FormatUint(uint64(best.snip.Start), 10), strconv.FormatUint(uint64(best.snip.End), 10))
					seenSnips[key] = true

					if pack.Stats.BytesWritten+len(best.snip.Text) > opt.MaxBytes {
						break
					}

					s := types.ContextSnippet{
						RelPath: best.snip.RelPath,
						AbsPath: best.snip.AbsPath,
						Kind:    best.snip.Kind,
						Start:   best.snip.Start,
						End:     best.snip.End,
						Score:   best.score,
						Hop:     hop + 1,
						Symbol:  sym,
						Text:    best.snip.Text,
					}
					pack.Snippets = append(pack.Snippets, s)
					pack.Stats.SnippetsWritten++
					pack.Stats.BytesWritten += len(s.Text)

					if best.snip.Kind == "method_declaration" || best.snip.Kind == "constructor_declaration" {
						nextFrontier = append(nextFrontier, pending{
							relPath: best.snip.RelPath,
							absPath: best.snip.AbsPath,
							kind:    best.snip.Kind,
							start:   best.snip.Start,
							end:     best.snip.End,
						})
					}

					if budgetExhausted() {
						break
					}
				}
			}
		}

		frontier = nextFrontier
		pack.Stats.HopsUsed = hop + 1

		if len(frontier) == 0 {
			break
		}
	}

	return pack
}

// regexForSymbolCall builds the call-site pattern for a harvested symbol
// name. It intentionally also matches the symbol's own declaration line
// (there is no lookahead distinguishing "void sym(" from "sym(") — a
// declaration hit simply resolves to the same enclosing scope a call
// would, which is harmless for context purposes.
func regexForSymbolCall(sym string) string {
	return fmt.Sprintf(`\b%s\s*\(`, sym)
}

// scoreSnippet ranks a resolved hit snippet by declaration kind, source
// root convention, directory proximity to the anchor, and a size penalty
// for unusually large scopes.
func scoreSnippet(anchorRel string, snip types.HitSnippet) int {
	score := 0

	if types.IsCallableKind(snip.Kind) {
		score += 50
	} else if types.IsTypeKind(snip.Kind) {
		score += 30
	}

	if pathIsMainSource(snip.RelPath) {
		score += 20
	}

	if dir := dirOf(anchorRel); dir != "" && strings.HasPrefix(snip.RelPath, dir) {
		score += 20
	}

	length := 0
	if snip.End > snip.Start {
		length = int(snip.End - snip.Start)
	}
	if length > 8000 {
		score -= 20
	}
	if length > 20000 {
		score -= 60
	}

	return score
}

func pathIsMainSource(relPath string) bool {
	return strings.Contains("/"+relPath, "/src/main/")
}

func dirOf(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[:i+1]
	}
	return ""
}

// dedupKey hashes its parts into a single comparable key using xxhash,
// mirroring the Design Notes' two-hash-set dedup pattern.
func dedupKey(parts ...string) uint64 {
	h := xxhash.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

func relPathFor(absPath, repoRoot string) string {
	rel, err := filepath.Rel(repoRoot, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}
