// Package packwriter serializes a ContextPack into ctxpack's
// [CONTEXT]/[SNIPPET]/[STATS] text format. The format is stable and
// intended to be byte-for-byte reproducible across runs against the
// same inventory.
package packwriter

import (
	"fmt"
	"io"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// Write serializes req, opt, and pack to w in ctxpack's pack format.
func Write(w io.Writer, req types.ContextRequest, opt types.ContextOptions, pack types.ContextPack) error {
	if _, err := fmt.Fprintf(w,
		"[CONTEXT]\nrepo_root: %s\nanchor_class: %s\nanchor_method: %s\nmax_hops: %d\nmax_snippets: %d\nmax_bytes: %d\n====\n",
		req.RepoRoot, req.AnchorClass, req.AnchorMethod, opt.MaxHops, opt.MaxSnippets, opt.MaxBytes,
	); err != nil {
		return err
	}

	for _, s := range pack.Snippets {
		if _, err := fmt.Fprintf(w,
			"\n[SNIPPET]\nhop: %d\nscore: %d\nsymbol: %s\nfile: %s\nkind: %s\nrange: %d..%d\n----\n%s\n[/SNIPPET]\n",
			s.Hop, s.Score, s.Symbol, s.RelPath, s.Kind, s.Start, s.End, s.Text,
		); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w,
		"\n[STATS]\nhops_used: %d\nsnippets_written: %d\nbytes_written: %d\nsymbols_seen: %d\nrg_queries: %d\nrg_hits_total: %d\n[/STATS]\n[/CONTEXT]\n",
		pack.Stats.HopsUsed, pack.Stats.SnippetsWritten, pack.Stats.BytesWritten,
		pack.Stats.SymbolsSeen, pack.Stats.SearchQueries, pack.Stats.SearchHitsTotal,
	)
	return err
}
