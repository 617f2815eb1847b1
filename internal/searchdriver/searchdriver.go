// Package searchdriver implements the Regex Search Driver: it shells out
// to ripgrep's --json mode and turns the NDJSON "match" event stream into
// global, byte-offset-precise SearchHit records.
package searchdriver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// rawEvent is decoded first so presence of absolute_offset can be
// distinguished from an explicit zero value.
type rawEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type rawMatchData struct {
	Path struct {
		Text string `json:"text"`
	} `json:"path"`
	LineNumber     int             `json:"line_number"`
	AbsoluteOffset json.RawMessage `json:"absolute_offset"`
	Submatches     []struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"submatches"`
}

// Search runs ripgrep --json against repoRoot with q's pattern and
// globs, and returns every line's first sub-match as a global absolute
// byte offset. Lines ripgrep reports without an absolute_offset are
// silently dropped since they cannot be placed globally.
func Search(ctx context.Context, repoRoot string, q types.SearchQuery) types.SearchResult {
	if q.Pattern == "" {
		return types.SearchResult{ExitCode: 2, Error: errors.New("empty pattern")}
	}

	repoAbs, err := filepath.Abs(repoRoot)
	if err != nil {
		repoAbs = repoRoot
	}

	args := []string{"--json"}
	if q.FixedString {
		args = append(args, "-F")
	}
	for _, g := range q.IncludeGlobs {
		args = append(args, "-g", g)
	}
	for _, x := range q.ExcludeGlobs {
		args = append(args, "-g", "!"+x)
	}
	args = append(args, q.Pattern, repoRoot)

	cmd := exec.CommandContext(ctx, "rg", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return types.SearchResult{ExitCode: 2, Error: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return types.SearchResult{ExitCode: 2, Error: err}
	}

	if err := cmd.Start(); err != nil {
		return types.SearchResult{ExitCode: 2, Error: err}
	}

	var hits []types.SearchHit
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
		for sc.Scan() {
			hit, ok := parseMatchLine(sc.Bytes(), repoAbs)
			if ok {
				hits = append(hits, hit)
			}
		}
		return sc.Err()
	})

	g.Go(func() error {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			fmt.Fprintln(os.Stderr, sc.Text())
		}
		return nil
	})

	scanErr := g.Wait()
	waitErr := cmd.Wait()

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 2
		}
	}

	res := types.SearchResult{Hits: hits, ExitCode: exitCode}
	if exitCode == 2 {
		if scanErr != nil {
			res.Error = scanErr
		} else if waitErr != nil {
			res.Error = waitErr
		} else {
			res.Error = errors.New("rg failed (exit=2)")
		}
	}
	return res
}

// parseMatchLine decodes one ripgrep --json NDJSON line into a SearchHit,
// resolving its path against repoAbs and computing the first sub-match's
// global absolute byte offset.
func parseMatchLine(line []byte, repoAbs string) (types.SearchHit, bool) {
	var raw rawEvent
	if err := json.Unmarshal(line, &raw); err != nil || raw.Type != "match" {
		return types.SearchHit{}, false
	}

	var data rawMatchData
	if err := json.Unmarshal(raw.Data, &data); err != nil {
		return types.SearchHit{}, false
	}
	if data.Path.Text == "" || len(data.AbsoluteOffset) == 0 || len(data.Submatches) == 0 {
		return types.SearchHit{}, false
	}

	var absOffset int
	if err := json.Unmarshal(data.AbsoluteOffset, &absOffset); err != nil {
		return types.SearchHit{}, false
	}

	sub := data.Submatches[0]
	if sub.End < sub.Start {
		return types.SearchHit{}, false
	}

	p := data.Path.Text
	if !filepath.IsAbs(p) {
		p = filepath.Join(repoAbs, p)
	}
	p = filepath.Clean(p)

	return types.SearchHit{
		AbsPath:        p,
		LineNumber:     data.LineNumber,
		AbsoluteOffset: absOffset + sub.Start,
		SubmatchStart:  sub.Start,
		SubmatchEnd:    sub.End,
	}, true
}
