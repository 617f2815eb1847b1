package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/ctxpack/internal/builder"
	"github.com/standardbeagle/ctxpack/internal/config"
	"github.com/standardbeagle/ctxpack/internal/debug"
	"github.com/standardbeagle/ctxpack/internal/packwriter"
	"github.com/standardbeagle/ctxpack/internal/promptspec"
	"github.com/standardbeagle/ctxpack/internal/scanner"
	"github.com/standardbeagle/ctxpack/internal/syntax"
	"github.com/standardbeagle/ctxpack/internal/types"
	"github.com/standardbeagle/ctxpack/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "ctxpack",
		Usage:                  "Build ranked, budgeted context packs for LLM code-generation prompts",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			contextCommand(),
			scanCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func contextCommand() *cli.Command {
	return &cli.Command{
		Name:  "context",
		Usage: "Build a context pack for an anchor class and method",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prompt", Usage: "Prompt file path ([HINTS]/[TASK] format)"},
			&cli.StringFlag{Name: "repo-root", Usage: "Repository root to scan", Value: "."},
			&cli.StringFlag{Name: "class", Usage: "Anchor class fully qualified name"},
			&cli.StringFlag{Name: "method", Usage: "Anchor method name"},
			&cli.StringFlag{Name: "out", Usage: "Output path, or - for stdout", Value: "context.txt"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Not read: config always comes from .ctxpack.kdl in --repo-root", Value: ".ctxpack.kdl"},
			&cli.IntFlag{Name: "max-hops", Usage: "Override max hops"},
			&cli.IntFlag{Name: "max-snippets", Usage: "Override max snippets"},
			&cli.IntFlag{Name: "max-bytes", Usage: "Override max bytes"},
			&cli.IntFlag{Name: "max-symbols-per-method", Usage: "Override max symbols per method"},
			&cli.IntFlag{Name: "max-hits-per-symbol", Usage: "Override max search hits per symbol"},
			&cli.IntFlag{Name: "max-snippets-per-symbol", Usage: "Override max snippets per symbol"},
		},
		Action: runContext,
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "List the files that would be scanned, without building a pack",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repo-root", Usage: "Repository root to scan", Value: "."},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Not read: config always comes from .ctxpack.kdl in --repo-root", Value: ".ctxpack.kdl"},
		},
		Action: runScan,
	}
}

// scopeToHops maps a prompt file's scope hint to a max-hops override.
// ScopeAuto leaves the configured default untouched.
func scopeToHops(s promptspec.Scope) (int, bool) {
	switch s {
	case promptspec.ScopeLocal:
		return 0, true
	case promptspec.ScopeDeps:
		return 1, true
	case promptspec.ScopeDeep:
		return 3, true
	default:
		return 0, false
	}
}

func runContext(c *cli.Context) error {
	repoRoot := c.String("repo-root")
	fqcn := c.String("class")
	method := c.String("method")
	outPath := c.String("out")

	cfg, err := config.LoadWithRoot(c.String("config"), repoRoot)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 2)
	}
	opt := cfg.Options

	if promptPath := c.String("prompt"); promptPath != "" {
		spec := promptspec.ParseFile(promptPath)
		if !spec.OK {
			return cli.Exit(fmt.Sprintf("prompt parse error: %s", spec.Error), 2)
		}
		if spec.RepoRoot != "" && !c.IsSet("repo-root") {
			repoRoot = spec.RepoRoot
		}
		if fqcn == "" {
			fqcn = spec.AnchorClass
		}
		if method == "" {
			method = spec.AnchorMethod
		}
		if hops, ok := scopeToHops(spec.Scope); ok {
			opt.MaxHops = hops
		}
	}

	if fqcn == "" || method == "" {
		return cli.Exit("missing anchor: provide --prompt or both --class and --method", 2)
	}

	applyOptionOverrides(c, &opt)

	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		absRoot = repoRoot
	}

	files, err := scanner.Scan(absRoot, scanner.Options{
		IncludeGlobs:   cfg.Include,
		ExcludeGlobs:   cfg.Exclude,
		MaxFileSize:    cfg.Scan.MaxFileSize,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
	})
	if err != nil {
		return fmt.Errorf("scan workspace: %w", err)
	}
	debug.Info("ctxpack", "scanned %d files under %s", len(files), absRoot)

	req := types.ContextRequest{
		RepoRoot:     absRoot,
		AnchorClass:  fqcn,
		AnchorMethod: method,
		IncludeGlobs: cfg.Include,
		ExcludeGlobs: cfg.Exclude,
	}

	g := syntax.MustGet(cfg.Scan.Language)
	pack := builder.Build(context.Background(), g, files, req, opt)

	out, closeFn, err := openOut(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := packwriter.Write(out, req, opt, pack); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}

	if len(pack.Snippets) == 0 {
		fmt.Fprintln(os.Stderr, "context: no snippets produced (anchor not found or extraction failed)")
		os.Exit(1)
	}

	return nil
}

func runScan(c *cli.Context) error {
	repoRoot := c.String("repo-root")

	cfg, err := config.LoadWithRoot(c.String("config"), repoRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		absRoot = repoRoot
	}

	files, err := scanner.Scan(absRoot, scanner.Options{
		IncludeGlobs:   cfg.Include,
		ExcludeGlobs:   cfg.Exclude,
		MaxFileSize:    cfg.Scan.MaxFileSize,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
	})
	if err != nil {
		return fmt.Errorf("scan workspace: %w", err)
	}

	for _, f := range files {
		fmt.Fprintln(c.App.Writer, f.RelPath)
	}
	return nil
}

func applyOptionOverrides(c *cli.Context, opt *types.ContextOptions) {
	if c.IsSet("max-hops") {
		opt.MaxHops = c.Int("max-hops")
	}
	if c.IsSet("max-snippets") {
		opt.MaxSnippets = c.Int("max-snippets")
	}
	if c.IsSet("max-bytes") {
		opt.MaxBytes = c.Int("max-bytes")
	}
	if c.IsSet("max-symbols-per-method") {
		opt.MaxSymbolsPerMethod = c.Int("max-symbols-per-method")
	}
	if c.IsSet("max-hits-per-symbol") {
		opt.MaxHitsPerSymbol = c.Int("max-hits-per-symbol")
	}
	if c.IsSet("max-snippets-per-symbol") {
		opt.MaxSnippetsPerSymbol = c.Int("max-snippets-per-symbol")
	}
}

func openOut(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
