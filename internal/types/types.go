// Package types holds the data model shared across every ctxpack stage:
// the file inventory, the intermediate results each component produces,
// and the final context pack.
package types

// DefaultMaxFileSize is the Scanner's default per-file size cutoff (2 MiB).
const DefaultMaxFileSize = 2 * 1024 * 1024

// FileEntry is one source file in the scanned inventory.
//
// RelPath never escapes the scan root; it is produced once during the scan
// and treated as immutable afterward.
type FileEntry struct {
	RelPath string
	AbsPath string
	Size    int64
}

// ClassLocation is the result of resolving a fully qualified class name
// against the file inventory.
type ClassLocation struct {
	Found   bool
	AbsPath string
	RelPath string
	Reason  string
}

// Method is the result of extracting a named method from a file.
//
// When Found is true, End > Start, both bounds lie within the file, and
// Text equals the file's bytes on [Start, End).
type Method struct {
	Found   bool
	AbsPath string
	RelPath string
	Start   uint
	End     uint
	Text    string
	Reason  string
}

// HitSnippet is the enclosing scope of a byte-offset hit: the same shape as
// Method, plus a Kind label drawn from the preferred-types set.
type HitSnippet struct {
	Found   bool
	AbsPath string
	RelPath string
	Start   uint
	End     uint
	Text    string
	Kind    string
	Reason  string
}

// AnchorSymbol is the fixed symbol name attached to the anchor snippet.
const AnchorSymbol = "ANCHOR"

// ContextSnippet is one entry in the final pack.
type ContextSnippet struct {
	AbsPath string
	RelPath string
	Kind    string
	Start   uint
	End     uint
	Score   int
	Hop     int
	Symbol  string
	Text    string
}

// ContextStats accompanies a ContextPack with run-level counters.
type ContextStats struct {
	HopsUsed        int
	SnippetsWritten int
	BytesWritten    int
	SymbolsSeen     int
	SearchQueries   int
	SearchHitsTotal int
}

// ContextPack is the ordered result of a Builder run: anchor first, then
// breadth-first by hop, then by symbol order within a hop, then by score
// within a symbol.
type ContextPack struct {
	Snippets []ContextSnippet
	Stats    ContextStats
}

// ContextRequest is the input identifying what to build a pack for.
type ContextRequest struct {
	RepoRoot     string
	AnchorClass  string
	AnchorMethod string
	IncludeGlobs []string
	ExcludeGlobs []string
}

// ContextOptions carries the budgets and caps that bound a Builder run.
type ContextOptions struct {
	MaxHops                 int
	MaxSnippets             int
	MaxBytes                int
	MaxSymbolsPerMethod     int
	MaxHitsPerSymbol        int
	MaxSnippetsPerSymbol    int
	IncludeAnchorInSnippets bool
}

// DefaultContextOptions returns the spec's documented defaults.
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		MaxHops:                 2,
		MaxSnippets:             20,
		MaxBytes:                120000,
		MaxSymbolsPerMethod:     12,
		MaxHitsPerSymbol:        6,
		MaxSnippetsPerSymbol:    1,
		IncludeAnchorInSnippets: true,
	}
}

// SearchHit is one structured match record surfaced by the Regex Search
// Driver: an absolute file path, a 1-based line number, and a global
// absolute byte offset of the first sub-match within the file.
type SearchHit struct {
	AbsPath        string
	LineNumber     int
	AbsoluteOffset int
	SubmatchStart  int
	SubmatchEnd    int
}

// SearchQuery is the input to a single Regex Search Driver invocation.
type SearchQuery struct {
	Pattern      string
	FixedString  bool
	IncludeGlobs []string
	ExcludeGlobs []string
}

// SearchResult is the outcome of one Search Driver invocation. ExitCode
// follows ripgrep's convention: 0 = at least one hit, 1 = no hits, 2 =
// tool error. Error is populated only on ExitCode 2.
type SearchResult struct {
	Hits     []SearchHit
	ExitCode int
	Error    error
}

// PreferredTypes is the set of syntax-tree node kinds the Enclosing-Scope
// Resolver climbs toward; these also mark a snippet as a valid Context
// Builder frontier entry point when Kind is method_declaration or
// constructor_declaration.
var PreferredTypes = map[string]bool{
	"method_declaration":      true,
	"constructor_declaration": true,
	"class_declaration":       true,
	"interface_declaration":   true,
	"enum_declaration":        true,
	"record_declaration":      true,
}

// IsCallableKind reports whether a Kind value represents a callable entry
// point (method or constructor) that the Context Builder may harvest
// callees from.
func IsCallableKind(kind string) bool {
	return kind == "method_declaration" || kind == "constructor_declaration"
}

// IsTypeKind reports whether a Kind value represents a class-or-interface
// family declaration, for Context Builder ranking purposes.
func IsTypeKind(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	default:
		return false
	}
}

// NoiseMethods is the Callee Harvester's default stop list of common
// methods that are rarely useful as context-expansion seeds.
var NoiseMethods = map[string]bool{
	"toString": true, "hashCode": true, "equals": true, "getClass": true,
	"notify": true, "notifyAll": true, "wait": true,
	"size": true, "isEmpty": true, "get": true, "set": true, "add": true,
	"remove": true, "contains": true, "stream": true, "map": true,
	"flatMap": true, "filter": true, "collect": true, "forEach": true,
	"of": true, "valueOf": true,
}
