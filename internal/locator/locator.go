// Package locator implements the Class Locator: resolving a fully
// qualified class name against the Workspace Scanner's file inventory by
// path suffix, then ranking candidates by directory convention, package
// declaration, and type declaration content.
package locator

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// Locate resolves fqcn (e.g. "com.acme.billing.Invoice") against files.
//
// Candidates are collected by two path-suffix passes: first files whose
// RelPath ends with the fully-qualified path ("com/acme/billing/Invoice.java"),
// falling back to any file named "Invoice.java" if the first pass is empty.
// Each candidate is scored by directory convention plus corroborating
// package/type-declaration content; the highest score wins. Ties are
// broken by Jaro-Winkler similarity between the requested simple name and
// the candidate's file base name, then by original file order, so re-running Locate on an
// unchanged inventory always picks the same file.
func Locate(fqcn string, files []types.FileEntry) types.ClassLocation {
	suffix := pathSuffix(fqcn)
	simple := simpleName(fqcn)
	pkg := packageName(fqcn)

	candidates := filterBySuffix(files, suffix)
	if len(candidates) == 0 {
		candidates = filterBySuffix(files, simple+".java")
	}
	if len(candidates) == 0 {
		return types.ClassLocation{Found: false, Reason: "no candidates by path"}
	}

	type scored struct {
		entry  types.FileEntry
		score  int
		pkgOK  bool
		declOK bool
		sim    float64
	}

	results := make([]scored, 0, len(candidates))
	for _, fe := range candidates {
		pkgOK := fileContainsPackageLine(fe.AbsPath, pkg)
		declOK := fileContainsTypeDecl(fe.AbsPath, simple)

		score := scorePath(fe.RelPath)
		if pkgOK {
			score += 30
		}
		if declOK {
			score += 30
		}

		sim, _ := edlib.StringsSimilarity(simple, simpleName(strings.TrimSuffix(fe.RelPath, ".java")), edlib.JaroWinkler)

		results = append(results, scored{entry: fe, score: score, pkgOK: pkgOK, declOK: declOK, sim: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].sim > results[j].sim
	})

	best := results[0]
	return types.ClassLocation{
		Found:   true,
		AbsPath: best.entry.AbsPath,
		RelPath: best.entry.RelPath,
		Reason:  reasonFor(best.score, best.pkgOK, best.declOK),
	}
}

func reasonFor(score int, pkgOK, declOK bool) string {
	b := strings.Builder{}
	b.WriteString("best score=")
	b.WriteString(strconv.Itoa(score))
	b.WriteString(" pkg_ok=")
	b.WriteString(boolFlag(pkgOK))
	b.WriteString(" decl_ok=")
	b.WriteString(boolFlag(declOK))
	return b.String()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func filterBySuffix(files []types.FileEntry, suffix string) []types.FileEntry {
	var out []types.FileEntry
	for _, fe := range files {
		if strings.HasSuffix(fe.RelPath, suffix) {
			out = append(out, fe)
		}
	}
	return out
}

// pathSuffix converts a fully qualified class name to its expected
// relative path: "a.b.C" -> "a/b/C.java".
func pathSuffix(fqcn string) string {
	return strings.ReplaceAll(fqcn, ".", "/") + ".java"
}

func simpleName(fqcn string) string {
	if i := strings.LastIndexByte(fqcn, '.'); i >= 0 {
		return fqcn[i+1:]
	}
	if i := strings.LastIndexByte(fqcn, '/'); i >= 0 {
		return fqcn[i+1:]
	}
	return fqcn
}

func packageName(fqcn string) string {
	if i := strings.LastIndexByte(fqcn, '.'); i >= 0 {
		return fqcn[:i]
	}
	return ""
}

// scorePath rewards conventional Maven/Gradle source layout and
// penalizes build output directories that happen to still be in the
// inventory (e.g. because exclusion globs missed them).
func scorePath(relPath string) int {
	score := 0
	p := "/" + relPath
	if strings.Contains(p, "/src/main/java/") {
		score += 50
	}
	if strings.Contains(p, "/src/test/java/") {
		score += 20
	}
	if strings.Contains(p, "/target/") {
		score -= 80
	}
	if strings.Contains(p, "/build/") {
		score -= 80
	}
	return score
}

// fileContainsPackageLine reports whether absPath declares the given
// package within its first 256 lines, stopping early at the first type
// declaration.
func fileContainsPackageLine(absPath, pkg string) bool {
	if pkg == "" {
		return false
	}
	f, err := os.Open(absPath)
	if err != nil {
		return false
	}
	defer f.Close()

	want := "package " + pkg + ";"
	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		lines++
		if lines > 256 {
			break
		}
		t := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(t, want) {
			return true
		}
		if strings.Contains(t, "class ") || strings.Contains(t, "interface ") ||
			strings.Contains(t, "enum ") || strings.Contains(t, "record ") {
			break
		}
	}
	return false
}

// fileContainsTypeDecl reports whether absPath contains a class,
// interface, enum, or record declaration for simple within its first
// 2048 lines.
func fileContainsTypeDecl(absPath, simple string) bool {
	f, err := os.Open(absPath)
	if err != nil {
		return false
	}
	defer f.Close()

	patterns := []string{"class " + simple, "interface " + simple, "enum " + simple, "record " + simple}
	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		lines++
		if lines > 2048 {
			break
		}
		line := sc.Text()
		for _, p := range patterns {
			if strings.Contains(line, p) {
				return true
			}
		}
	}
	return false
}
