package extractor

import (
	"strings"

	"github.com/standardbeagle/ctxpack/internal/types"
)

// extractTextFallback locates methodName with a brace-matching scan when
// the syntactic parser is unavailable for this file. It finds the first
// occurrence of the name immediately followed (modulo whitespace) by
// "(", walks to the matching ")", then to the next "{", then brace-matches
// to the closing "}". It does not account for braces inside strings or
// comments and is best-effort only, per the spec's documented fallback.
func extractTextFallback(src []byte, absPath, relPath, methodName string) types.Method {
	out := types.Method{AbsPath: absPath, RelPath: relPath}

	text := string(src)
	nameStart := findNameFollowedByParen(text, methodName)
	if nameStart < 0 {
		out.Reason = "method name not found (text fallback)"
		return out
	}

	declStart := lineStart(text, nameStart)

	openParen := strings.IndexByte(text[nameStart:], '(')
	if openParen < 0 {
		out.Reason = "no opening paren after method name (text fallback)"
		return out
	}
	openParen += nameStart

	closeParen := matchDelim(text, openParen, '(', ')')
	if closeParen < 0 {
		out.Reason = "unbalanced parens (text fallback)"
		return out
	}

	braceOpen := strings.IndexByte(text[closeParen:], '{')
	if braceOpen < 0 {
		out.Reason = "no method body found (text fallback)"
		return out
	}
	braceOpen += closeParen

	braceClose := matchDelim(text, braceOpen, '{', '}')
	if braceClose < 0 {
		out.Reason = "unbalanced braces (text fallback)"
		return out
	}

	end := braceClose + 1
	out.Found = true
	out.Start = uint(declStart)
	out.End = uint(end)
	out.Text = text[declStart:end]
	out.Reason = "text brace-matching fallback"
	return out
}

// findNameFollowedByParen returns the byte offset of the first
// occurrence of name whose next non-whitespace character is "(".
func findNameFollowedByParen(text, name string) int {
	from := 0
	for {
		idx := strings.Index(text[from:], name)
		if idx < 0 {
			return -1
		}
		idx += from
		after := idx + len(name)

		boundaryOK := idx == 0 || !isIdentRune(rune(text[idx-1]))
		if boundaryOK {
			j := after
			for j < len(text) && (text[j] == ' ' || text[j] == '\t' || text[j] == '\n' || text[j] == '\r') {
				j++
			}
			if j < len(text) && text[j] == '(' {
				return idx
			}
		}
		from = idx + 1
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// matchDelim returns the offset of the delimiter matching open/close
// starting at openIdx, using a naive depth counter blind to strings and
// comments.
func matchDelim(text string, openIdx int, open, close byte) int {
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lineStart returns the byte offset of the start of the line containing
// idx, so the extracted declaration includes any modifiers/annotations
// on the same line as the method name.
func lineStart(text string, idx int) int {
	nl := strings.LastIndexByte(text[:idx], '\n')
	if nl < 0 {
		return 0
	}
	return nl + 1
}
