package token

import (
	"strings"

	"github.com/jcorbin/mdstream/mdmath"
)

// ScanInline scans src for the recognized inline constructs (emphasis,
// strong emphasis, code spans, strikethrough, links, images, autolinks,
// inline math, backslash escapes of its own special characters, and the
// soft/hard break encoding the block layer embeds as literal '\n'/'\r').
//
// It returns every run it could confirm and consumed, the byte offset up
// to which src was resolved. When consumed < len(src), the remainder holds
// an as-yet-unclosed construct (an open emphasis run, an unterminated code
// span, ...); the caller is expected to re-scan once more text has
// arrived, or to force it closed (as literal text) at block end. This is
// the mechanism behind "no speculative events" (spec.md §4.4): nothing
// after the unresolved marker is ever turned into a run prematurely.
func ScanInline(src []byte) (runs []InlineRun, consumed int) {
	var cur strings.Builder
	i := 0

	flush := func() {
		if cur.Len() > 0 {
			runs = appendCoalesced(runs, InlineRun{Text: cur.String()})
			cur.Reset()
		}
	}
	appendRun := func(r InlineRun) {
		flush()
		runs = appendCoalesced(runs, r)
	}

scan:
	for i < len(src) {
		c := src[i]
		switch c {
		case '\n':
			cur.WriteByte(' ')
			i++

		case '\r':
			cur.WriteByte('\n')
			i++

		case '\\':
			if i+1 < len(src) && src[i+1] == '(' {
				close := indexOfStr(src, i+2, `\)`)
				if close < 0 {
					flush()
					break scan
				}
				raw := string(src[i+2 : close])
				node := mdmath.Parse(raw)
				appendRun(InlineRun{Text: raw, Style: StyleMath, Math: &node})
				i = close + 2
			} else if i+1 < len(src) && isOwnPunct(src[i+1]) {
				cur.WriteByte(src[i+1])
				i += 2
			} else {
				cur.WriteByte('\\')
				i++
			}

		case '`':
			n := runLength(src, i, '`')
			close := findBacktickClose(src, i+n, n)
			if close < 0 {
				flush()
				break scan
			}
			body := strings.Trim(string(src[i+n:close]), " ")
			appendRun(InlineRun{Text: body, Style: StyleCode})
			i = close + n

		case '~':
			if i+1 < len(src) && src[i+1] == '~' {
				close := indexOfStr(src, i+2, "~~")
				if close < 0 {
					flush()
					break scan
				}
				inner := src[i+2 : close]
				subRuns, subConsumed := ScanInline(inner)
				if subConsumed < len(inner) {
					flush()
					break scan
				}
				flush()
				for _, r := range subRuns {
					r.Style |= StyleStrikethrough
					runs = appendCoalesced(runs, r)
				}
				i = close + 2
			} else {
				cur.WriteByte('~')
				i++
			}

		case '*', '_':
			marker := c
			n := runLength(src, i, marker)
			width := 1
			if n >= 2 {
				width = 2
			}
			close := findEmphasisClose(src, i+width, marker, width)
			if close < 0 {
				flush()
				break scan
			}
			inner := src[i+width : close]
			if len(inner) == 0 {
				cur.WriteByte(marker)
				i++
				continue
			}
			subRuns, subConsumed := ScanInline(inner)
			if subConsumed < len(inner) {
				flush()
				break scan
			}
			styleBit := StyleItalic
			if width == 2 {
				styleBit = StyleBold
			}
			flush()
			for _, r := range subRuns {
				r.Style |= styleBit
				runs = appendCoalesced(runs, r)
			}
			i = close + width

		case '!':
			if i+1 < len(src) && src[i+1] == '[' {
				ok, alt, url, next := scanLinkOrImage(src, i+1)
				if !ok {
					flush()
					break scan
				}
				appendRun(InlineRun{Image: &ImageRef{Alt: alt, Src: url}})
				i = next
			} else {
				cur.WriteByte('!')
				i++
			}

		case '[':
			ok, text, url, next := scanLinkOrImage(src, i)
			if !ok {
				flush()
				break scan
			}
			subRuns, subConsumed := ScanInline([]byte(text))
			if subConsumed < len(text) {
				flush()
				break scan
			}
			flush()
			for _, r := range subRuns {
				r.Style |= StyleLink
				r.LinkURL = url
				runs = appendCoalesced(runs, r)
			}
			i = next

		case '<':
			if ok, url, next := scanAutolink(src, i); ok {
				appendRun(InlineRun{Text: url, Style: StyleLink, LinkURL: url})
				i = next
			} else {
				cur.WriteByte('<')
				i++
			}

		case '$':
			close := indexOfByte(src, i+1, '$')
			if close < 0 {
				flush()
				break scan
			}
			raw := string(src[i+1 : close])
			node := mdmath.Parse(raw)
			appendRun(InlineRun{Text: raw, Style: StyleMath, Math: &node})
			i = close + 1

		default:
			cur.WriteByte(c)
			i++
		}
	}

	if i == len(src) {
		flush()
	}
	return runs, i
}

func appendCoalesced(runs []InlineRun, r InlineRun) []InlineRun {
	if n := len(runs); n > 0 && Coalescable(runs[n-1], r) {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}

func isOwnPunct(b byte) bool {
	switch b {
	case '*', '_', '`', '~', '[', ']', '!', '<', '>', '$', '\\', '#':
		return true
	default:
		return false
	}
}

func runLength(src []byte, i int, marker byte) int {
	n := 0
	for i+n < len(src) && src[i+n] == marker {
		n++
	}
	return n
}

// findBacktickClose finds a run of exactly n backticks at or after from,
// skipping over runs of a different length (they cannot close this span).
func findBacktickClose(src []byte, from, n int) int {
	for j := from; j < len(src); j++ {
		if src[j] != '`' {
			continue
		}
		m := runLength(src, j, '`')
		if m == n {
			return j
		}
		j += m - 1
	}
	return -1
}

// findEmphasisClose finds a run of exactly width marker bytes at or after
// from, requiring non-empty content before it.
func findEmphasisClose(src []byte, from int, marker byte, width int) int {
	for j := from; j < len(src); j++ {
		if src[j] != marker {
			continue
		}
		m := runLength(src, j, marker)
		if m >= width && j > from {
			return j
		}
		j += m - 1
	}
	return -1
}

func indexOfByte(src []byte, from int, b byte) int {
	for j := from; j < len(src); j++ {
		if src[j] == b {
			return j
		}
	}
	return -1
}

func indexOfStr(src []byte, from int, sub string) int {
	if from > len(src) {
		return -1
	}
	idx := strings.Index(string(src[from:]), sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// scanLinkOrImage scans a "[text](url)" or "![alt](src)" construct starting
// at the '[' byte, returning the bracketed text/alt, the parenthesized
// destination, and the index just past the closing ')'.
func scanLinkOrImage(src []byte, open int) (ok bool, text, url string, next int) {
	depth := 0
	j := open
	for j < len(src) {
		switch src[j] {
		case '\\':
			j++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				goto foundBracket
			}
		}
		j++
	}
	return false, "", "", 0

foundBracket:
	text = string(src[open+1 : j])
	j++
	if j >= len(src) || src[j] != '(' {
		return false, "", "", 0
	}
	j++
	start := j
	pdepth := 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j++
		case '(':
			pdepth++
		case ')':
			pdepth--
			if pdepth == 0 {
				url = strings.TrimSpace(string(src[start:j]))
				return true, text, url, j + 1
			}
		}
		j++
	}
	return false, "", "", 0
}

// scanAutolink recognizes "<scheme:...>" or "<user@host>" starting at '<'.
func scanAutolink(src []byte, open int) (ok bool, url string, next int) {
	j := open + 1
	for j < len(src) {
		c := src[j]
		if c == ' ' || c == '\t' || c == '\n' || c == '<' {
			return false, "", 0
		}
		if c == '>' {
			break
		}
		j++
	}
	if j >= len(src) || src[j] != '>' {
		return false, "", 0
	}
	inner := string(src[open+1 : j])
	if strings.Contains(inner, "://") || strings.Contains(inner, "@") {
		return true, inner, j + 1
	}
	return false, "", 0
}
