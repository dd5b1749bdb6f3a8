package token

// Byte-level line-matching helpers, adapted from scandown.BlockStack's
// delimiter/ordinal/fence/ruler/trimIndent family to return parsed
// BlockKind fragments instead of scandown.BlockType constants.

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}

// trimIndent consumes up to limit columns of leading space/tab indent,
// counting a tab as advancing to the next 4-column stop.
func trimIndent(line []byte, prior, limit int) (n int, tail []byte) {
	for tail = line; n < limit && len(tail) > 0; tail = tail[1:] {
		if c := tail[0]; c == ' ' {
			n++
		} else if c == '\t' {
			m := n + 4 - prior
			if m > limit {
				return n, tail
			}
			n = m
			prior = 0
		} else {
			break
		}
	}
	return n, tail
}

func trimNewline(line []byte) []byte {
	i := len(line) - 1
	for i >= 0 {
		switch line[i] {
		case '\r', '\n':
			i--
		default:
			return line[:i+1]
		}
	}
	return line[:0]
}

func delimiter(line []byte, maxWidth int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(line) == 0 {
		return 0, 0, nil
	}
	if delim = line[0]; !isByte(delim, marks...) {
		return 0, 0, nil
	}
	width++
	tail = line[1:]
	for {
		if len(tail) == 0 {
			return delim, width, tail
		}
		switch tail[0] {
		case delim:
			if width++; width > maxWidth {
				return 0, 0, nil
			}
			tail = tail[1:]
		case ' ', '\t':
			return delim, width, tail
		default:
			return 0, 0, nil
		}
	}
}

func ordinal(line []byte) (delim byte, width int, tail []byte) {
	tail = line
	for len(tail) > 0 {
		switch c := tail[0]; c {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			width++
			tail = tail[1:]
			continue
		case '.', ')':
			delim = c
			tail = tail[1:]
		}
		break
	}
	if delim == 0 || width < 1 || width > 9 {
		return 0, 0, nil
	}
	width++
	return delim, width, tail
}

func fence(line []byte, min int, marks ...byte) (f byte, width int, tail []byte) {
	if len(line) == 0 {
		return 0, 0, nil
	}
	if f = line[0]; !isByte(f, marks...) {
		return 0, 0, nil
	}
	width++
	for ; width < len(line); width++ {
		if line[width] != f {
			break
		}
	}
	if width < min {
		return 0, 0, nil
	}
	return f, width, line[width:]
}

func ruler(line []byte, marks ...byte) (rule byte, width int, tail []byte) {
	if len(line) == 0 {
		return 0, 0, nil
	}
	if rule = line[0]; !isByte(rule, marks...) {
		return 0, 0, nil
	}
	for width++; width < len(line); width++ {
		switch line[width] {
		case rule, ' ', '\t':
		default:
			return 0, 0, nil
		}
	}
	// A ruler needs at least 3 marks, not counting spaces.
	n := 0
	for _, c := range line[:width] {
		if c == rule {
			n++
		}
	}
	if n < 3 {
		return 0, 0, nil
	}
	return rule, width, tail
}

// quoteMarker recognizes a blockquote marker: up to 3 spaces of indent,
// '>', then one optional space.
func quoteMarker(line []byte) (ok bool, cont []byte) {
	_, rest := trimIndent(line, 0, 3)
	if len(rest) == 0 || rest[0] != '>' {
		return false, nil
	}
	rest = rest[1:]
	if in, tail := trimIndent(rest, 1, 1); in > 0 || len(tail) == 0 {
		return true, tail
	}
	return true, rest
}

// bullet list marker characters.
var bulletMarks = []byte{'-', '*', '+'}

// listMarker recognizes an unordered or ordered list marker, with up to 3
// spaces of indent, followed by a single required space (or end of line),
// followed optionally by a task checkbox "[ ]" / "[x]" / "[X]".
func listMarker(line []byte) (ordered bool, index *int, task *TaskState, width int, cont []byte) {
	_, rest := trimIndent(line, 0, 3)
	indentWidth := len(line) - len(rest)

	var d byte
	var w int
	var tail []byte
	d, w, tail = delimiter(rest, 1, bulletMarks...)
	if d == 0 {
		d, w, tail = ordinal(rest)
		if d == 0 {
			return false, nil, nil, 0, nil
		}
		ordered = true
		n := parseOrdinalValue(rest[:w-1])
		index = &n
	}

	markerWidth := w
	if in, after := trimIndent(tail, 1, 1); in > 0 || len(after) == 0 {
		markerWidth += in
		tail = after
	} else {
		return false, nil, nil, 0, nil
	}

	if ck, checked, after := taskCheckbox(tail); ck {
		task = &TaskState{Checked: checked}
		tail = after
	}

	return ordered, index, task, indentWidth + markerWidth, tail
}

func parseOrdinalValue(digits []byte) int {
	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// taskCheckbox recognizes a leading "[ ]", "[x]", or "[X]" followed by a
// space, consuming it and the following space.
func taskCheckbox(line []byte) (ok bool, checked bool, tail []byte) {
	if len(line) < 4 || line[0] != '[' || line[2] != ']' {
		return false, false, line
	}
	switch line[1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return false, false, line
	}
	if line[3] != ' ' && line[3] != '\t' {
		return false, false, line
	}
	return true, checked, line[4:]
}

func atxHeading(line []byte) (ok bool, level int, content []byte) {
	d, w, tail := delimiter(line, 6, '#')
	if d == 0 {
		return false, 0, nil
	}
	if len(tail) != 0 && tail[0] != ' ' && tail[0] != '\t' {
		return false, 0, nil
	}
	content = trimSpaceBytes(tail)
	// Strip an optional trailing closing run of '#'s.
	content = trimTrailingHashes(content)
	return true, w, content
}

func trimTrailingHashes(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == '#' {
		end--
	}
	if end < len(b) && end > 0 && (b[end-1] == ' ' || b[end-1] == '\t') {
		b = trimSpaceBytes(b[:end])
	} else if end == 0 {
		b = b[:0]
	}
	return b
}

func trimSpaceBytes(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	j := len(b)
	for j > i && (b[j-1] == ' ' || b[j-1] == '\t') {
		j--
	}
	return b[i:j]
}

func isBlankLine(line []byte) bool {
	return len(trimSpaceBytes(line)) == 0
}
