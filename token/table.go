package token

import "strings"

// splitTableRow splits a raw pipe-table row into its cell source strings,
// honoring a leading/trailing pipe and backslash-escaped pipes within a
// cell. It does not itself decide whether line looks like a table row;
// callers check for the presence of an unescaped '|' first.
func splitTableRow(line []byte) []string {
	s := strings.TrimSpace(string(line))
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// looksLikeTableRow reports whether line contains a pipe character not
// escaped by a backslash, the minimal signal that it might be a table row.
func looksLikeTableRow(line []byte) bool {
	escaped := false
	for _, b := range line {
		switch {
		case escaped:
			escaped = false
		case b == '\\':
			escaped = true
		case b == '|':
			return true
		}
	}
	return false
}

// delimiterRow recognizes a table delimiter row: cells each matching
// `:?-+:?` with nothing else, at least one cell. Returns the alignment per
// cell on success.
func delimiterRow(line []byte) (ok bool, alignments []Alignment) {
	if !looksLikeTableRow(line) {
		return false, nil
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return false, nil
	}
	aligns := make([]Alignment, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return false, nil
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.Trim(c, ":")
		if len(dashes) == 0 {
			return false, nil
		}
		for _, r := range dashes {
			if r != '-' {
				return false, nil
			}
		}
		switch {
		case left && right:
			aligns = append(aligns, AlignCenter)
		case left:
			aligns = append(aligns, AlignLeft)
		case right:
			aligns = append(aligns, AlignRight)
		default:
			aligns = append(aligns, AlignNone)
		}
	}
	return true, aligns
}
