package mdmath

// Box is a mechanical glyph-run/box produced by Typeset. It stands in for
// the real typesetter's richer layout (font metrics, kerning, glyph
// indices), which spec.md §1 places out of scope as an external
// collaborator; this is the "large but mechanical" consumer spec.md §2
// describes, enough to exercise every MathNode variant end-to-end.
//
// Units are abstract em-fractions, not device pixels.
type Box struct {
	Kind          Kind
	Text          string
	Width         float64
	Height        float64 // above baseline
	Depth         float64 // below baseline
	BaselineShift float64 // vertical offset applied by the parent layout
	Children      []Box
}

const (
	glyphWidth    = 0.6
	glyphHeight   = 0.7
	glyphDepth    = 0.1
	scriptScale   = 0.7
	barGap        = 0.1
	radicalBar    = 0.5
	delimiterPad  = 0.2
	spacingThinW  = 0.16667
	spacingMedW   = 0.22222
	spacingQuadW  = 1.0
	accentGap     = 0.15
	matrixColGap  = 0.5
	matrixRowGap  = 0.3
	cellPad       = 0.3
)

// Typeset mechanically lays out n into a Box tree. It never fails: every
// Kind has a defined layout, including the degenerate Text fallback that
// Parse returns on error.
func Typeset(n Node) Box {
	switch n.Kind {
	case Sequence:
		return typesetSequence(n)
	case Symbol, Number, Operator, Function, Text:
		return leafBox(n)
	case Fraction:
		return typesetFraction(n)
	case Sqrt:
		return typesetSqrt(n)
	case Scripts:
		return typesetScripts(n)
	case Delimiter:
		return typesetDelimiter(n)
	case Matrix:
		return typesetGrid(n.Kind, n.Rows)
	case Spacing:
		return typesetSpacing(n)
	case Accent:
		return typesetAccent(n)
	case Binomial:
		return typesetBinomial(n)
	case Cases:
		return typesetGrid(n.Kind, n.Rows)
	case Aligned:
		return typesetGrid(n.Kind, n.Rows)
	default:
		return Box{Kind: n.Kind}
	}
}

func leafBox(n Node) Box {
	width := glyphWidth * float64(runeLen(n.Value))
	if n.Kind == Function {
		width = glyphWidth * float64(len(n.Value)+1) // trailing operator gap
	}
	return Box{Kind: n.Kind, Text: n.Value, Width: width, Height: glyphHeight, Depth: glyphDepth}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}

func typesetSequence(n Node) Box {
	box := Box{Kind: Sequence}
	for _, child := range n.Children {
		cb := Typeset(child)
		box.Children = append(box.Children, cb)
		box.Width += cb.Width
		if cb.Height > box.Height {
			box.Height = cb.Height
		}
		if cb.Depth > box.Depth {
			box.Depth = cb.Depth
		}
	}
	return box
}

func typesetFraction(n Node) Box {
	num := Typeset(*n.Num)
	den := Typeset(*n.Den)
	width := num.Width
	if den.Width > width {
		width = den.Width
	}
	return Box{
		Kind:     Fraction,
		Width:    width,
		Height:   num.Height + num.Depth + barGap,
		Depth:    den.Height + den.Depth + barGap,
		Children: []Box{num, den},
	}
}

func typesetBinomial(n Node) Box {
	top := Typeset(*n.Num)
	bottom := Typeset(*n.Den)
	width := top.Width
	if bottom.Width > width {
		width = bottom.Width
	}
	width += 2 * delimiterPad
	return Box{
		Kind:     Binomial,
		Width:    width,
		Height:   top.Height + top.Depth,
		Depth:    bottom.Height + bottom.Depth,
		Children: []Box{top, bottom},
	}
}

func typesetSqrt(n Node) Box {
	radicand := Typeset(*n.Radicand)
	width := radicalBar + radicand.Width
	var idx Box
	if n.Index != nil {
		idx = Typeset(*n.Index)
		idx.BaselineShift = radicand.Height * 0.6
		width += idx.Width
	}
	children := []Box{radicand}
	if n.Index != nil {
		children = append(children, idx)
	}
	return Box{
		Kind:     Sqrt,
		Width:    width,
		Height:   radicand.Height + barGap,
		Depth:    radicand.Depth,
		Children: children,
	}
}

func typesetScripts(n Node) Box {
	base := Typeset(*n.Base)
	box := Box{Kind: Scripts, Width: base.Width, Height: base.Height, Depth: base.Depth, Children: []Box{base}}

	if n.Sup != nil {
		sup := Typeset(*n.Sup)
		sup.Width *= scriptScale
		sup.Height *= scriptScale
		sup.Depth *= scriptScale
		sup.BaselineShift = base.Height * 0.6
		box.Children = append(box.Children, sup)
		if w := sup.Width; w > 0 {
			box.Width += w
		}
		if h := base.Height + sup.BaselineShift + sup.Height; h > box.Height {
			box.Height = h
		}
	}
	if n.Sub != nil {
		sub := Typeset(*n.Sub)
		sub.Width *= scriptScale
		sub.Height *= scriptScale
		sub.Depth *= scriptScale
		sub.BaselineShift = -base.Depth * 0.6
		box.Children = append(box.Children, sub)
		if w := sub.Width; w > box.Width-base.Width {
			box.Width += w
		}
		if d := base.Depth - sub.BaselineShift + sub.Depth; d > box.Depth {
			box.Depth = d
		}
	}
	return box
}

func typesetDelimiter(n Node) Box {
	body := Typeset(*n.Body)
	leftW, rightW := 0.0, 0.0
	if n.Left != "." {
		leftW = delimiterPad
	}
	if n.Right != "." {
		rightW = delimiterPad
	}
	return Box{
		Kind:     Delimiter,
		Text:     n.Left + "\x00" + n.Right,
		Width:    leftW + body.Width + rightW,
		Height:   body.Height,
		Depth:    body.Depth,
		Children: []Box{body},
	}
}

func typesetSpacing(n Node) Box {
	var w float64
	switch n.Space {
	case SpacingThin:
		w = spacingThinW
	case SpacingMedium:
		w = spacingMedW
	case SpacingQuad:
		w = spacingQuadW
	}
	return Box{Kind: Spacing, Width: w}
}

func typesetAccent(n Node) Box {
	body := Typeset(*n.Body)
	return Box{
		Kind:     Accent,
		Width:    body.Width,
		Height:   body.Height + accentGap,
		Depth:    body.Depth,
		Children: []Box{body},
	}
}

// typesetGrid lays out Matrix/Cases/Aligned rows: column widths are the max
// cell width per column, row heights the max cell height per row.
func typesetGrid(kind Kind, rows [][]Node) Box {
	cellBoxes := make([][]Box, len(rows))
	colWidths := []float64{}
	for i, row := range rows {
		cellBoxes[i] = make([]Box, len(row))
		for j, cell := range row {
			cb := Typeset(cell)
			cellBoxes[i][j] = cb
			for len(colWidths) <= j {
				colWidths = append(colWidths, 0)
			}
			if w := cb.Width + cellPad; w > colWidths[j] {
				colWidths[j] = w
			}
		}
	}

	box := Box{Kind: kind}
	for _, w := range colWidths {
		box.Width += w
	}
	if n := len(colWidths); n > 1 {
		box.Width += matrixColGap * float64(n-1)
	}

	for i, row := range cellBoxes {
		rowHeight, rowDepth := 0.0, 0.0
		for _, cb := range row {
			if cb.Height > rowHeight {
				rowHeight = cb.Height
			}
			if cb.Depth > rowDepth {
				rowDepth = cb.Depth
			}
		}
		box.Height += rowHeight
		box.Depth = rowDepth // last row's depth is the box's depth
		if i > 0 {
			box.Height += matrixRowGap
		}
		box.Children = append(box.Children, row...)
	}
	return box
}
