// Package mdmath lexes and parses a conservative subset of TeX math into a
// typed expression tree, and provides a mechanical box-layout consumer of
// that tree. It never surfaces an error to its caller: any malformed input
// degrades to a text node holding the trimmed source, per the no-exceptions
// ingestion discipline the rest of this module follows.
package mdmath

// Kind discriminates the MathNode sum type. Like scandown.BlockType, a
// single struct carries a sparse set of payload fields selected by Kind;
// see the per-field comments below for which Kind populates which field.
type Kind int

// Kind values for every MathNode variant.
const (
	Sequence Kind = iota
	Symbol
	Number
	Operator
	Function
	Fraction
	Sqrt
	Scripts
	Delimiter
	Matrix
	Text
	Spacing
	Accent
	Binomial
	Cases
	Aligned
)

func (k Kind) String() string {
	switch k {
	case Sequence:
		return "Sequence"
	case Symbol:
		return "Symbol"
	case Number:
		return "Number"
	case Operator:
		return "Operator"
	case Function:
		return "Function"
	case Fraction:
		return "Fraction"
	case Sqrt:
		return "Sqrt"
	case Scripts:
		return "Scripts"
	case Delimiter:
		return "Delimiter"
	case Matrix:
		return "Matrix"
	case Text:
		return "Text"
	case Spacing:
		return "Spacing"
	case Accent:
		return "Accent"
	case Binomial:
		return "Binomial"
	case Cases:
		return "Cases"
	case Aligned:
		return "Aligned"
	default:
		return "InvalidKind"
	}
}

// SymbolStyle retags a Symbol node, applied recursively by \mathrm, \mathbf,
// and \mathit.
type SymbolStyle int

// SymbolStyle values.
const (
	StylePlain SymbolStyle = iota
	StyleRoman
	StyleBold
	StyleItalic
)

// SpacingWidth selects which fixed-width space a Spacing node renders as.
type SpacingWidth int

// SpacingWidth values, narrowest first.
const (
	SpacingThin SpacingWidth = iota
	SpacingMedium
	SpacingQuad
)

// AccentKind selects which diacritic an Accent node applies to its Body.
type AccentKind int

// AccentKind values.
const (
	AccentHat AccentKind = iota
	AccentBar
	AccentOverline
	AccentVec
)

// MatrixEnv distinguishes a bare matrix from a parenthesized one; both share
// the Matrix Kind and its Rows field.
type MatrixEnv int

// MatrixEnv values.
const (
	EnvMatrix MatrixEnv = iota
	EnvPMatrix
)

// Node is the MathNode sum type. Exactly the fields documented for Kind are
// meaningful; the rest are zero.
type Node struct {
	Kind Kind

	// Sequence: Children holds the concatenated sub-expressions.
	Children []Node

	// Symbol, Number, Operator, Function, Text: Value holds the literal
	// content (a command's canonical "\name" form for Symbol/Operator).
	Value string

	// Symbol only: Style, as retagged by \mathrm/\mathbf/\mathit.
	Style SymbolStyle

	// Fraction, Binomial: Num over Den.
	Num *Node
	Den *Node

	// Sqrt: optional Index (the root degree, from \sqrt[idx]), and the
	// required Radicand.
	Index    *Node
	Radicand *Node

	// Scripts: Base with optional Sup (superscript) and Sub (subscript).
	Base *Node
	Sup  *Node
	Sub  *Node

	// Delimiter: Left/Right hold the canonical delimiter spelling (one of
	// "(" ")" "[" "]" "{" "}" "|" "\\|" "\\langle" "\\rangle" "." where "."
	// means no delimiter), wrapping Body.
	//
	// Accent: Body is the accented group; Accent selects the diacritic.
	Left  string
	Right string
	Body  *Node

	// Matrix: Env selects matrix vs pmatrix. Matrix, Cases, Aligned all use
	// Rows, a grid of per-cell sequences.
	Env  MatrixEnv
	Rows [][]Node

	// Spacing: Space selects the fixed width.
	Space SpacingWidth

	// Accent: which diacritic to draw over Body.
	AccentKind AccentKind
}
