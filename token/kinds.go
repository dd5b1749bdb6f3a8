// Package token implements the streaming Tokenizer: it scans chunks of
// Markdown bytes into a flat Event stream describing block opens/closes,
// inline content, fenced-code text, and table rows, without ever building
// a tree itself (that is the Assembler's job, one layer up).
//
// Like scandown.Block, BlockKind is a tagged sum type: a single struct
// carrying a sparse set of fields selected by Tag.
package token

import (
	"fmt"
	"io"
)

// BlockTag discriminates the BlockKind sum type.
type BlockTag int

// BlockTag values.
const (
	TagParagraph BlockTag = iota
	TagHeading
	TagBlockquote
	TagListItem
	TagFencedCode
	TagMath
	TagTable
	TagHorizontalRule
	TagUnknown
)

func (t BlockTag) String() string {
	switch t {
	case TagParagraph:
		return "Paragraph"
	case TagHeading:
		return "Heading"
	case TagBlockquote:
		return "Blockquote"
	case TagListItem:
		return "ListItem"
	case TagFencedCode:
		return "FencedCode"
	case TagMath:
		return "Math"
	case TagTable:
		return "Table"
	case TagHorizontalRule:
		return "HorizontalRule"
	case TagUnknown:
		return "Unknown"
	default:
		return "InvalidTag"
	}
}

// TaskState is a list item's optional checkbox state.
type TaskState struct {
	Checked bool
}

// BlockKind is the tagged block-kind sum type of spec.md §3. Only the
// fields documented for a given Tag are meaningful.
type BlockKind struct {
	Tag BlockTag

	// Heading: 1-6.
	Level int

	// ListItem.
	Ordered bool
	Index   *int
	Task    *TaskState

	// FencedCode: language tag, nil when absent.
	Language *string

	// Math: display (block, $$.../\[...\]) vs inline-nested-in-paragraph
	// (handled instead as an InlineRun.Math payload).
	Display bool
}

// Paragraph returns a paragraph BlockKind.
func Paragraph() BlockKind { return BlockKind{Tag: TagParagraph} }

// Heading returns a heading BlockKind of the given level (1-6).
func Heading(level int) BlockKind { return BlockKind{Tag: TagHeading, Level: level} }

// Blockquote returns a blockquote BlockKind.
func Blockquote() BlockKind { return BlockKind{Tag: TagBlockquote} }

// ListItem returns a list-item BlockKind.
func ListItem(ordered bool, index *int, task *TaskState) BlockKind {
	return BlockKind{Tag: TagListItem, Ordered: ordered, Index: index, Task: task}
}

// FencedCode returns a fenced-code BlockKind.
func FencedCode(language *string) BlockKind {
	return BlockKind{Tag: TagFencedCode, Language: language}
}

// MathBlock returns a display-math BlockKind.
func MathBlock() BlockKind { return BlockKind{Tag: TagMath, Display: true} }

// Table returns a table BlockKind.
func Table() BlockKind { return BlockKind{Tag: TagTable} }

// HorizontalRule returns a horizontal-rule BlockKind.
func HorizontalRule() BlockKind { return BlockKind{Tag: TagHorizontalRule} }

// Unknown returns the fallback BlockKind for constructs outside the
// recognized subset; its content is still absorbed as plain text, never
// rejected (spec.md §1's no-exceptions ingestion rule).
func Unknown() BlockKind { return BlockKind{Tag: TagUnknown} }

// Format writes a textual representation of k, providing improved
// fmt.Printf display: a verbose "Tag attr=value" form with "%+v", a terse
// "Tag" form otherwise (headings append their level, e.g. "Heading2").
func (k BlockKind) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		switch k.Tag {
		case TagHeading:
			fmt.Fprintf(f, "%v level=%v", k.Tag, k.Level)
		case TagListItem:
			if k.Task != nil {
				fmt.Fprintf(f, "%v ordered=%v task checked=%v", k.Tag, k.Ordered, k.Task.Checked)
			} else {
				fmt.Fprintf(f, "%v ordered=%v", k.Tag, k.Ordered)
			}
		case TagFencedCode:
			if k.Language != nil {
				fmt.Fprintf(f, "%v lang=%q", k.Tag, *k.Language)
			} else {
				io.WriteString(f, k.Tag.String())
			}
		default:
			io.WriteString(f, k.Tag.String())
		}
		return
	}
	switch k.Tag {
	case TagHeading:
		fmt.Fprintf(f, "%v%v", k.Tag, k.Level)
	default:
		io.WriteString(f, k.Tag.String())
	}
}
