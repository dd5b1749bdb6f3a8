// Package mdconform is a test-only conformance oracle. It parses a
// complete markdown document with blackfriday and reduces its AST to the
// same coarse block-kind sequence the Tokenizer/Assembler pair produces,
// so token/block tests can sanity-check against an independent parser
// rather than only against each other.
//
// It is deliberately not wired into the streaming pipeline itself: the
// whole point of this module is a from-scratch incremental scanner, and
// handing the real work to blackfriday would defeat that. Its only job
// here is as a second opinion over complete (non-streamed) input.
package mdconform

import (
	"github.com/russross/blackfriday"
)

// BlockKind is mdconform's own coarse classification, independent of
// token.BlockTag, so a mismatch in naming can't hide a mismatch in
// substance.
type BlockKind string

// BlockKind values.
const (
	KindParagraph      BlockKind = "paragraph"
	KindHeading        BlockKind = "heading"
	KindBlockquote     BlockKind = "blockquote"
	KindListItem       BlockKind = "listItem"
	KindFencedCode     BlockKind = "fencedCode"
	KindHorizontalRule BlockKind = "horizontalRule"
	KindTable          BlockKind = "table"
	KindOther          BlockKind = "other"
)

var extensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.BackslashLineBreak

// BlockSequence parses src and returns the depth-first sequence of block
// kinds blackfriday recognizes, skipping inline and leaf text nodes
// entirely. List container nodes are skipped too, since this module (like
// the Tokenizer it checks) has no separate "list" kind: each Item is its
// own block.
func BlockSequence(src []byte) []BlockKind {
	md := blackfriday.New(blackfriday.WithExtensions(extensions))
	doc := md.Parse(src)

	var kinds []BlockKind
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch n.Type {
		case blackfriday.Paragraph:
			kinds = append(kinds, KindParagraph)
		case blackfriday.Heading:
			kinds = append(kinds, KindHeading)
		case blackfriday.BlockQuote:
			kinds = append(kinds, KindBlockquote)
		case blackfriday.Item:
			kinds = append(kinds, KindListItem)
		case blackfriday.CodeBlock:
			kinds = append(kinds, KindFencedCode)
		case blackfriday.HorizontalRule:
			kinds = append(kinds, KindHorizontalRule)
		case blackfriday.Table:
			kinds = append(kinds, KindTable)
		case blackfriday.Document, blackfriday.List,
			blackfriday.TableHead, blackfriday.TableBody,
			blackfriday.TableRow, blackfriday.TableCell,
			blackfriday.Text, blackfriday.Softbreak, blackfriday.Hardbreak,
			blackfriday.Code, blackfriday.Emph, blackfriday.Strong,
			blackfriday.Del, blackfriday.Link, blackfriday.Image, blackfriday.HTMLSpan:
			// Skipped: containers with no kind of their own, or inline
			// content this oracle doesn't compare.
		default:
			kinds = append(kinds, KindOther)
		}
		return blackfriday.GoToNext
	})
	return kinds
}
