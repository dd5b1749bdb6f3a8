package block

import "github.com/jcorbin/mdstream/token"

// BlockKind and the BlockTag enumeration are the Assembler's
// view of a block's shape; they are simply re-exported from token, which
// already defines the sum type the Tokenizer emits in BlockStart events.
// Keeping one definition avoids a duplicate (and possibly diverging) copy.
type BlockKind = token.BlockKind

// BlockTag re-exports token.BlockTag.
type BlockTag = token.BlockTag

// Tag constant re-exports.
const (
	TagParagraph     = token.TagParagraph
	TagHeading       = token.TagHeading
	TagBlockquote    = token.TagBlockquote
	TagListItem      = token.TagListItem
	TagFencedCode    = token.TagFencedCode
	TagMath          = token.TagMath
	TagTable         = token.TagTable
	TagHorizontalRule = token.TagHorizontalRule
	TagUnknown       = token.TagUnknown
)
