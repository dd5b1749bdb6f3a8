package block

import "github.com/jcorbin/mdstream/token"

// ChangeTag discriminates the Change sum type of spec.md §3.
type ChangeTag int

// ChangeTag values.
const (
	ChangeBlockStarted ChangeTag = iota
	ChangeRunsAppended
	ChangeCodeAppended
	ChangeTableHeaderConfirmed
	ChangeTableRowAppended
	ChangeBlockEnded
	ChangeBlocksDiscarded
)

func (t ChangeTag) String() string {
	switch t {
	case ChangeBlockStarted:
		return "BlockStarted"
	case ChangeRunsAppended:
		return "RunsAppended"
	case ChangeCodeAppended:
		return "CodeAppended"
	case ChangeTableHeaderConfirmed:
		return "TableHeaderConfirmed"
	case ChangeTableRowAppended:
		return "TableRowAppended"
	case ChangeBlockEnded:
		return "BlockEnded"
	case ChangeBlocksDiscarded:
		return "BlocksDiscarded"
	default:
		return "InvalidChangeTag"
	}
}

// Change is one ordered, minimal diff entry, per spec.md §3 and §7.
type Change struct {
	Tag ChangeTag
	ID  BlockID

	ParentID  BlockID // BlockStarted
	HasParent bool
	Kind      BlockKind // BlockStarted

	Runs []token.InlineRun // RunsAppended

	Code string // CodeAppended

	Alignments []token.Alignment   // TableHeaderConfirmed
	Cells      [][]token.InlineRun // TableRowAppended; TableHeaderConfirmed (the now-final header row)

	DiscardedIDs []BlockID // BlocksDiscarded, oldest first
}

// AssemblerDiff is what Apply returns: the DocumentVersion after applying
// the chunk, and the ordered Changes that produced it. DocumentVersion
// only increments when Changes is non-empty (spec.md §7's monotone-version
// law).
type AssemblerDiff struct {
	DocumentVersion uint64
	Changes         []Change
}
