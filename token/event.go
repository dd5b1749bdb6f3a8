package token

// BlockID is an opaque, monotonically increasing identifier the Tokenizer
// assigns when it opens a block. It is never reused within one Tokenizer's
// lifetime.
type BlockID int

// EventTag discriminates the Event sum type (spec.md §4.4).
type EventTag int

// EventTag values.
const (
	EventBlockStart EventTag = iota
	EventBlockAppendInline
	EventBlockAppendFencedCode
	EventTableHeaderCandidate
	EventTableHeaderConfirmed
	EventTableAppendRow
	EventBlockEnd
)

func (t EventTag) String() string {
	switch t {
	case EventBlockStart:
		return "BlockStart"
	case EventBlockAppendInline:
		return "BlockAppendInline"
	case EventBlockAppendFencedCode:
		return "BlockAppendFencedCode"
	case EventTableHeaderCandidate:
		return "TableHeaderCandidate"
	case EventTableHeaderConfirmed:
		return "TableHeaderConfirmed"
	case EventTableAppendRow:
		return "TableAppendRow"
	case EventBlockEnd:
		return "BlockEnd"
	default:
		return "InvalidEventTag"
	}
}

// Event is one item of the flat stream a Tokenizer chunk produces. Only the
// fields documented for a given Tag are meaningful.
type Event struct {
	Tag EventTag
	ID  BlockID

	ParentID BlockID // BlockStart only; zero-value 0 means "top level"
	HasParent bool

	Kind BlockKind // BlockStart

	Runs []InlineRun // BlockAppendInline

	Text string // BlockAppendFencedCode

	Cells       [][]InlineRun // TableHeaderCandidate, TableAppendRow
	Alignments  []Alignment   // TableHeaderConfirmed
}

func blockStart(id, parent BlockID, hasParent bool, kind BlockKind) Event {
	return Event{Tag: EventBlockStart, ID: id, ParentID: parent, HasParent: hasParent, Kind: kind}
}

func blockAppendInline(id BlockID, runs []InlineRun) Event {
	return Event{Tag: EventBlockAppendInline, ID: id, Runs: runs}
}

func blockAppendFencedCode(id BlockID, text string) Event {
	return Event{Tag: EventBlockAppendFencedCode, ID: id, Text: text}
}

func tableHeaderCandidate(id BlockID, cells [][]InlineRun) Event {
	return Event{Tag: EventTableHeaderCandidate, ID: id, Cells: cells}
}

func tableHeaderConfirmed(id BlockID, alignments []Alignment) Event {
	return Event{Tag: EventTableHeaderConfirmed, ID: id, Alignments: alignments}
}

func tableAppendRow(id BlockID, cells [][]InlineRun) Event {
	return Event{Tag: EventTableAppendRow, ID: id, Cells: cells}
}

func blockEnd(id BlockID) Event {
	return Event{Tag: EventBlockEnd, ID: id}
}

// OpenBlockState describes one currently-open block, outermost first, as
// reported alongside every ChunkResult.
type OpenBlockState struct {
	ID   BlockID
	Kind BlockKind
}

// ChunkResult is what Feed and Finish return: the events produced by that
// call, and the tokenizer's open-block stack as of the end of the call.
type ChunkResult struct {
	Events     []Event
	OpenBlocks []OpenBlockState
}
