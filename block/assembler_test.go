package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdstream/block"
	"github.com/jcorbin/mdstream/token"
)

func applyAll(t *testing.T, as *block.Assembler, tok *token.Tokenizer, chunks ...string) []block.AssemblerDiff {
	t.Helper()
	var diffs []block.AssemblerDiff
	for _, c := range chunks {
		diffs = append(diffs, as.Apply(tok.Feed([]byte(c))))
	}
	diffs = append(diffs, as.Apply(tok.Finish()))
	return diffs
}

func TestAssembler_ParagraphLifecycle(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	diffs := applyAll(t, as, tok, "hello world\n")

	var allChanges []block.Change
	for _, d := range diffs {
		allChanges = append(allChanges, d.Changes...)
	}
	require.Len(t, allChanges, 3)
	assert.Equal(t, block.ChangeBlockStarted, allChanges[0].Tag)
	assert.Equal(t, block.ChangeRunsAppended, allChanges[1].Tag)
	assert.Equal(t, block.ChangeBlockEnded, allChanges[2].Tag)

	require.Equal(t, 1, as.BlockCount())
	snap := as.Block(as.BlockID(0))
	assert.True(t, snap.IsClosed)
	require.Len(t, snap.Runs, 1)
	assert.Equal(t, "hello world", snap.Runs[0].Text)
}

func TestAssembler_VersionOnlyAdvancesOnChange(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())

	d1 := as.Apply(tok.Feed([]byte("partial")))
	assert.Empty(t, d1.Changes)
	assert.Equal(t, uint64(0), d1.DocumentVersion)

	d2 := as.Apply(tok.Feed([]byte(" line\n")))
	assert.NotEmpty(t, d2.Changes)
	assert.Equal(t, uint64(1), d2.DocumentVersion)

	d3 := as.Apply(tok.Feed(nil))
	assert.Empty(t, d3.Changes)
	assert.Equal(t, uint64(1), d3.DocumentVersion)
}

func TestAssembler_NestedBlockquoteParagraph(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as, tok, "> quoted\n")

	require.Equal(t, 2, as.BlockCount())
	bq := as.Block(as.BlockID(0))
	para := as.Block(as.BlockID(1))
	assert.Equal(t, block.TagBlockquote, bq.Kind.Tag)
	assert.Equal(t, block.TagParagraph, para.Kind.Tag)
	assert.True(t, para.HasParent)
	assert.Equal(t, bq.ID, para.ParentID)
	assert.Equal(t, 1, para.Depth)
	assert.Equal(t, []block.BlockID{para.ID}, bq.ChildIDs)
}

func TestAssembler_Table(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as, tok, "a|b\n-|-\n1|2\n")

	require.Equal(t, 1, as.BlockCount())
	snap := as.Block(as.BlockID(0))
	require.NotNil(t, snap.Table)
	assert.True(t, snap.Table.IsHeaderConfirmed)
	require.Len(t, snap.Table.HeaderCells, 2)
	assert.Equal(t, "a", snap.Table.HeaderCells[0][0].Text)
	require.Len(t, snap.Table.Rows, 1)
	assert.Equal(t, "1", snap.Table.Rows[0][0][0].Text)
}

func TestAssembler_FencedCode(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as, tok, "```go\nfmt.Println(1)\n```\n")

	snap := as.Block(as.BlockID(0))
	assert.Equal(t, "go", *snap.Kind.Language)
	assert.Equal(t, "fmt.Println(1)\n", snap.CodeText)
}

func TestAssembler_MaxClosedBlocksDiscardsContiguousPrefix(t *testing.T) {
	tok := token.NewTokenizer()
	cfg := block.DefaultConfig()
	cfg.MaxClosedBlocks = 2
	as := block.NewAssembler(cfg)
	diffs := applyAll(t, as, tok, "one\n\ntwo\n\nthree\n")

	var sawDiscard bool
	for _, d := range diffs {
		for _, c := range d.Changes {
			if c.Tag == block.ChangeBlocksDiscarded {
				sawDiscard = true
				assert.NotEmpty(t, c.DiscardedIDs)
				// Only the oldest closed block ("one") is over the limit.
				assert.Equal(t, []block.BlockID{diffs[0].Changes[0].ID}, c.DiscardedIDs)
			}
		}
	}
	assert.True(t, sawDiscard)
	assert.LessOrEqual(t, as.BlockCount(), 2)
}

func TestAssembler_ReplayEquivalence(t *testing.T) {
	src := "# Title\n\nSome *em* text.\n\n> quoted\n\n- a\n- b\n"

	tok1 := token.NewTokenizer()
	as1 := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as1, tok1, src)

	// Re-run the identical source through a chunked, differently-split
	// feed and confirm the final snapshots agree: replay equivalence
	// does not depend on how the bytes were divided into chunks.
	tok2 := token.NewTokenizer()
	as2 := block.NewAssembler(block.DefaultConfig())
	mid := len(src) / 3
	applyAll(t, as2, tok2, src[:mid], src[mid:])

	require.Equal(t, as1.BlockCount(), as2.BlockCount())
	for i := 0; i < as1.BlockCount(); i++ {
		s1 := as1.Block(as1.BlockID(i))
		s2 := as2.Block(as2.BlockID(i))
		assert.Equal(t, s1.Kind, s2.Kind)
		assert.Equal(t, s1.Runs, s2.Runs)
	}
}

// replayBlock is a minimal, test-only reconstruction of one block's state,
// built solely from a Change log -- it deliberately does not reuse any
// Assembler internals, so that a match against MakeSnapshot() actually
// exercises the Change log's self-sufficiency (spec.md §8 replay
// equivalence), not just the live Assembler replaying itself.
type replayBlock struct {
	kind      block.BlockKind
	runs      []token.InlineRun
	codeText  string
	table     *block.TableSnapshot
	closed    bool
}

func replayChanges(changes []block.Change) (order []block.BlockID, blocks map[block.BlockID]*replayBlock) {
	blocks = make(map[block.BlockID]*replayBlock)
	for _, c := range changes {
		switch c.Tag {
		case block.ChangeBlockStarted:
			b := &replayBlock{kind: c.Kind}
			if c.Kind.Tag == block.TagTable {
				b.table = &block.TableSnapshot{}
			}
			blocks[c.ID] = b
			order = append(order, c.ID)
		case block.ChangeRunsAppended:
			blocks[c.ID].runs = append(blocks[c.ID].runs, c.Runs...)
		case block.ChangeCodeAppended:
			blocks[c.ID].codeText += c.Code
		case block.ChangeTableHeaderConfirmed:
			b := blocks[c.ID]
			b.table.Alignments = append([]token.Alignment(nil), c.Alignments...)
			b.table.HeaderCells = append([][]token.InlineRun(nil), c.Cells...)
			b.table.IsHeaderConfirmed = true
		case block.ChangeTableRowAppended:
			b := blocks[c.ID]
			b.table.Rows = append(b.table.Rows, c.Cells)
		case block.ChangeBlockEnded:
			blocks[c.ID].closed = true
		case block.ChangeBlocksDiscarded:
			for _, id := range c.DiscardedIDs {
				delete(blocks, id)
			}
			for len(order) > 0 {
				if _, ok := blocks[order[0]]; ok {
					break
				}
				order = order[1:]
			}
		}
	}
	return order, blocks
}

func TestAssembler_ReplayFromChangeLog(t *testing.T) {
	src := "a|b\n-|-\n1|2\n\n```go\nfmt.Println(1)\n```\n\n# Title\n\nbody *em* text\n"

	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	diffs := applyAll(t, as, tok, src)

	var allChanges []block.Change
	for _, d := range diffs {
		allChanges = append(allChanges, d.Changes...)
	}

	order, replayed := replayChanges(allChanges)
	require.Equal(t, as.BlockCount(), len(order))

	for i, id := range order {
		live := as.Block(as.BlockID(i))
		require.Equal(t, live.ID, id)
		got := replayed[id]
		require.NotNil(t, got)
		assert.Equal(t, live.Kind, got.kind)
		assert.Equal(t, live.Runs, got.runs)
		assert.Equal(t, live.CodeText, got.codeText)
		assert.Equal(t, live.Table, got.table)
		assert.Equal(t, live.IsClosed, got.closed)
	}
}

func TestAssembler_NoCrossStyleCoalesce(t *testing.T) {
	cfg := block.DefaultConfig()
	cfg.CoalescePlainRuns = true
	as := block.NewAssembler(cfg)

	d1 := as.Apply(token.ChunkResult{Events: []token.Event{
		{Tag: token.EventBlockStart, ID: 1, Kind: token.Paragraph()},
	}})
	assert.NotEmpty(t, d1.Changes)

	runs := []token.InlineRun{
		{Text: "a"},
		{Text: "b", Style: token.StyleLink, LinkURL: "url"},
		{Text: "c"},
	}
	as.Apply(token.ChunkResult{Events: []token.Event{
		{Tag: token.EventBlockAppendInline, ID: 1, Runs: runs},
	}})

	snap := as.Block(1)
	require.Len(t, snap.Runs, 3)
	assert.Equal(t, runs, snap.Runs)
}

func TestAssembler_MakeSnapshot(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as, tok, "# Title\n\nbody\n")

	snap := as.MakeSnapshot()
	assert.Equal(t, as.DocumentVersion(), snap.DocumentVersion)
	require.Len(t, snap.Blocks, 2)
	assert.Equal(t, block.TagHeading, snap.Blocks[0].Kind.Tag)
	assert.Equal(t, block.TagParagraph, snap.Blocks[1].Kind.Tag)
}

func TestAssembler_OrphanEventDropped(t *testing.T) {
	as := block.NewAssembler(block.DefaultConfig())
	d := as.Apply(token.ChunkResult{Events: []token.Event{
		{Tag: token.EventBlockAppendInline, ID: 999, Runs: []token.InlineRun{{Text: "x"}}},
	}})
	assert.Empty(t, d.Changes)
	assert.Equal(t, uint64(0), d.DocumentVersion)
	assert.Equal(t, 0, as.BlockCount())
}

func TestAssembler_WriteAfterCloseDropped(t *testing.T) {
	tok := token.NewTokenizer()
	as := block.NewAssembler(block.DefaultConfig())
	applyAll(t, as, tok, "hello\n\n")

	id := as.BlockID(0)
	before := as.Block(id)
	beforeVersion := as.DocumentVersion()

	d := as.Apply(token.ChunkResult{Events: []token.Event{
		{Tag: token.EventBlockAppendInline, ID: id, Runs: []token.InlineRun{{Text: "too late"}}},
	}})

	assert.Empty(t, d.Changes)
	assert.Equal(t, beforeVersion, as.DocumentVersion())
	assert.Equal(t, before, as.Block(id))
}

func TestAssembler_BlockIDPanicsOutOfRange(t *testing.T) {
	as := block.NewAssembler(block.DefaultConfig())
	assert.Panics(t, func() { as.BlockID(0) })
}

func TestAssembler_BlockPanicsOnUnknownID(t *testing.T) {
	as := block.NewAssembler(block.DefaultConfig())
	assert.Panics(t, func() { as.Block(999) })
}
