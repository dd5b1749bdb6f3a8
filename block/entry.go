package block

import "github.com/jcorbin/mdstream/token"

// BlockEntry is the Assembler's internal record for one block. It is never
// exposed directly; MakeSnapshot and Block return the read-only BlockSnapshot
// view instead.
type BlockEntry struct {
	ID       BlockID
	Kind     BlockKind
	ParentID BlockID
	HasParent bool
	Depth    int
	ChildIDs []BlockID
	Closed   bool

	Runs     []token.InlineRun // paragraph/heading inline content
	CodeText string            // fenced code raw text
	Table    *TableSnapshot    // table state, non-nil only for Tag == TagTable

	approxBytes uint64
}

// TableSnapshot is the Assembler's view of a table block's accumulated
// state, per spec.md §3.
type TableSnapshot struct {
	HeaderCells       [][]token.InlineRun
	Alignments        []token.Alignment
	Rows              [][][]token.InlineRun
	IsHeaderConfirmed bool
}

// BlockSnapshot is the public, read-only view of one block returned by
// Assembler.Block and within Assembler.MakeSnapshot.
type BlockSnapshot struct {
	ID       BlockID
	Kind     BlockKind
	Runs     []token.InlineRun
	CodeText string
	Table    *TableSnapshot
	IsClosed bool
	ParentID BlockID
	HasParent bool
	Depth    int
	ChildIDs []BlockID
}

func (e *BlockEntry) snapshot() BlockSnapshot {
	return BlockSnapshot{
		ID:        e.ID,
		Kind:      e.Kind,
		Runs:      append([]token.InlineRun(nil), e.Runs...),
		CodeText:  e.CodeText,
		Table:     e.Table.clone(),
		IsClosed:  e.Closed,
		ParentID:  e.ParentID,
		HasParent: e.HasParent,
		Depth:     e.Depth,
		ChildIDs:  append([]BlockID(nil), e.ChildIDs...),
	}
}

func (t *TableSnapshot) clone() *TableSnapshot {
	if t == nil {
		return nil
	}
	c := &TableSnapshot{
		Alignments:        append([]token.Alignment(nil), t.Alignments...),
		IsHeaderConfirmed: t.IsHeaderConfirmed,
	}
	if t.HeaderCells != nil {
		c.HeaderCells = make([][]token.InlineRun, len(t.HeaderCells))
		for i, row := range t.HeaderCells {
			c.HeaderCells[i] = append([]token.InlineRun(nil), row...)
		}
	}
	c.Rows = make([][][]token.InlineRun, len(t.Rows))
	for i, row := range t.Rows {
		c.Rows[i] = make([][]token.InlineRun, len(row))
		for j, cell := range row {
			c.Rows[i][j] = append([]token.InlineRun(nil), cell...)
		}
	}
	return c
}
