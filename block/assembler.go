// Package block implements the Assembler: it consumes the flat Event
// stream a token.Tokenizer produces and maintains the block tree it
// describes, emitting a minimal ordered diff (spec.md §3, §7) for each
// chunk applied.
//
// Because the Tokenizer always emits events for one document in strict
// left-to-right order (a single streaming producer, never reordered),
// the Assembler's positional bookkeeping collapses to simple sequential
// append: spec.md §4.5's general insertion-position rule is satisfied
// trivially here, since a new block's BlockStart event always arrives
// exactly when it should be appended at the tail of the arena.
package block

import "github.com/jcorbin/mdstream/token"

// Assembler owns the block tree and produces AssemblerDiffs as chunks of
// token.Event are applied to it. Like the rest of this module, it follows
// a single-writer discipline: concurrent calls to Apply are not supported
// and must be serialized by the caller.
type Assembler struct {
	arena   *arena
	cfg     Config
	version uint64

	openStack   []BlockID // currently open blocks, outermost first
	approxBytes uint64
}

// NewAssembler returns an Assembler configured with cfg.
func NewAssembler(cfg Config) *Assembler {
	return &Assembler{arena: newArena(), cfg: cfg}
}

// Apply consumes the events in cr and returns the resulting diff. An empty
// Events slice produces a diff with no Changes and an unchanged
// DocumentVersion (spec.md §7's monotone-version law).
func (as *Assembler) Apply(cr token.ChunkResult) AssemblerDiff {
	var d AssemblerDiff
	for _, ev := range cr.Events {
		as.applyEvent(ev, &d)
	}
	as.enforceLimits(&d)
	if len(d.Changes) > 0 {
		as.version++
	}
	d.DocumentVersion = as.version
	return d
}

func (as *Assembler) applyEvent(ev token.Event, d *AssemblerDiff) {
	switch ev.Tag {
	case token.EventBlockStart:
		as.start(ev, d)
	case token.EventBlockAppendInline:
		as.appendRuns(ev.ID, ev.Runs, d)
	case token.EventBlockAppendFencedCode:
		as.appendCode(ev.ID, ev.Text, d)
	case token.EventTableHeaderCandidate:
		as.setTableHeaderCandidate(ev.ID, ev.Cells)
	case token.EventTableHeaderConfirmed:
		as.confirmTableHeader(ev.ID, ev.Alignments, d)
	case token.EventTableAppendRow:
		as.appendTableRow(ev.ID, ev.Cells, d)
	case token.EventBlockEnd:
		as.end(ev.ID, d)
	}
}

func (as *Assembler) start(ev token.Event, d *AssemblerDiff) {
	e := BlockEntry{
		ID:        ev.ID,
		Kind:      ev.Kind,
		ParentID:  ev.ParentID,
		HasParent: ev.HasParent,
	}
	if ev.HasParent {
		if parent, ok := as.arena.get(ev.ParentID); ok {
			e.Depth = parent.Depth + 1
			parent.ChildIDs = append(parent.ChildIDs, ev.ID)
		}
	}
	if ev.Kind.Tag == token.TagTable {
		e.Table = &TableSnapshot{}
	}
	as.arena.append(e)
	as.openStack = append(as.openStack, ev.ID)

	d.Changes = append(d.Changes, Change{
		Tag: ChangeBlockStarted, ID: ev.ID,
		ParentID: ev.ParentID, HasParent: ev.HasParent, Kind: ev.Kind,
	})
}

// setTableHeaderCandidate records a not-yet-confirmed header row. Per the
// "no speculative events" rule, this updates state (and approxBytes) without
// emitting a Change, whether it is the first candidate or a replacement; a
// later EventTableHeaderConfirmed is what callers actually observe.
func (as *Assembler) setTableHeaderCandidate(id BlockID, cells [][]token.InlineRun) {
	e, ok := as.arena.get(id)
	if !ok || e.Closed || e.Table == nil {
		return
	}
	row := make([][]token.InlineRun, len(cells))
	copy(row, cells)
	e.Table.HeaderCells = row
	as.recomputeBytes(e)
}

func (as *Assembler) appendRuns(id BlockID, runs []token.InlineRun, d *AssemblerDiff) {
	e, ok := as.arena.get(id)
	if !ok || e.Closed || len(runs) == 0 {
		return
	}
	for _, r := range runs {
		as.appendRun(e, r)
	}
	as.recomputeBytes(e)
	d.Changes = append(d.Changes, Change{Tag: ChangeRunsAppended, ID: id, Runs: append([]token.InlineRun(nil), runs...)})
}

func (as *Assembler) appendRun(e *BlockEntry, r token.InlineRun) {
	if as.cfg.CoalescePlainRuns {
		if n := len(e.Runs); n > 0 && token.Coalescable(e.Runs[n-1], r) {
			e.Runs[n-1].Text += r.Text
			return
		}
	}
	e.Runs = append(e.Runs, r)
}

func (as *Assembler) appendCode(id BlockID, text string, d *AssemblerDiff) {
	e, ok := as.arena.get(id)
	if !ok || e.Closed || text == "" {
		return
	}
	e.CodeText += text
	as.recomputeBytes(e)
	d.Changes = append(d.Changes, Change{Tag: ChangeCodeAppended, ID: id, Code: text})
}

func (as *Assembler) confirmTableHeader(id BlockID, aligns []token.Alignment, d *AssemblerDiff) {
	e, ok := as.arena.get(id)
	if !ok || e.Closed || e.Table == nil {
		return
	}
	e.Table.Alignments = append([]token.Alignment(nil), aligns...)
	e.Table.IsHeaderConfirmed = true
	as.recomputeBytes(e)
	// The header cells ride along on confirmation, even though they were
	// already written into state by an earlier (diff-silent) candidate:
	// this is the first point at which they stop being speculative, so
	// it's the only opportunity for an external Change-log replay to ever
	// observe them.
	headerCells := make([][]token.InlineRun, len(e.Table.HeaderCells))
	copy(headerCells, e.Table.HeaderCells)
	d.Changes = append(d.Changes, Change{
		Tag: ChangeTableHeaderConfirmed, ID: id,
		Alignments: append([]token.Alignment(nil), aligns...),
		Cells:      headerCells,
	})
}

func (as *Assembler) appendTableRow(id BlockID, cells [][]token.InlineRun, d *AssemblerDiff) {
	e, ok := as.arena.get(id)
	if !ok || e.Closed || e.Table == nil {
		return
	}
	row := make([][]token.InlineRun, len(cells))
	copy(row, cells)
	e.Table.Rows = append(e.Table.Rows, row)
	as.recomputeBytes(e)
	d.Changes = append(d.Changes, Change{Tag: ChangeTableRowAppended, ID: id, Cells: row})
}

func (as *Assembler) end(id BlockID, d *AssemblerDiff) {
	e, ok := as.arena.get(id)
	if !ok {
		return
	}
	e.Closed = true
	for i, openID := range as.openStack {
		if openID == id {
			as.openStack = append(as.openStack[:i], as.openStack[i+1:]...)
			break
		}
	}
	d.Changes = append(d.Changes, Change{Tag: ChangeBlockEnded, ID: id})
}

// BlockCount returns the number of blocks currently retained (closed
// blocks beyond the configured limits may already have been discarded).
func (as *Assembler) BlockCount() int { return as.arena.len() }

// BlockID returns the id of the block at document position i (0-based,
// among currently retained blocks). It panics if i is out of range: this
// is a programmer-error precondition, not a recoverable parse failure.
func (as *Assembler) BlockID(i int) BlockID {
	if i < 0 || i >= as.arena.len() {
		panic("block: BlockID index out of range")
	}
	return as.arena.at(i).ID
}

// Block returns a snapshot of the block with the given id. It panics if id
// is unknown or has already been discarded: callers are expected to only
// ever query ids they themselves observed via Apply or OpenBlocks.
func (as *Assembler) Block(id BlockID) BlockSnapshot {
	e, ok := as.arena.get(id)
	if !ok {
		panic("block: unknown BlockID")
	}
	return e.snapshot()
}

// DocumentVersion returns the Assembler's current version counter.
func (as *Assembler) DocumentVersion() uint64 { return as.version }

// MakeSnapshot returns a JSON-marshalable view of every currently retained
// block, in document order. It is a convenience for hosts that want to
// persist or inspect the whole tree at once (see cmd/mdstream), rather than
// walking BlockCount/BlockID/Block themselves.
func (as *Assembler) MakeSnapshot() DocumentSnapshot {
	blocks := make([]BlockSnapshot, as.arena.len())
	for i := range blocks {
		blocks[i] = as.arena.at(i).snapshot()
	}
	return DocumentSnapshot{DocumentVersion: as.version, Blocks: blocks}
}

// DocumentSnapshot is the full-document view returned by MakeSnapshot.
type DocumentSnapshot struct {
	DocumentVersion uint64
	Blocks          []BlockSnapshot
}

func (as *Assembler) recomputeBytes(e *BlockEntry) {
	as.approxBytes -= e.approxBytes
	e.approxBytes = approxBytesOf(e)
	as.approxBytes += e.approxBytes
}

func approxBytesOf(e *BlockEntry) uint64 {
	var n uint64
	for _, r := range e.Runs {
		n += uint64(len(r.Text))
	}
	n += uint64(len(e.CodeText))
	if e.Table != nil {
		for _, row := range e.Table.HeaderCells {
			for _, cell := range row {
				n += uint64(len(cell.Text))
			}
		}
		for _, row := range e.Table.Rows {
			for _, cell := range row {
				for _, r := range cell {
					n += uint64(len(r.Text))
				}
			}
		}
	}
	return n
}

// enforceLimits discards blocks from the contiguous prefix of closed
// blocks, oldest first, until both MaxClosedBlocks and MaxBytesApprox, if
// set, are satisfied, or until that prefix is used up. A closed block that
// follows a still-open one is never discarded.
func (as *Assembler) enforceLimits(d *AssemblerDiff) {
	for {
		closedPrefix := as.closedPrefixLen()
		if closedPrefix == 0 {
			return
		}
		closedTotal := as.closedCount()
		exceedsCount := closedTotal > int(as.cfg.MaxClosedBlocks)
		exceedsBytes := as.cfg.MaxBytesApprox != nil && as.approxBytes > *as.cfg.MaxBytesApprox
		if !exceedsCount && !exceedsBytes {
			return
		}

		n := 1
		if exceedsCount {
			if over := closedTotal - int(as.cfg.MaxClosedBlocks); over > n {
				n = over
			}
		}
		if n > closedPrefix {
			n = closedPrefix
		}

		var freed uint64
		for i := 0; i < n; i++ {
			freed += as.arena.at(i).approxBytes
		}
		discarded := as.arena.truncatePrefix(n)
		// recomputeBytes keeps as.approxBytes equal to the sum of every
		// retained entry's approxBytes, so subtracting freed cannot
		// underflow.
		as.approxBytes -= freed

		d.Changes = append(d.Changes, Change{Tag: ChangeBlocksDiscarded, DiscardedIDs: discarded})
	}
}

func (as *Assembler) closedPrefixLen() int {
	n := 0
	for n < as.arena.len() && as.arena.at(n).Closed {
		n++
	}
	return n
}

func (as *Assembler) closedCount() int {
	n := 0
	for i := 0; i < as.arena.len(); i++ {
		if as.arena.at(i).Closed {
			n++
		}
	}
	return n
}
