package token

import (
	"bytes"
	"strings"

	"github.com/jcorbin/mdstream/internal/textbuf"
	"github.com/jcorbin/mdstream/mdmath"
)

type containerKind int

const (
	containerBlockquote containerKind = iota
	containerListItem
)

type container struct {
	id      BlockID
	kind    containerKind
	ordered bool
	indent  int // indent consumed by the marker itself
}

type leafKind int

const (
	leafNone leafKind = iota
	leafParagraph
	leafFencedCode
	leafMathBlock
	leafTable
)

type leafState struct {
	id   BlockID
	kind leafKind

	// paragraph: raw accumulator of joined line text (soft breaks as '\n',
	// hard breaks as '\r'), plus how much of it has already been emitted.
	raw      strings.Builder
	emitted  int
	lastLine []byte // most recently appended raw line, for hard-break detection

	// fenced code
	fenceByte  byte
	fenceWidth int
	lang       string

	// math block: which closing delimiter was opened with ("$$" or `\]`)
	mathClose string

	// table
	table tableBuildState
}

type tableBuildState struct {
	headerCandidate [][]InlineRun
	confirmed       bool
	alignments      []Alignment
}

// Tokenizer incrementally scans Markdown chunks into Events, per spec.md
// §4.4. It never blocks on more input than it has: any unfinished tail
// construct (an open fence, an unclosed emphasis run, a table header
// candidate awaiting its delimiter row) is buffered internally until Feed
// supplies more bytes or Finish forces it closed.
type Tokenizer struct {
	tail    textbuf.StreamBuffer // bytes of the current incomplete line
	nextID  BlockID
	containers []container
	leaf    *leafState

	pendingTableHeader *tableHeaderPending
}

// tableHeaderPending holds a candidate header row whose confirmation
// depends on the line that follows it.
type tableHeaderPending struct {
	cells []string
}

// NewTokenizer returns an empty Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{nextID: 1}
}

// Feed appends chunk and returns the events it produced, plus the open
// block stack as of the end of the call.
func (t *Tokenizer) Feed(chunk []byte) ChunkResult {
	var r chunkCollector
	t.tail.Append(chunk)
	for {
		buf := t.tail.Bytes()
		nl := bytes.IndexByte(buf, '\n')
		if nl < 0 {
			break
		}
		line := trimNewline(buf[:nl+1])
		t.processLine(line, &r)
		t.tail.Discard(nl + 1)
	}
	return ChunkResult{Events: r.events, OpenBlocks: t.openBlocks()}
}

// Finish forces any remaining buffered partial line and any still-open
// blocks to close, and returns the final events.
func (t *Tokenizer) Finish() ChunkResult {
	var r chunkCollector
	if rest := t.tail.Bytes(); len(rest) > 0 {
		t.processLine(rest, &r)
		t.tail.Discard(len(rest))
	}
	r.events = append(r.events, t.demoteAnyPendingTableHeader()...)
	t.closeAll(&r)
	return ChunkResult{Events: r.events, OpenBlocks: t.openBlocks()}
}

type chunkCollector struct {
	events []Event
}

func (t *Tokenizer) openBlocks() []OpenBlockState {
	var open []OpenBlockState
	for _, c := range t.containers {
		open = append(open, OpenBlockState{ID: c.id, Kind: t.containerKind(c)})
	}
	if t.leaf != nil {
		open = append(open, OpenBlockState{ID: t.leaf.id, Kind: t.leafKindOf(t.leaf)})
	}
	return open
}

func (t *Tokenizer) containerKind(c container) BlockKind {
	if c.kind == containerBlockquote {
		return Blockquote()
	}
	return ListItem(c.ordered, nil, nil)
}

func (t *Tokenizer) leafKindOf(l *leafState) BlockKind {
	switch l.kind {
	case leafFencedCode:
		var lang *string
		if l.language() != "" {
			s := l.language()
			lang = &s
		}
		return FencedCode(lang)
	case leafMathBlock:
		return MathBlock()
	case leafTable:
		return Table()
	default:
		return Paragraph()
	}
}

func (l *leafState) language() string { return l.lang }

// matchContainers reports how many leading containers still apply to line,
// and the remaining bytes after their markers.
func (t *Tokenizer) matchContainers(line []byte) (matched int, rest []byte) {
	rest = line
	for matched < len(t.containers) {
		c := t.containers[matched]
		var ok bool
		switch c.kind {
		case containerBlockquote:
			ok, rest = quoteMarker(rest)
		case containerListItem:
			in, tail := trimIndent(rest, 0, c.indent)
			ok = in == c.indent || len(bytes.TrimSpace(tail)) == 0
			rest = tail
		}
		if !ok {
			return matched, rest
		}
		matched++
	}
	return matched, rest
}

func (t *Tokenizer) allocID() BlockID {
	id := t.nextID
	t.nextID++
	return id
}

func (t *Tokenizer) parentID() (BlockID, bool) {
	if n := len(t.containers); n > 0 {
		return t.containers[n-1].id, true
	}
	return 0, false
}

func (t *Tokenizer) processLine(line []byte, r *chunkCollector) {
	matched, rest := t.matchContainers(line)

	// Continue an already-open leaf that still sits under a fully-matched
	// container prefix, before considering any new block.
	if matched == len(t.containers) && t.leaf != nil {
		switch t.leaf.kind {
		case leafFencedCode:
			t.continueFencedCode(rest, r)
			return
		case leafMathBlock:
			t.continueMathBlock(rest, r)
			return
		case leafTable:
			if t.continueTable(rest, r) {
				return
			}
		}
	}

	// Close anything the line no longer matches (no lazy continuation: a
	// conservative simplification of full CommonMark).
	if matched < len(t.containers) {
		t.closeLeaf(r)
		t.closeContainersFrom(matched, r)
	}

	t.openOrContinue(rest, r)
}

func (t *Tokenizer) openOrContinue(line []byte, r *chunkCollector) {
	pushedThisLine := false

	for {
		if isBlankLine(line) {
			t.closeLeaf(r)
			r.events = append(r.events, t.demoteAnyPendingTableHeader()...)
			return
		}

		_, indented := trimIndent(line, 0, 3)

		if f, _, tail := fence(indented, 3, '`', '~'); f != 0 {
			t.openFencedCode(f, len(indented)-len(tail), tail, r)
			return
		}

		trimmed := trimSpaceBytes(line)
		if bytes.HasPrefix(trimmed, []byte("$$")) {
			t.closeLeaf(r)
			t.openMathBlock(trimmed[2:], "$$", r)
			return
		}
		if bytes.HasPrefix(trimmed, []byte(`\[`)) {
			t.closeLeaf(r)
			t.openMathBlock(trimmed[2:], `\]`, r)
			return
		}

		if d, _, _ := ruler(trimmed, '-', '_', '*'); d != 0 {
			t.closeLeaf(r)
			t.openAndCloseRuler(r)
			return
		}

		if ok, level, content := atxHeading(indented); ok {
			t.closeLeaf(r)
			t.openAndCloseHeading(level, content, r)
			return
		}

		if ok, tail := quoteMarker(line); ok {
			t.closeLeaf(r)
			id := t.allocID()
			parent, hasParent := t.parentID()
			r.events = append(r.events, blockStart(id, parent, hasParent, Blockquote()))
			t.containers = append(t.containers, container{id: id, kind: containerBlockquote})
			pushedThisLine = true
			line = tail
			continue
		}

		if ordered, index, task, width, tail := listMarker(line); width > 0 {
			if !pushedThisLine && len(t.containers) > 0 {
				if top := t.containers[len(t.containers)-1]; top.kind == containerListItem {
					t.closeLeaf(r)
					r.events = append(r.events, blockEnd(top.id))
					t.containers = t.containers[:len(t.containers)-1]
				}
			} else {
				t.closeLeaf(r)
			}
			id := t.allocID()
			parent, hasParent := t.parentID()
			r.events = append(r.events, blockStart(id, parent, hasParent, ListItem(ordered, index, task)))
			t.containers = append(t.containers, container{id: id, kind: containerListItem, ordered: ordered, indent: width})
			pushedThisLine = true
			line = tail
			continue
		}

		if t.leaf == nil && t.pendingTableHeader == nil && looksLikeTableRow(line) {
			t.pendingTableHeader = &tableHeaderPending{cells: splitTableRow(line)}
			return
		}
		if t.pendingTableHeader != nil {
			if ok, aligns := delimiterRow(line); ok && len(aligns) == len(t.pendingTableHeader.cells) {
				t.confirmTable(aligns, r)
				return
			}
			// The candidate wasn't a header after all: flush it as an
			// ordinary paragraph line, then reprocess this line.
			r.events = append(r.events, t.demoteAnyPendingTableHeader()...)
			continue
		}

		if !pushedThisLine && t.leaf != nil && t.leaf.kind == leafParagraph {
			t.continueParagraph(line, r)
			return
		}

		t.closeLeaf(r)
		t.openParagraph(line, r)
		return
	}
}

func (t *Tokenizer) closeContainersFrom(i int, r *chunkCollector) {
	for j := len(t.containers) - 1; j >= i; j-- {
		r.events = append(r.events, blockEnd(t.containers[j].id))
	}
	t.containers = t.containers[:i]
}

func (t *Tokenizer) closeAll(r *chunkCollector) {
	t.closeLeaf(r)
	t.closeContainersFrom(0, r)
}

func (t *Tokenizer) closeLeaf(r *chunkCollector) {
	if t.leaf == nil {
		return
	}
	switch t.leaf.kind {
	case leafParagraph:
		t.flushParagraphInline(r, true)
		r.events = append(r.events, blockEnd(t.leaf.id))
		t.leaf = nil
	case leafMathBlock:
		t.closeMathBlock(r)
	default:
		r.events = append(r.events, blockEnd(t.leaf.id))
		t.leaf = nil
	}
}

func (t *Tokenizer) openParagraph(line []byte, r *chunkCollector) {
	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, Paragraph()))
	t.leaf = &leafState{id: id, kind: leafParagraph}
	t.leaf.raw.Write(line)
	t.leaf.lastLine = append([]byte(nil), line...)
	t.flushParagraphInline(r, false)
}

func (t *Tokenizer) continueParagraph(line []byte, r *chunkCollector) {
	if t.leaf.raw.Len() > 0 {
		if hardBreak(t.leaf.lastLine) {
			t.leaf.raw.WriteByte('\r')
		} else {
			t.leaf.raw.WriteByte('\n')
		}
	}
	t.leaf.raw.Write(line)
	t.leaf.lastLine = append([]byte(nil), line...)
	t.flushParagraphInline(r, false)
}

func hardBreak(line []byte) bool {
	if len(line) >= 1 && line[len(line)-1] == '\\' {
		return true
	}
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == ' '; i-- {
		n++
	}
	return n >= 2
}

func (t *Tokenizer) flushParagraphInline(r *chunkCollector, final bool) {
	raw := []byte(t.leaf.raw.String())
	pending := raw[t.leaf.emitted:]
	runs, consumed := ScanInline(pending)
	if final && consumed < len(pending) {
		// Demote the unresolved tail to literal text.
		tailRuns, _ := literalRuns(pending[consumed:])
		runs = append(runs, tailRuns...)
		consumed = len(pending)
	}
	if len(runs) > 0 {
		r.events = append(r.events, blockAppendInline(t.leaf.id, runs))
	}
	t.leaf.emitted += consumed
}

// literalRuns treats raw bytes as plain text with no further inline
// interpretation, used only to force-resolve a still-open construct at
// end of input.
func literalRuns(raw []byte) ([]InlineRun, int) {
	if len(raw) == 0 {
		return nil, 0
	}
	return []InlineRun{{Text: string(raw)}}, len(raw)
}

func (t *Tokenizer) openFencedCode(f byte, width int, tail []byte, r *chunkCollector) {
	t.closeLeaf(r)
	id := t.allocID()
	parent, hasParent := t.parentID()
	language := strings.TrimSpace(string(tail))
	var lang *string
	if language != "" {
		lang = &language
	}
	r.events = append(r.events, blockStart(id, parent, hasParent, FencedCode(lang)))
	t.leaf = &leafState{id: id, kind: leafFencedCode, fenceByte: f, fenceWidth: width, lang: language}
}

func (t *Tokenizer) continueFencedCode(line []byte, r *chunkCollector) {
	if f, w, tail := fence(line, t.leaf.fenceWidth, t.leaf.fenceByte); f != 0 && len(trimSpaceBytes(tail)) == 0 && w >= t.leaf.fenceWidth {
		r.events = append(r.events, blockEnd(t.leaf.id))
		t.leaf = nil
		return
	}
	r.events = append(r.events, blockAppendFencedCode(t.leaf.id, string(line)+"\n"))
}

func (t *Tokenizer) openMathBlock(rest []byte, closeDelim string, r *chunkCollector) {
	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, MathBlock()))
	t.leaf = &leafState{id: id, kind: leafMathBlock, mathClose: closeDelim}
	if close := bytes.Index(rest, []byte(closeDelim)); close >= 0 {
		t.leaf.raw.Write(rest[:close])
		t.closeMathBlock(r)
		return
	}
	t.leaf.raw.Write(rest)
}

func (t *Tokenizer) continueMathBlock(line []byte, r *chunkCollector) {
	if close := bytes.Index(line, []byte(t.leaf.mathClose)); close >= 0 {
		t.leaf.raw.Write(line[:close])
		t.closeMathBlock(r)
		return
	}
	t.leaf.raw.Write(line)
	t.leaf.raw.WriteByte('\n')
}

// closeMathBlock parses the fully-accumulated raw source (math payloads are
// parsed synchronously and in full, per mdmath's doc comment) and emits it
// as a single math-styled run before closing the block.
func (t *Tokenizer) closeMathBlock(r *chunkCollector) {
	raw := t.leaf.raw.String()
	node := mdmath.Parse(raw)
	r.events = append(r.events, blockAppendInline(t.leaf.id, []InlineRun{{Text: raw, Style: StyleMath, Math: &node}}))
	r.events = append(r.events, blockEnd(t.leaf.id))
	t.leaf = nil
}

func (t *Tokenizer) openAndCloseRuler(r *chunkCollector) {
	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, HorizontalRule()))
	r.events = append(r.events, blockEnd(id))
}

func (t *Tokenizer) openAndCloseHeading(level int, content []byte, r *chunkCollector) {
	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, Heading(level)))
	runs, consumed := ScanInline(content)
	if consumed < len(content) {
		tailRuns, _ := literalRuns(content[consumed:])
		runs = append(runs, tailRuns...)
	}
	if len(runs) > 0 {
		r.events = append(r.events, blockAppendInline(id, runs))
	}
	r.events = append(r.events, blockEnd(id))
}

func (t *Tokenizer) confirmTable(aligns []Alignment, r *chunkCollector) {
	headerCells := make([][]InlineRun, len(t.pendingTableHeader.cells))
	for i, c := range t.pendingTableHeader.cells {
		runs, _ := ScanInline([]byte(c))
		headerCells[i] = runs
	}
	t.pendingTableHeader = nil

	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, Table()))
	r.events = append(r.events, tableHeaderCandidate(id, headerCells))
	r.events = append(r.events, tableHeaderConfirmed(id, aligns))
	t.leaf = &leafState{id: id, kind: leafTable}
	t.leaf.table.confirmed = true
	t.leaf.table.alignments = aligns
}

func (t *Tokenizer) continueTable(line []byte, r *chunkCollector) bool {
	if !looksLikeTableRow(line) {
		r.events = append(r.events, blockEnd(t.leaf.id))
		t.leaf = nil
		return false
	}
	cellStrings := splitTableRow(line)
	cells := make([][]InlineRun, len(cellStrings))
	for i, c := range cellStrings {
		runs, _ := ScanInline([]byte(c))
		cells[i] = runs
	}
	r.events = append(r.events, tableAppendRow(t.leaf.id, cells))
	return true
}

// demoteAnyPendingTableHeader converts an unconfirmed table-header
// candidate into an ordinary paragraph, used when input ends (or a
// non-matching line arrives) before a delimiter row shows up.
func (t *Tokenizer) demoteAnyPendingTableHeader() []Event {
	if t.pendingTableHeader == nil {
		return nil
	}
	cells := t.pendingTableHeader.cells
	t.pendingTableHeader = nil

	var r chunkCollector
	id := t.allocID()
	parent, hasParent := t.parentID()
	r.events = append(r.events, blockStart(id, parent, hasParent, Paragraph()))
	line := strings.Join(cells, " | ")
	runs, consumed := ScanInline([]byte(line))
	if consumed < len(line) {
		tailRuns, _ := literalRuns([]byte(line)[consumed:])
		runs = append(runs, tailRuns...)
	}
	if len(runs) > 0 {
		r.events = append(r.events, blockAppendInline(id, runs))
	}
	r.events = append(r.events, blockEnd(id))
	return r.events
}
