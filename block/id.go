package block

import "github.com/jcorbin/mdstream/token"

// BlockID re-exports token.BlockID: the Tokenizer allocates identifiers,
// the Assembler only ever looks them up.
type BlockID = token.BlockID

// arena holds BlockEntry values in a single dense, append-only slice
// indexed by document position, alongside a map from BlockID to that
// position. This mirrors internal/scanio's ByteArena/ByteArenaToken split
// (a flat backing store plus lightweight handles into it), generalized
// from bytes to block entries: PruneTo there discards a byte prefix no
// remaining token still references, exactly as truncate here discards an
// entry prefix no remaining BlockID still needs.
type arena struct {
	entries []BlockEntry
	index   map[BlockID]int
}

func newArena() *arena {
	return &arena{index: make(map[BlockID]int)}
}

func (a *arena) append(e BlockEntry) int {
	pos := len(a.entries)
	a.entries = append(a.entries, e)
	a.index[e.ID] = pos
	return pos
}

func (a *arena) get(id BlockID) (*BlockEntry, bool) {
	pos, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return &a.entries[pos], true
}

func (a *arena) at(pos int) *BlockEntry {
	return &a.entries[pos]
}

func (a *arena) len() int { return len(a.entries) }

// truncatePrefix discards the first n entries, which must all be closed;
// it is the caller's responsibility to ensure no open block (or any block
// still reachable as a parent of an open block) lies in that prefix.
func (a *arena) truncatePrefix(n int) []BlockID {
	if n <= 0 {
		return nil
	}
	discarded := make([]BlockID, n)
	for i := 0; i < n; i++ {
		discarded[i] = a.entries[i].ID
		delete(a.index, a.entries[i].ID)
	}
	a.entries = append(a.entries[:0], a.entries[n:]...)
	for id, pos := range a.index {
		a.index[id] = pos - n
	}
	return discarded
}
