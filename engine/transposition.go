package engine

import (
	"unsafe"

	"compact-chess/board"
)

// Bound types for cached scores. With fail-hard alpha-beta, a node that never
// raised alpha stores an upper bound, a beta cutoff stores a lower bound, and
// an exact score is only recorded when alpha was raised without a cutoff.
type ttFlag int8

const (
	TTUpper ttFlag = iota
	TTLower
	TTExact
)

const clusterSize = 4

// TTEntry is one cache row. The full hash is kept for verification: the key
// covers board contents plus side to move, so a stale or colliding entry is
// rejected rather than trusted.
type TTEntry struct {
	Hash  uint64
	Move  board.Move
	Score int16
	Depth int8
	Flag  ttFlag
}

// TransTable is a clustered, always-replace-shallowest transposition cache.
// It is a best-effort memo: the search stays correct with the table disabled
// (size 0), entries are only trusted at sufficient recorded depth, and every
// probe re-checks the stored hash.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
}

// Init sizes the table to roughly sizeMB megabytes. Size 0 disables it.
func (tt *TransTable) Init(sizeMB int) {
	if sizeMB <= 0 {
		tt.entries = nil
		tt.clusterCount = 0
		return
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	clusterCount := uint64(sizeMB) * 1024 * 1024 / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	tt.clusterCount = clusterCount
	tt.entries = make([]TTEntry, clusterCount*clusterSize)
}

// Clear drops all entries but keeps the allocation.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Probe finds the entry for the hash, if the table holds one.
func (tt *TransTable) Probe(hash uint64) (*TTEntry, bool) {
	if tt.clusterCount == 0 {
		return nil, false
	}
	base := int(hash % tt.clusterCount * clusterSize)
	for i := 0; i < clusterSize; i++ {
		e := &tt.entries[base+i]
		if e.Hash == hash {
			return e, true
		}
	}
	return nil, false
}

// Use decides whether a probed entry can answer the current node: the
// recorded depth must cover the remaining depth, and the bound type must be
// conclusive against the window. Mate scores are stored root-relative and
// re-anchored to the probing ply here.
func (tt *TransTable) Use(e *TTEntry, depth int8, alpha, beta int32, ply int8) (bool, int32) {
	if e == nil || e.Depth < depth {
		return false, 0
	}
	score := int32(e.Score)
	if score > mateBound {
		score -= int32(ply)
	} else if score < -mateBound {
		score += int32(ply)
	}
	switch e.Flag {
	case TTExact:
		return true, score
	case TTUpper:
		if score <= alpha {
			return true, alpha
		}
	case TTLower:
		if score >= beta {
			return true, beta
		}
	}
	return false, 0
}

// Store writes an entry, preferring to update a matching slot, then an empty
// one, then the shallowest in the cluster.
func (tt *TransTable) Store(hash uint64, depth, ply int8, move board.Move, score int32, flag ttFlag) {
	if tt.clusterCount == 0 {
		return
	}
	if score > mateBound {
		score += int32(ply)
	} else if score < -mateBound {
		score -= int32(ply)
	}

	base := int(hash % tt.clusterCount * clusterSize)
	target := -1
	for i := 0; i < clusterSize; i++ {
		if tt.entries[base+i].Hash == hash {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if tt.entries[base+i].Hash == 0 {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		minDepth := tt.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			if tt.entries[base+i].Depth < minDepth {
				minDepth = tt.entries[base+i].Depth
				target = base + i
			}
		}
	}

	tt.entries[target] = TTEntry{
		Hash:  hash,
		Move:  move,
		Score: int16(score),
		Depth: depth,
		Flag:  flag,
	}
}
