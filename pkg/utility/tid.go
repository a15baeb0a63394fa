package utility

import (
	"hash/fnv"
	"sync/atomic"
	"time"
)

// TraceID tags every event flowing through the router so a merged book or a
// rebuilt balance can be traced back to the feed message that produced it.
// The id packs a millisecond timestamp, instance bits folded from the
// session id and a per-millisecond sequence into one uint64.
type TraceID = uint64

const (
	traceInstanceBits = 12
	traceSequenceBits = 11

	traceMaxInstance uint64 = 1<<traceInstanceBits - 1
	traceMaxSequence uint64 = 1<<traceSequenceBits - 1
)

var (
	traceEpoch    = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	traceSequence atomic.Uint64
	traceInstance = sessionInstance()
)

// sessionInstance hashes the session uuid into the instance bits so trace
// ids from concurrent processes stay distinguishable without coordination.
func sessionInstance() uint64 {
	h := fnv.New64a()
	id := GetSessionID()
	h.Write(id[:])
	return h.Sum64() & traceMaxInstance
}

func CreateTraceID() TraceID {
	now := uint64(time.Now().UnixMilli() - traceEpoch)
	seq := traceSequence.Add(1) & traceMaxSequence

	if seq == 0 {
		// Sequence wrapped inside one millisecond, wait out the tick.
		time.Sleep(time.Millisecond)
		now = uint64(time.Now().UnixMilli() - traceEpoch)
	}

	return now<<(traceInstanceBits+traceSequenceBits) | traceInstance<<traceSequenceBits | seq
}

func ParseTraceID(id TraceID) (ts time.Time, instance uint64, seq uint64) {
	seq = id & traceMaxSequence
	instance = id >> traceSequenceBits & traceMaxInstance
	ts = time.UnixMilli(traceEpoch + int64(id>>(traceInstanceBits+traceSequenceBits)))
	return
}
