package bus

import (
	"fmt"
	"log/slog"
	"time"
)

const eventKinds = int(MarkPriceEvent) + 1

// Statistics is a point-in-time snapshot of router activity. The per-event
// counts show which feed dominates the queue; a nonzero post fail ratio
// means producers are outrunning the dispatch goroutine.
type Statistics struct {
	RunTime       time.Duration
	PostCount     uint64
	PostFails     uint64
	DispatchCount uint64
	DispatchFails uint64
	EventCounts   [eventKinds]uint64
}

// Throughput is dispatched events per second over the run time.
func (s Statistics) Throughput() float64 {
	seconds := s.RunTime.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(s.DispatchCount) / seconds
}

// PostFailRatio is the fraction of Post calls rejected on a full queue.
func (s Statistics) PostFailRatio() float64 {
	total := s.PostCount + s.PostFails
	if total == 0 {
		return 0
	}
	return float64(s.PostFails) / float64(total)
}

func (s Statistics) Print() {
	fields := []any{
		"run_time", fmt.Sprintf("%.2fs", s.RunTime.Seconds()),
		"post_count", s.PostCount,
		"post_fail_ratio", fmt.Sprintf("%.4f", s.PostFailRatio()),
		"dispatch_count", s.DispatchCount,
		"dispatch_fails", s.DispatchFails,
		"throughput", fmt.Sprintf("%.2f", s.Throughput()),
	}
	for id, count := range s.EventCounts {
		if count > 0 {
			fields = append(fields, EventId(id).String(), count)
		}
	}
	slog.Info("router statistics", fields...)
}
