// Package observability tracks throughput and anomaly counters for the
// board. Counters are atomic so the dispatch loop can bump them without
// taking any lock; readers get a consistent-enough view for diagnosis.
package observability

import (
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is a point-in-time copy of the counters, used in the board
// footer and the snapshot inspector.
type Stats struct {
	Processed              uint64        `json:"processed"`
	ClassificationFailures uint64        `json:"classification_failures"`
	OutOfOrderTimestamps   uint64        `json:"out_of_order_timestamps"`
	DecodeFailures         uint64        `json:"decode_failures"`
	RenderFailures         uint64        `json:"render_failures"`
	ProcessMemMb           uint64        `json:"process_mem_mb"`
	Uptime                 time.Duration `json:"uptime"`
}

type Monitor struct {
	log     *slog.Logger
	started time.Time
	proc    *process.Process

	processed              atomic.Uint64
	classificationFailures atomic.Uint64
	outOfOrderTimestamps   atomic.Uint64
	decodeFailures         atomic.Uint64
	renderFailures         atomic.Uint64
}

func NewMonitor(log *slog.Logger) *Monitor {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process handle unavailable, memory stats disabled", "error", err)
		proc = nil
	}
	return &Monitor{log: log, started: time.Now(), proc: proc}
}

func (m *Monitor) IncrProcessed()              { m.processed.Add(1) }
func (m *Monitor) IncrClassificationFailures() { m.classificationFailures.Add(1) }
func (m *Monitor) IncrOutOfOrderTimestamps()   { m.outOfOrderTimestamps.Add(1) }
func (m *Monitor) IncrDecodeFailures()         { m.decodeFailures.Add(1) }
func (m *Monitor) IncrRenderFailures()         { m.renderFailures.Add(1) }

// Latest copies the counters and samples the process resident memory.
func (m *Monitor) Latest() Stats {
	stats := Stats{
		Processed:              m.processed.Load(),
		ClassificationFailures: m.classificationFailures.Load(),
		OutOfOrderTimestamps:   m.outOfOrderTimestamps.Load(),
		DecodeFailures:         m.decodeFailures.Load(),
		RenderFailures:         m.renderFailures.Load(),
		Uptime:                 time.Since(m.started).Round(time.Second),
	}
	if m.proc != nil {
		if mem, err := m.proc.MemoryInfo(); err == nil {
			stats.ProcessMemMb = mem.RSS / 1024 / 1024
		}
	}
	return stats
}
