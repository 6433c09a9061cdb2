package observability

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Counters(t *testing.T) {
	req := require.New(t)
	monitor := NewMonitor(logs.GetLoggerFromLevel(slog.LevelDebug))

	monitor.IncrProcessed()
	monitor.IncrProcessed()
	monitor.IncrClassificationFailures()
	monitor.IncrOutOfOrderTimestamps()
	monitor.IncrRenderFailures()

	stats := monitor.Latest()
	req.Equal(uint64(2), stats.Processed)
	req.Equal(uint64(1), stats.ClassificationFailures)
	req.Equal(uint64(1), stats.OutOfOrderTimestamps)
	req.Zero(stats.DecodeFailures)
	req.Equal(uint64(1), stats.RenderFailures)
}
