package aggregate

import (
	"buzzboard/domain"
	"buzzboard/errors"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultBucketWidth = time.Minute
	DefaultRetention   = 60 // buckets kept, i.e. one hour at the default width
)

// VolumeSeries buckets message arrivals into fixed-width, aligned time
// windows. Window starts are strictly increasing; empty interior
// windows are materialized as zero-count buckets so the series stays
// gapless for the chart. Once a newer window opens, earlier buckets
// are closed and never change again.
type VolumeSeries struct {
	mu        sync.Mutex
	width     time.Duration
	retention int
	buckets   []domain.VolumeBucket
}

// NewVolumeSeries creates a series with the given bucket width and
// retention horizon (maximum buckets kept). Non-positive arguments
// fall back to the defaults.
func NewVolumeSeries(width time.Duration, retention int) *VolumeSeries {
	if width <= 0 {
		width = DefaultBucketWidth
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &VolumeSeries{width: width, retention: retention}
}

// Record counts one arrival at t. The transport delivers messages in
// non-decreasing time order, so a timestamp older than the open window
// is a reportable anomaly: the call returns ErrOutOfOrderTimestamp and
// leaves the series untouched.
func (v *VolumeSeries) Record(t time.Time) error {
	window := t.Truncate(v.width)

	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.buckets) == 0 {
		v.buckets = append(v.buckets, domain.VolumeBucket{WindowStart: window, Count: 1})
		return nil
	}

	open := &v.buckets[len(v.buckets)-1]
	switch {
	case window.Equal(open.WindowStart):
		open.Count++
	case window.Before(open.WindowStart):
		return fmt.Errorf("record %s before open window %s: %w",
			t.Format(time.RFC3339), open.WindowStart.Format(time.RFC3339),
			errors.ErrOutOfOrderTimestamp)
	default:
		// Close the current window and fill any skipped minutes so the
		// series stays contiguous.
		for cursor := open.WindowStart.Add(v.width); cursor.Before(window); cursor = cursor.Add(v.width) {
			v.buckets = append(v.buckets, domain.VolumeBucket{WindowStart: cursor})
		}
		v.buckets = append(v.buckets, domain.VolumeBucket{WindowStart: window, Count: 1})
		v.trim()
	}
	return nil
}

// trim drops the oldest closed buckets beyond the retention horizon.
// Called with the lock held.
func (v *VolumeSeries) trim() {
	if len(v.buckets) <= v.retention {
		return
	}
	kept := make([]domain.VolumeBucket, v.retention)
	copy(kept, v.buckets[len(v.buckets)-v.retention:])
	v.buckets = kept
}

// Snapshot returns an ordered copy of all retained buckets, including
// the currently open (possibly partial) one.
func (v *VolumeSeries) Snapshot() []domain.VolumeBucket {
	v.mu.Lock()
	defer v.mu.Unlock()

	buckets := make([]domain.VolumeBucket, len(v.buckets))
	copy(buckets, v.buckets)
	return buckets
}
