// Package render draws the three live charts from an immutable board
// snapshot. It is a pure consumer: it never mutates the snapshot and
// holds no aggregate lock while drawing.
package render

import (
	"buzzboard/domain"
	"buzzboard/observability"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const barWidth = 30

// Console renders the sentiment pie, the per-minute volume series and
// the keyword frequency bars as text. The whole frame is built in a
// buffer and written in one call so a live terminal never shows a
// half-drawn board.
type Console struct {
	out         io.Writer
	monitor     *observability.Monitor
	clearScreen bool
}

func NewConsole(out io.Writer, monitor *observability.Monitor) *Console {
	return &Console{out: out, monitor: monitor}
}

// WithClearScreen redraws over the previous frame instead of appending.
func (c *Console) WithClearScreen() *Console {
	c.clearScreen = true
	return c
}

func (c *Console) Draw(snapshot domain.BoardSnapshot) error {
	var buf bytes.Buffer
	if c.clearScreen {
		buf.WriteString("\033[2J\033[H")
	}

	fmt.Fprintf(&buf, "buzzboard @ %s\n\n", snapshot.TakenAt.Format("15:04:05"))
	c.drawSentiment(&buf, snapshot.Sentiment)
	c.drawVolume(&buf, snapshot.Volume)
	c.drawKeywords(&buf, snapshot.Keywords)
	if c.monitor != nil {
		c.drawFooter(&buf)
	}

	if _, err := c.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("draw board: %w", err)
	}
	return nil
}

var sentimentColors = map[domain.Sentiment]color.Color{
	domain.Positive: color.Green,
	domain.Neutral:  color.Yellow,
	domain.Negative: color.Red,
}

func (c *Console) drawSentiment(buf *bytes.Buffer, counts domain.SentimentCounts) {
	buf.WriteString("Sentiment\n")
	for _, category := range domain.Sentiments {
		count := counts.Counts[category]
		share := 0.0
		if counts.Total > 0 {
			share = float64(count) / float64(counts.Total)
		}
		bar := sentimentColors[category].Render(strings.Repeat("█", int(share*barWidth)))
		fmt.Fprintf(buf, "  %-8s %5.1f%%  %s (%d)\n", category, share*100, bar, count)
	}
	buf.WriteByte('\n')
}

func (c *Console) drawVolume(buf *bytes.Buffer, buckets []domain.VolumeBucket) {
	buf.WriteString("Messages per minute\n")
	if len(buckets) == 0 {
		buf.WriteString("  (waiting for messages)\n\n")
		return
	}

	peak := lo.Max(lo.Map(buckets, func(b domain.VolumeBucket, _ int) uint64 {
		return b.Count
	}))
	for _, bucket := range buckets {
		width := 0
		if peak > 0 {
			width = int(float64(bucket.Count) / float64(peak) * barWidth)
		}
		bar := color.Blue.Render(strings.Repeat("█", width))
		fmt.Fprintf(buf, "  %s %s %d\n",
			bucket.WindowStart.Format("15:04"), bar, bucket.Count)
	}
	buf.WriteByte('\n')
}

func (c *Console) drawKeywords(buf *bytes.Buffer, counts domain.KeywordCounts) {
	buf.WriteString("Keyword frequency\n")

	keywords := lo.Keys(counts)
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	peak := lo.Max(lo.Values(counts))

	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"Keyword", "", "Count"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, keyword := range keywords {
		width := 0
		if peak > 0 {
			width = int(float64(counts[keyword]) / float64(peak) * barWidth)
		}
		table.Append([]string{
			keyword,
			color.Magenta.Render(strings.Repeat("█", width)),
			fmt.Sprintf("%d", counts[keyword]),
		})
	}
	table.Render()
	buf.WriteByte('\n')
}

func (c *Console) drawFooter(buf *bytes.Buffer) {
	stats := c.monitor.Latest()
	fmt.Fprintf(buf, "processed=%d classify_fail=%d out_of_order=%d decode_fail=%d render_fail=%d mem=%dMB up=%s\n",
		stats.Processed,
		stats.ClassificationFailures,
		stats.OutOfOrderTimestamps,
		stats.DecodeFailures,
		stats.RenderFailures,
		stats.ProcessMemMb,
		stats.Uptime.Round(time.Second),
	)
}
