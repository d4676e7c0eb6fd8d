package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

// logRecord is one CSV row of a colony activity feed
type logRecord struct {
	Timestamp string `csv:"timestamp"`
	Type      string `csv:"type"`
	Message   string `csv:"message"`
}

// writeLogsCSV writes log entries oldest first
func writeLogsCSV(w io.Writer, entries []colony.LogEntry) error {
	records := make([]*logRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, &logRecord{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			Type:      e.Type,
			Message:   e.Message,
		})
	}
	return gocsv.Marshal(records, w)
}

// formatItems renders an item map as "3 wood, 1 stone" in id order
func formatItems(items map[string]int) string {
	if len(items) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(items[id])), id))
	}
	return strings.Join(parts, ", ")
}

// formatWhen renders a timestamp relative to now, e.g. "in 25 minutes"
func formatWhen(t *time.Time, now time.Time) string {
	if t == nil {
		return "-"
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}

// formatDuration renders milliseconds as a short duration
func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}

// formatEnergy renders energy with one decimal
func formatEnergy(e float64) string {
	return humanize.FtoaWithDigits(e, 1)
}
