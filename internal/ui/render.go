package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/taskboard/internal/presenter"
)

// shortIDLen is the default id display width.
const shortIDLen = 8

// RenderOptions controls board text output.
type RenderOptions struct {
	Layout   string
	Location *time.Location
	Color    bool
	// FullIDs prints complete ids instead of short prefixes.
	FullIDs bool
}

// RenderBoard writes the three buckets and the progress line to w.
func RenderBoard(w io.Writer, board presenter.Board, opts RenderOptions) error {
	var b strings.Builder
	s := newStyles(opts.Color)
	ids := displayIDs(board.Entries(), opts.FullIDs)

	for _, bucket := range board.Buckets() {
		writeBucket(&b, s, bucket, ids, opts)
	}
	writeProgress(&b, s, board.Progress)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBucket(b *strings.Builder, s styles, bucket presenter.Bucket, ids map[string]string, opts RenderOptions) {
	b.WriteString(s.heading.Render(fmt.Sprintf("%s (%d)", bucket.Title, bucket.Len())))
	b.WriteString("\n")
	if bucket.Len() == 0 {
		b.WriteString("  " + s.empty.Render(bucket.Empty) + "\n\n")
		return
	}
	for _, entry := range bucket.Entries {
		b.WriteString("  " + formatEntry(s, entry, ids[entry.Task.ID], opts) + "\n")
	}
	b.WriteString("\n")
}

func writeProgress(b *strings.Builder, s styles, p presenter.Progress) {
	b.WriteString(fmt.Sprintf("Progress: %d%% (%d/%d)", p.Percent, p.Completed, p.Total))
	if bar := progressBar(s, p.Percent, 20); bar != "" {
		b.WriteString(" " + bar)
	}
	b.WriteString("\n")
}

// formatEntry renders one task row: checkbox, id, name, due and flag.
func formatEntry(s styles, e presenter.Entry, id string, opts RenderOptions) string {
	box := "[ ]"
	if e.Task.Completed {
		box = "[x]"
	}
	due := presenter.FormatDue(e.Task.DueDate, opts.Layout, opts.Location)
	text := fmt.Sprintf("%s %s  %s", box, e.Task.Name, due)

	switch {
	case e.Task.Completed:
		text = s.completed.Render(text)
	case e.Overdue:
		text = s.overdue.Render(text + "  (overdue)")
	case e.PastDue:
		text = s.pastDue.Render(text + "  (past due)")
	}
	if id == "" {
		return text
	}
	return s.id.Render(id) + "  " + text
}

// displayIDs maps each id to the shortest prefix of at least shortIDLen
// characters that no other id shares.
func displayIDs(entries []presenter.Entry, full bool) map[string]string {
	ids := make(map[string]string, len(entries))
	for _, e := range entries {
		ids[e.Task.ID] = e.Task.ID
	}
	if full {
		return ids
	}
	for _, e := range entries {
		id := e.Task.ID
		for n := shortIDLen; n < len(id); n++ {
			prefix := id[:n]
			unique := true
			for _, other := range entries {
				if other.Task.ID != id && strings.HasPrefix(other.Task.ID, prefix) {
					unique = false
					break
				}
			}
			if unique {
				ids[id] = prefix
				break
			}
		}
	}
	return ids
}
