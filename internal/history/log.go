package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogFile is the markdown log kept next to the records.
const LogFile = "HISTORY.md"

// PrependEntry prepends a dated entry to an existing log, preserving
// previous entries.
func PrependEntry(newEntry, existingLog string, date time.Time) string {
	header := fmt.Sprintf("## %s\n\n", date.Format("2006-01-02"))

	entry := header + strings.TrimSpace(newEntry) + "\n"

	if existingLog == "" {
		return "# HISTORY\n\n" + entry
	}

	// Insert after a top-level header if there is one.
	lines := strings.SplitN(existingLog, "\n", 3)
	if strings.HasPrefix(strings.TrimSpace(lines[0]), "# ") {
		rest := ""
		if len(lines) >= 3 {
			rest = lines[2]
		}
		return lines[0] + "\n\n" + entry + "\n" + rest
	}

	return entry + "\n" + existingLog
}

// Entry renders the log entry for a save.
func Entry(rec *Record, created bool) string {
	verb := "Updated"
	if created {
		verb = "Saved"
	}
	title := rec.Title
	if title == "" {
		title = "Untitled prompt"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s** (`%s`)\n\n", verb, title, rec.ID)
	fmt.Fprintf(&b, "- Template: %s\n", rec.TemplateID)
	fmt.Fprintf(&b, "- Technique: %s\n", rec.Technique)
	fmt.Fprintf(&b, "- Quality: %d (%s)\n", rec.Quality, rec.Level)
	if len(rec.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(rec.Tags, ", "))
	}
	return b.String()
}

func (s *Store) appendLog(rec *Record, created bool) error {
	path := filepath.Join(s.dir, LogFile)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading history log: %w", err)
	}
	updated := PrependEntry(Entry(rec, created), string(existing), rec.UpdatedAt)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing history log: %w", err)
	}
	return nil
}
