package info

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/runenames"
)

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	}

	return plural(int(d.Hours()/24/365), "year")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}

	return fmt.Sprintf("%s (%s ago)", t.UTC().Format("2006-01-02 15:04"), humanDuration(time.Since(t)))
}

// charLine renders single-rune report with codepoint, unicode name and
// a reference link
func charLine(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		name = "Name not found."
	}

	return fmt.Sprintf("`U+%06X`: %s - %s <http://www.fileformat.info/info/unicode/char/%x>", r, name, string(r), r)
}

func escapeRoleName(name string) string {
	return strings.ReplaceAll(name, "@", "@​")
}
