package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const (
	// MaxLength is the social channel's post limit in characters.
	MaxLength = 280

	dateLayout  = "January 2, 2006"
	unknownDate = "an unknown date"
	ellipsis    = "…"
)

// Ordinal renders n with thousands separators and an English suffix: 1st, 22nd, 1,234th.
func Ordinal(n int) string {
	suffix := strings.TrimPrefix(humanize.Ordinal(n), strconv.Itoa(n))
	return humanize.Comma(int64(n)) + suffix
}

// Times renders an occurrence count: "1 time", "2,048 times".
func Times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return humanize.Comma(int64(n)) + " times"
}

// FormatDate renders a historical date, or "an unknown date" when absent.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(dateLayout)
}

// smallestPercent is the lowest chance that still reads as a number with one decimal.
const smallestPercent = 0.0005

// Percent renders a probability in [0,1] as a percentage with one decimal.
// Chances too small to show render as "<0.1%" so a reachable outcome never reads as zero.
func Percent(p float64) string {
	if p > 0 && p < smallestPercent {
		return "<0.1%"
	}
	return fmt.Sprintf("%.1f%%", p*100)
}

// fit appends tags when they fit and truncates the body when it alone is too long.
func fit(body string, tags []string) string {
	if len(tags) > 0 {
		withTags := body + "\n\n" + strings.Join(tags, " ")
		if utf8.RuneCountInString(withTags) <= MaxLength {
			return withTags
		}
	}
	if utf8.RuneCountInString(body) <= MaxLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:MaxLength-1]) + ellipsis
}
