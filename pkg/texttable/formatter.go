// Package texttable renders pipe separated text blocks as box drawn tables.
//
// A block is first classified (see Classify). Plain text is returned as is,
// calendar blocks are rewritten into one table with a banner per month and
// everything else goes through the generic table renderer. Rows holding a
// single cell are banners: they span the whole table and are framed by
// divider lines.
//
//	┌─────┬────┐
//	│  A  │ B  │
//	│  1  │ 22 │
//	│ 333 │ 4  │
//	└─────┴────┘
package texttable

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measure returns the number of columns a string occupies.
type Measure func(string) int

// RuneCount counts one column per rune.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// DisplayWidth counts East Asian wide runes as two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Formatter formats text blocks. The zero value is not usable; use New.
type Formatter struct {
	measure Measure
}

type Option func(*Formatter)

// WithMeasure sets the function used to size cells.
func WithMeasure(measure Measure) Option {
	return func(f *Formatter) {
		if measure != nil {
			f.measure = measure
		}
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{measure: RuneCount}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFormatter = New()

// Format formats text with the default formatter.
func Format(text string) (string, bool) {
	return defaultFormatter.Format(text)
}

// FormatOr formats text with the default formatter, falling back to text
// when it cannot be rendered.
func FormatOr(text string) string {
	return defaultFormatter.FormatOr(text)
}

// Format returns text rendered as a table, or text itself when it is not
// tabular. The second result is false when text looked like a table but no
// row could be measured; the first result is then empty.
func (f *Formatter) Format(text string) (string, bool) {
	switch Classify(text) {
	case MultiCalendar:
		rewritten := splitCalendars(text)
		if !strings.Contains(rewritten, "\n") {
			return "", false
		}
		return f.formatTable(rewritten)
	case DataTable:
		return f.formatTable(text)
	default:
		return text, true
	}
}

// FormatOr is like Format but returns text unchanged instead of failing.
func (f *Formatter) FormatOr(text string) string {
	if formatted, ok := f.Format(text); ok {
		return formatted
	}
	return text
}

func (f *Formatter) formatTable(text string) (string, bool) {
	if !strings.Contains(text, "\n") {
		return text, true
	}

	t := parseTable(strings.Split(text, "\n"))

	widths, ok := t.widths(f.measure)
	if !ok {
		return "", false
	}

	return render(t, widths, f.measure), true
}
