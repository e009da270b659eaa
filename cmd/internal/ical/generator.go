package ical

import (
	"clubcal/cmd/internal/domain/entity"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	// FoldWidth is the number of characters kept per physical line of a
	// folded LOCATION or SUMMARY value. Existing subscribers rely on it.
	FoldWidth = 40

	crlf = "\r\n"
	fold = crlf + " "
)

var newlines = strings.NewReplacer("\r\n", `\n`, "\r", `\n`, "\n", `\n`)

// Clock returns the current time.
type Clock func() time.Time

type Generator struct {
	ProductID string
	Clock     Clock

	// LegacyTimestamps writes date fields without zero padding, the way
	// early feeds did (e.g. 2024615T93000Z).
	LegacyTimestamps bool
}

func NewGenerator(productID string, clock Clock) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{ProductID: productID, Clock: clock}
}

// Render builds a complete calendar document with one VEVENT per
// appointment, in input order. DTSTAMP is taken once per call.
func (g *Generator) Render(appts []*entity.Appointment) string {
	now := g.now()

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")
	writeLine(&b, "PRODID:-//"+g.ProductID+"//EN")
	writeLine(&b, "VERSION:2.0")

	for _, appt := range appts {
		if appt == nil {
			continue
		}
		g.writeEvent(&b, appt, now)
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func (g *Generator) writeEvent(b *strings.Builder, appt *entity.Appointment, now time.Time) {
	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, "DTSTAMP:"+g.FormatTimestamp(now))
	writeLine(b, "UID:"+appt.ID)
	writeLine(b, "DTSTART:"+g.FormatTimestamp(appt.StartDate))
	if appt.EndDate != nil {
		writeLine(b, "DTEND:"+g.FormatTimestamp(*appt.EndDate))
	}

	location := ""
	if appt.Location != nil {
		location = *appt.Location
	}
	writeLine(b, "LOCATION:"+Fold(EscapeNewlines(location)))
	writeLine(b, "SUMMARY:"+Fold(EscapeNewlines(appt.Title)))
	writeLine(b, "END:VEVENT")
}

// FormatTimestamp encodes t as a UTC basic-format date-time.
func (g *Generator) FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if g.LegacyTimestamps {
		return fmt.Sprintf("%d%d%dT%d%d%dZ",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return t.Format("20060102T150405Z")
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock()
}

// EscapeNewlines replaces CRLF, CR and LF with the two characters \n so a
// value always stays on its own content line.
func EscapeNewlines(value string) string {
	return newlines.Replace(value)
}

// Fold breaks value into chunks of at most FoldWidth UTF-16 code units
// joined by CRLF and a single space. A surrogate pair that would straddle
// the boundary moves to the next chunk, so runes are never split.
func Fold(value string) string {
	if utf16Len(value) <= FoldWidth {
		return value
	}

	var b strings.Builder
	b.Grow(len(value) + (len(value)/FoldWidth)*len(fold))
	units := 0
	for _, r := range value {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > FoldWidth {
			b.WriteString(fold)
			units = 0
		}
		b.WriteRune(r)
		units += n
	}
	return b.String()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Unfold reverses Fold.
func Unfold(value string) string {
	return strings.ReplaceAll(value, fold, "")
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString(crlf)
}
