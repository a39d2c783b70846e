// Package ics writes RFC 5545 iCalendar documents for calendar export.
// Only the small subset Steeple emits is implemented: VCALENDAR with
// VEVENT components, UTC date-times, and 75-octet line folding.
package ics

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	prodID     = "-//Steeple//Steeple Calendar//EN"
	dateLayout = "20060102"
	timeLayout = "20060102T150405Z"
)

// Event is one VEVENT. UID must be unique within the feed.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         *time.Time
	AllDay      bool
	Stamp       time.Time
}

// Encode renders a complete VCALENDAR document.
func Encode(name string, events []Event) []byte {
	var buf bytes.Buffer

	writeLine(&buf, "BEGIN:VCALENDAR")
	writeLine(&buf, "VERSION:2.0")
	writeLine(&buf, "PRODID:"+prodID)
	writeLine(&buf, "CALSCALE:GREGORIAN")
	if name != "" {
		writeLine(&buf, "X-WR-CALNAME:"+escapeText(name))
	}

	for _, e := range events {
		writeEvent(&buf, e)
	}

	writeLine(&buf, "END:VCALENDAR")
	return buf.Bytes()
}

func writeEvent(buf *bytes.Buffer, e Event) {
	writeLine(buf, "BEGIN:VEVENT")
	writeLine(buf, "UID:"+escapeText(e.UID))
	writeLine(buf, "DTSTAMP:"+e.Stamp.UTC().Format(timeLayout))

	if e.AllDay {
		writeLine(buf, "DTSTART;VALUE=DATE:"+e.Start.UTC().Format(dateLayout))
		if e.End != nil {
			writeLine(buf, "DTEND;VALUE=DATE:"+e.End.UTC().Format(dateLayout))
		}
	} else {
		writeLine(buf, "DTSTART:"+e.Start.UTC().Format(timeLayout))
		if e.End != nil {
			writeLine(buf, "DTEND:"+e.End.UTC().Format(timeLayout))
		}
	}

	writeLine(buf, "SUMMARY:"+escapeText(e.Summary))
	if e.Description != "" {
		writeLine(buf, "DESCRIPTION:"+escapeText(e.Description))
	}
	if e.Location != "" {
		writeLine(buf, "LOCATION:"+escapeText(e.Location))
	}
	writeLine(buf, "END:VEVENT")
}

// writeLine folds content lines longer than 75 octets per RFC 5545 §3.1.
func writeLine(buf *bytes.Buffer, line string) {
	const limit = 75

	octets := []byte(line)
	for len(octets) > limit {
		cut := limit
		// Do not split a UTF-8 sequence.
		for cut > 0 && octets[cut]&0xC0 == 0x80 {
			cut--
		}
		buf.Write(octets[:cut])
		buf.WriteString("\r\n ")
		octets = octets[cut:]
	}
	buf.Write(octets)
	buf.WriteString("\r\n")
}

// escapeText escapes TEXT values per RFC 5545 §3.3.11.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// UIDFor builds a stable event UID from its ID.
func UIDFor(id string) string {
	return fmt.Sprintf("%s@steeple.church", id)
}
