package ics

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeBasicEvent(t *testing.T) {
	start := time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := string(Encode("Church Calendar", []Event{{
		UID:     UIDFor("123"),
		Summary: "Sunday Service",
		Start:   start,
		End:     &end,
		Stamp:   stamp,
	}}))

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"X-WR-CALNAME:Church Calendar\r\n",
		"BEGIN:VEVENT\r\n",
		"UID:123@steeple.church\r\n",
		"DTSTAMP:20260301T120000Z\r\n",
		"DTSTART:20260308T093000Z\r\n",
		"DTEND:20260308T110000Z\r\n",
		"SUMMARY:Sunday Service\r\n",
		"END:VEVENT\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeAllDayUsesDateValue(t *testing.T) {
	start := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	out := string(Encode("", []Event{{
		UID:     UIDFor("xmas"),
		Summary: "Christmas",
		Start:   start,
		AllDay:  true,
		Stamp:   start,
	}}))

	if !strings.Contains(out, "DTSTART;VALUE=DATE:20261225\r\n") {
		t.Fatalf("all-day event missing date-valued DTSTART:\n%s", out)
	}
	if strings.Contains(out, "DTSTART:20261225T") {
		t.Fatal("all-day event leaked a date-time DTSTART")
	}
}

func TestEncodeEscapesText(t *testing.T) {
	start := time.Now().UTC()

	out := string(Encode("", []Event{{
		UID:         UIDFor("esc"),
		Summary:     "Potluck; bring chips, salsa",
		Description: "Line one\nLine two",
		Start:       start,
		Stamp:       start,
	}}))

	if !strings.Contains(out, `SUMMARY:Potluck\; bring chips\, salsa`) {
		t.Fatalf("semicolon or comma not escaped:\n%s", out)
	}
	if !strings.Contains(out, `DESCRIPTION:Line one\nLine two`) {
		t.Fatalf("newline not escaped:\n%s", out)
	}
}

func TestWriteLineFoldsLongLines(t *testing.T) {
	start := time.Now().UTC()
	long := strings.Repeat("abcdefghij", 20)

	out := string(Encode("", []Event{{
		UID:     UIDFor("long"),
		Summary: long,
		Start:   start,
		Stamp:   start,
	}}))

	for _, line := range strings.Split(out, "\r\n") {
		if len(line) > 75 {
			t.Fatalf("line exceeds 75 octets: %q", line)
		}
	}

	// Unfolding reproduces the original content.
	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	if !strings.Contains(unfolded, "SUMMARY:"+long) {
		t.Fatal("folded summary does not unfold to the original")
	}
}

func TestWriteLineNeverSplitsUTF8Sequence(t *testing.T) {
	start := time.Now().UTC()
	long := strings.Repeat("é", 100)

	out := Encode("", []Event{{
		UID:     UIDFor("utf8"),
		Summary: long,
		Start:   start,
		Stamp:   start,
	}})

	if !strings.Contains(string(out), "é") {
		t.Fatal("expected multibyte content in output")
	}
	for _, line := range strings.Split(string(out), "\r\n") {
		trimmed := strings.TrimPrefix(line, " ")
		for _, r := range trimmed {
			if r == '\uFFFD' {
				t.Fatalf("folding split a UTF-8 sequence: %q", line)
			}
		}
	}
}
