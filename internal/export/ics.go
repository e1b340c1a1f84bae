package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

const productID = "-//focusflow//time blocks//EN"

// EventUID returns the stable iCalendar UID of a block.
func EventUID(b *timeblock.TimeBlock) string {
	return fmt.Sprintf("timeblock-%d@focusflow", b.ID)
}

// WriteICS writes blocks as VEVENTs of a single VCALENDAR.
func WriteICS(w io.Writer, blocks []*timeblock.TimeBlock, now time.Time) error {
	if len(blocks) == 0 {
		return ErrNoBlocks
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, b := range blocks {
		event := cal.AddEvent(EventUID(b))
		event.SetDtStampTime(now.UTC())
		event.SetCreatedTime(b.CreatedAt.UTC())
		event.SetModifiedAt(b.UpdatedAt.UTC())
		event.SetStartAt(b.Start.UTC())
		event.SetEndAt(b.End.UTC())
		event.SetSummary(b.Title)
		if b.Description != nil {
			event.SetDescription(*b.Description)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// ReadICS parses a calendar and returns the fields of every timed event.
// All-day events and events without a usable interval are skipped and
// counted in skipped.
func ReadICS(r io.Reader) (fields []timeblock.Fields, skipped int, err error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing calendar: %w", err)
	}

	for _, ev := range cal.Events() {
		f, ok := eventFields(ev)
		if !ok {
			skipped++
			continue
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 && skipped == 0 {
		return nil, 0, errors.New("calendar has no events")
	}
	return fields, skipped, nil
}

func eventFields(ev *ical.VEvent) (timeblock.Fields, bool) {
	dtStart := ev.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || !strings.Contains(dtStart.Value, "T") {
		return timeblock.Fields{}, false
	}

	start, err := ev.GetStartAt()
	if err != nil {
		return timeblock.Fields{}, false
	}
	end, err := ev.GetEndAt()
	if err != nil || !start.Before(end) {
		return timeblock.Fields{}, false
	}

	var f timeblock.Fields
	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		f.Title = unescapeText(p.Value)
	}
	if p := ev.GetProperty(ical.ComponentPropertyDescription); p != nil && p.Value != "" {
		desc := unescapeText(p.Value)
		f.Description = &desc
	}
	f.Start = start
	f.End = end
	return f, true
}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n")

// unescapeText reverses RFC 5545 TEXT escaping.
func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
