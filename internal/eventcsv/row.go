// Package eventcsv implements the event-overview CSV round trip (§6,
// §4.4-§4.6): rendering a solved SchedulingResult as the canonical
// EventScheduleRow table, re-parsing a possibly hand-edited table,
// re-validating every hard constraint without invoking the solver, and
// materializing a validated table back into a SchedulingResult.
package eventcsv

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// Row is one line of the event-overview CSV (§6): an opaque, stable
// event_group_id, the event type and comma-joined sorted category list,
// the resolved venue, a date and HH:MM start/end time, and the total
// duration in minutes.
type Row struct {
	EventGroupID    string
	EventType       scheduler.EventType
	Categories      string
	Venue           scheduler.Venue
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	DurationMinutes int
}

// Header is the fixed column order written and expected on import.
var Header = []string{
	"event_group_id", "event_type", "categories", "venue",
	"date", "start_time", "end_time", "duration_minutes",
}

func (r Row) toRecord() []string {
	return []string{
		r.EventGroupID,
		string(r.EventType),
		r.Categories,
		string(r.Venue),
		r.Date,
		r.StartTime,
		r.EndTime,
		strconv.Itoa(r.DurationMinutes),
	}
}

// parseDate accepts YYYY-MM-DD or DD.MM.YYYY per §4.5's parsing rule,
// normalizing to YYYY-MM-DD internally.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02.01.2006", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or DD.MM.YYYY", s)
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

func rowFromRecord(rec map[string]string, line int) (Row, error) {
	r := Row{
		EventGroupID: strings.TrimSpace(rec["event_group_id"]),
		EventType:    scheduler.EventType(strings.TrimSpace(rec["event_type"])),
		Categories:   strings.TrimSpace(rec["categories"]),
		Venue:        scheduler.Venue(strings.TrimSpace(rec["venue"])),
		Date:         strings.TrimSpace(rec["date"]),
		StartTime:    strings.TrimSpace(rec["start_time"]),
		EndTime:      strings.TrimSpace(rec["end_time"]),
	}
	if r.EventGroupID == "" {
		return Row{}, fmt.Errorf("line %d: event_group_id is required", line)
	}

	dur, err := strconv.Atoi(strings.TrimSpace(rec["duration_minutes"]))
	if err != nil || dur < 0 {
		return Row{}, fmt.Errorf("line %d: invalid duration_minutes %q", line, rec["duration_minutes"])
	}
	r.DurationMinutes = dur

	if _, err := parseDate(r.Date); err != nil {
		return Row{}, fmt.Errorf("line %d: %w", line, err)
	}
	start, err := parseClock(r.StartTime)
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %w", line, err)
	}
	end, err := parseClock(r.EndTime)
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %w", line, err)
	}
	if !end.After(start) {
		return Row{}, fmt.Errorf("line %d: end_time (%s) must be after start_time (%s)", line, r.EndTime, r.StartTime)
	}
	actualMinutes := int(end.Sub(start).Minutes())
	if actualMinutes != r.DurationMinutes {
		return Row{}, fmt.Errorf("line %d: duration mismatch: start/end times indicate %d minutes but duration_minutes is %d",
			line, actualMinutes, r.DurationMinutes)
	}

	return r, nil
}

// sortedCategories renders an EventGroup's categories as the comma-joined,
// sorted, deduplicated list the CSV format requires.
func sortedCategories(g *scheduler.EventGroup) string {
	seen := make(map[scheduler.Category]bool)
	var cats []string
	for _, e := range g.Events {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, string(e.Category))
		}
	}
	sort.Strings(cats)
	return strings.Join(cats, ",")
}
