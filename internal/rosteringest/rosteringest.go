// Package rosteringest parses the roster CSV (§6): the registration
// export a meet organizer hands the scheduler, with Norwegian
// event/category names mapped to the scheduler's EventType/Category
// enums by fixed dictionaries, grounded on the source's Isonen-format
// parser.
package rosteringest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// eventNameDictionary maps Norwegian event names to EventType, mirroring
// isonen_parser.parse_event_type.
var eventNameDictionary = map[string]scheduler.EventType{
	"60 meter":       scheduler.EventM60,
	"100 meter":      scheduler.EventM100,
	"200 meter":      scheduler.EventM200,
	"400 meter":      scheduler.EventM400,
	"800 meter":      scheduler.EventM800,
	"1500 meter":     scheduler.EventM1500,
	"5000 meter":     scheduler.EventM5000,
	"60 meter hekk":  scheduler.EventM60Hurdles,
	"80 meter hekk":  scheduler.EventM80Hurdles,
	"100 meter hekk": scheduler.EventM100Hurdles,
	"Kule":           scheduler.EventShotPut,
	"Lengde":         scheduler.EventLongJump,
	"Tresteg":        scheduler.EventTripleJump,
	"Høyde":          scheduler.EventHighJump,
	"Diskos":         scheduler.EventDiscus,
	"Spyd":           scheduler.EventJavelin,
	"Slegge":         scheduler.EventHammer,
	"Liten ball":     scheduler.EventBallThrow,
	"Stavsprang":     scheduler.EventPoleVault,
}

// categoryDictionary maps Norwegian category names to Category, mirroring
// isonen_parser.parse_category.
var categoryDictionary = map[string]scheduler.Category{
	"Jenter 6-8 Rekrutt": scheduler.CategoryJ10,
	"Jenter 9":           scheduler.CategoryJ10,
	"Jenter 10":          scheduler.CategoryJ10,
	"Jenter 11":          scheduler.CategoryJ11,
	"Jenter 12":          scheduler.CategoryJ12,
	"Jenter 13":          scheduler.CategoryJ13,
	"Jenter 14":          scheduler.CategoryJ14,
	"Jenter 15":          scheduler.CategoryJ15,
	"Jenter 16":          scheduler.CategoryJ16,
	"Jenter 17":          scheduler.CategoryJ17,
	"Jenter 18/19":       scheduler.CategoryJ1819,
	"Jenter 18-19":       scheduler.CategoryJ1819,
	"Gutter 6-8 Rekrutt": scheduler.CategoryG10,
	"Gutter 9":           scheduler.CategoryG10,
	"Gutter 10":          scheduler.CategoryG10,
	"Gutter 11":          scheduler.CategoryG11,
	"Gutter 12":          scheduler.CategoryG12,
	"Gutter 13":          scheduler.CategoryG13,
	"Gutter 14":          scheduler.CategoryG14,
	"Gutter 15":          scheduler.CategoryG15,
	"Gutter 16":          scheduler.CategoryG16,
	"Gutter 17":          scheduler.CategoryG17,
	"Gutter 18/19":       scheduler.CategoryG1819,
	"Gutter 18-19":       scheduler.CategoryG1819,
	"Kvinner Senior":     scheduler.CategoryKS,
	"Kvinner senior":     scheduler.CategoryKS,
	"Menn Senior":        scheduler.CategoryMS,
	"Menn senior":        scheduler.CategoryMS,
}

// RowError is a row-level parsing failure recorded alongside the row
// number that produced it (§7 InvalidInput).
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) String() string { return fmt.Sprintf("line %d: %s", e.Line, e.Reason) }

// Result is the output of Parse: the formed Events/Athletes ready for the
// Event-Group Former, plus any row-level warnings accumulated along the
// way.
type Result struct {
	Events   []*scheduler.Event
	Athletes []*scheduler.Athlete
	Warnings []RowError
}

// requiredColumns are the roster CSV's English column names (§6); the
// value dictionaries above remain Norwegian since that is the language
// the external registration system actually exports in.
var requiredColumns = []string{
	"first-name", "last-name", "gender", "category", "club",
	"event-name", "date", "start-time",
}

// Parse reads a roster CSV and returns its Events and Athletes. Rows with
// unparseable or unknown event/category values are skipped with a
// warning (§7). Parse fails fatally when the header cannot be read, a
// required column is missing, or zero rows survive.
func Parse(r io.Reader, log zerolog.Logger) (*Result, error) {
	buf := bufio.NewReader(r)
	firstLine, err := buf.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("rosteringest: empty or unreadable CSV: %w", err)
	}

	delimiter := ','
	if i := bytes.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		delimiter = ';'
	}

	cr := csv.NewReader(buf)
	cr.Comma = delimiter
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("rosteringest: empty or unreadable CSV: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := colIndex[want]; !ok {
			return nil, fmt.Errorf("rosteringest: missing required column %q", want)
		}
	}

	events := make(map[string]*scheduler.Event)
	var eventOrder []string
	athleteEvents := make(map[string][]string) // athlete key -> event IDs
	athleteMeta := make(map[string]*scheduler.Athlete)
	participantCount := make(map[string]int)

	line := 1
	var warnings []RowError
	col := func(rec []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rosteringest: read error at line %d: %w", line+1, err)
		}
		line++

		firstName := col(rec, "first-name")
		lastName := col(rec, "last-name")
		if firstName == "" && lastName == "" {
			continue
		}
		name := strings.TrimSpace(firstName + " " + lastName)

		eventName := col(rec, "event-name")
		categoryName := col(rec, "category")
		if eventName == "" || categoryName == "" {
			warnings = append(warnings, RowError{line, "missing event-name or category"})
			continue
		}

		eventType, ok := eventNameDictionary[eventName]
		if !ok {
			warnings = append(warnings, RowError{line, fmt.Sprintf("unknown event name %q", eventName)})
			continue
		}
		category, ok := categoryDictionary[categoryName]
		if !ok {
			warnings = append(warnings, RowError{line, fmt.Sprintf("unknown category %q", categoryName)})
			continue
		}

		eventID := fmt.Sprintf("%s_%s", eventType, category)
		if _, exists := events[eventID]; !exists {
			events[eventID] = &scheduler.Event{
				ID:                eventID,
				EventType:         eventType,
				Category:          category,
				PersonnelRequired: personnelRequired(eventType),
				PriorityWeight:    priorityWeight(eventType, category),
			}
			eventOrder = append(eventOrder, eventID)
		}
		participantCount[eventID]++

		club := col(rec, "club")
		if _, ok := athleteMeta[name]; !ok {
			athleteMeta[name] = &scheduler.Athlete{Name: name, Club: club}
		}
		athleteEvents[name] = append(athleteEvents[name], eventID)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("rosteringest: no valid events found in roster CSV")
	}

	for _, id := range eventOrder {
		e := events[id]
		e.ParticipantCount = participantCount[id]
		e.DurationMinutes = scheduler.BaseDurationMinutes(e.EventType, e.Category, e.ParticipantCount)
	}

	var athletes []*scheduler.Athlete
	for name, a := range athleteMeta {
		for _, eid := range athleteEvents[name] {
			a.Events = append(a.Events, events[eid])
		}
		athletes = append(athletes, a)
	}

	var eventsList []*scheduler.Event
	for _, id := range eventOrder {
		eventsList = append(eventsList, events[id])
	}

	log.Info().Int("events", len(eventsList)).Int("athletes", len(athletes)).
		Int("warnings", len(warnings)).Msg("parsed roster CSV")

	return &Result{Events: eventsList, Athletes: athletes, Warnings: warnings}, nil
}

var trackEventTypes = map[scheduler.EventType]bool{
	scheduler.EventM60: true, scheduler.EventM100: true, scheduler.EventM200: true,
	scheduler.EventM400: true, scheduler.EventM800: true, scheduler.EventM1500: true,
	scheduler.EventM5000: true, scheduler.EventM60Hurdles: true,
	scheduler.EventM80Hurdles: true, scheduler.EventM100Hurdles: true,
}

func personnelRequired(et scheduler.EventType) int {
	if trackEventTypes[et] {
		return 8
	}
	switch et {
	case scheduler.EventShotPut, scheduler.EventDiscus, scheduler.EventHammer:
		return 4
	default:
		return 3
	}
}

func priorityWeight(et scheduler.EventType, category scheduler.Category) int {
	base := 8
	if trackEventTypes[et] {
		base = 10
	}
	if category == scheduler.CategoryKS || category == scheduler.CategoryMS {
		base += 2
	}
	return base
}
