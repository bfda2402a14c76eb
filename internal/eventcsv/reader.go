package eventcsv

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Read parses an event-overview CSV (§4.5 parsing rules): required
// columns, per-row temporal self-consistency (end after start, duration
// arithmetic exact). It does not check cross-row hard constraints —
// see Validate for that.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("eventcsv: empty or unreadable CSV: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[h] = i
	}
	for _, want := range Header {
		if _, ok := colIndex[want]; !ok {
			return nil, fmt.Errorf("eventcsv: missing required column %q", want)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("eventcsv: read error at line %d: %w", line+1, err)
		}
		line++

		fields := make(map[string]string, len(Header))
		for _, h := range Header {
			fields[h] = rec[colIndex[h]]
		}
		row, err := rowFromRecord(fields, line)
		if err != nil {
			return nil, fmt.Errorf("eventcsv: validation error: %w", err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("eventcsv: CSV contains no data rows")
	}

	return rows, nil
}

// SlotAssignments computes each row's start slot relative to baseDate,
// raising an error if a row's start time does not align to a
// slot_duration_minutes boundary (§6 event-overview CSV, §4.6 algorithm).
func SlotAssignments(rows []Row, baseDate string, slotDurationMinutes int) (map[string]int, error) {
	base, err := parseDate(baseDate)
	if err != nil {
		return nil, err
	}

	assignments := make(map[string]int, len(rows))
	for _, row := range rows {
		rowDate, err := parseDate(row.Date)
		if err != nil {
			return nil, err
		}
		start, err := parseClock(row.StartTime)
		if err != nil {
			return nil, err
		}

		dayOffsetMinutes := int(rowDate.Sub(base).Hours()) * 60
		minutesFromStart := dayOffsetMinutes + start.Hour()*60 + start.Minute()

		if minutesFromStart < 0 {
			return nil, fmt.Errorf("eventcsv: event %s starts before base time", row.EventGroupID)
		}
		if minutesFromStart%slotDurationMinutes != 0 {
			return nil, fmt.Errorf(
				"eventcsv: event %s start time %s does not align with %d-minute slot boundaries",
				row.EventGroupID, row.StartTime, slotDurationMinutes,
			)
		}
		assignments[row.EventGroupID] = minutesFromStart / slotDurationMinutes
	}
	return assignments, nil
}
