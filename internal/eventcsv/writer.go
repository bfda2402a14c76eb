package eventcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// RowsFromResult renders a solved SchedulingResult as the canonical
// EventScheduleRow table (§4.4): one row per EventGroup start, sorted by
// (start_time, event_type).
//
// Writing an unsolved schedule is an error. Rows that would place an
// event outside the day boundary are emitted faithfully — the Writer
// does not re-validate (§4.4 failure semantics).
func RowsFromResult(result *scheduler.SchedulingResult, baseDate time.Time) ([]Row, error) {
	if result.Status != scheduler.StatusSolved {
		return nil, fmt.Errorf("eventcsv: cannot write unsolved schedule (status=%s)", result.Status)
	}

	rows := make([]Row, 0, len(result.Groups))
	for _, sg := range result.Groups {
		start := baseDate.Add(time.Duration(sg.StartSlot*result.SlotDurationMinutes) * time.Minute)
		duration := sg.Group.DurationMinutes()
		end := start.Add(time.Duration(duration) * time.Minute)

		rows = append(rows, Row{
			EventGroupID:    sg.Group.ID,
			EventType:       sg.Group.EventType,
			Categories:      sortedCategories(sg.Group),
			Venue:           sg.Venue,
			Date:            start.Format("2006-01-02"),
			StartTime:       start.Format("15:04"),
			EndTime:         end.Format("15:04"),
			DurationMinutes: duration,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StartTime != rows[j].StartTime {
			return rows[i].StartTime < rows[j].StartTime
		}
		return rows[i].EventType < rows[j].EventType
	})

	return rows, nil
}

// Write renders rows as the event-overview CSV (§6) to w.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.toRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
