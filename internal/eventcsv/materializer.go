package eventcsv

import (
	"fmt"
	"strings"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// Materialize turns a validated Row table back into a SchedulingResult
// (§4.6). Rows whose categories field is FIFA produce a synthetic
// single-Event EventGroup representing a non-athletic break rather than
// looking the ID up in groups.
func Materialize(rows []Row, groups []*scheduler.EventGroup, baseDate string, slotDurationMinutes int) (*scheduler.SchedulingResult, error) {
	assignments, err := SlotAssignments(rows, baseDate, slotDurationMinutes)
	if err != nil {
		return nil, err
	}

	groupByID := make(map[string]*scheduler.EventGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}

	result := &scheduler.SchedulingResult{
		Status:              scheduler.StatusSolved,
		SlotDurationMinutes: slotDurationMinutes,
	}

	makespan := 0
	for _, row := range rows {
		var group *scheduler.EventGroup
		if strings.EqualFold(row.Categories, string(scheduler.CategoryFIFA)) {
			group = fifaGroup(row)
		} else {
			g, ok := groupByID[row.EventGroupID]
			if !ok {
				return nil, fmt.Errorf("eventcsv: materializer: unknown event group %s", row.EventGroupID)
			}
			group = g
		}

		start := assignments[row.EventGroupID]
		result.Groups = append(result.Groups, &scheduler.ScheduledGroup{
			Group:     group,
			StartSlot: start,
			Venue:     row.Venue,
		})

		slotDuration := (row.DurationMinutes + slotDurationMinutes - 1) / slotDurationMinutes
		if slotDuration < 1 {
			slotDuration = 1
		}
		if end := start + slotDuration; end > makespan {
			makespan = end
		}
	}
	result.MakespanSlots = makespan

	return result, nil
}

// fifaGroup builds the synthetic non-athletic-break EventGroup a FIFA row
// materializes into: a single Event carrying the row's own duration, with
// no real EventType (the row's declared type is preserved verbatim so a
// re-export round-trips it unchanged).
func fifaGroup(row Row) *scheduler.EventGroup {
	event := &scheduler.Event{
		ID:              row.EventGroupID,
		EventType:       row.EventType,
		Category:        scheduler.CategoryFIFA,
		DurationMinutes: row.DurationMinutes,
	}
	return &scheduler.EventGroup{
		ID:        row.EventGroupID,
		EventType: row.EventType,
		Events:    []*scheduler.Event{event},
	}
}
