package eventcsv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// Violation mirrors scheduler.ConstraintViolation for a row-table-level
// finding (§4.5 V1-V5); the "report all" mode of Validate returns a slice of these instead of
// stopping at the first one.
type Violation = scheduler.ConstraintViolation

// rowSlot is a row paired with its resolved start/end slot, used by every
// V2-V4 check.
type rowSlot struct {
	row   Row
	start int
	end   int // exclusive
}

// Validate re-checks every hard constraint against a hand-edited table
// without invoking the solver (§4.5). It returns a slice holding only the
// first violation found, or nil if every check passes. Pass allViolations=true to collect
// every finding instead of stopping at the first (the "report all" mode).
func Validate(rows []Row, groups []*scheduler.EventGroup, athletes []*scheduler.Athlete, baseDate string, slotDurationMinutes int, allViolations bool) []*Violation {
	var violations []*Violation
	report := func(v *Violation) bool {
		violations = append(violations, v)
		return !allViolations
	}

	// V1 coverage.
	wantIDs := make(map[string]bool, len(groups))
	for _, g := range groups {
		wantIDs[g.ID] = true
	}
	gotIDs := make(map[string]bool, len(rows))
	fifaIDs := make(map[string]bool)
	for _, r := range rows {
		gotIDs[r.EventGroupID] = true
		if strings.EqualFold(r.Categories, string(scheduler.CategoryFIFA)) {
			fifaIDs[r.EventGroupID] = true
		}
	}
	for id := range wantIDs {
		if !gotIDs[id] {
			if report(&Violation{Kind: "V1_coverage", GroupA: id, Message: "event group missing from schedule table"}) {
				return violations
			}
		}
	}
	for id := range gotIDs {
		if !wantIDs[id] && !fifaIDs[id] {
			if report(&Violation{Kind: "V1_coverage", GroupA: id, Message: "schedule table references unknown event group"}) {
				return violations
			}
		}
	}

	assignments, err := SlotAssignments(rows, baseDate, slotDurationMinutes)
	if err != nil {
		return append(violations, &Violation{Kind: "V5_temporal", Message: err.Error()})
	}

	var slots []rowSlot
	for _, r := range rows {
		slotDuration := (r.DurationMinutes + slotDurationMinutes - 1) / slotDurationMinutes
		if slotDuration < 1 {
			slotDuration = 1
		}
		start := assignments[r.EventGroupID]
		slots = append(slots, rowSlot{row: r, start: start, end: start + slotDuration})
	}

	// V2 venue exclusivity (mirrors C5).
	byVenue := make(map[scheduler.Venue][]rowSlot)
	for _, rs := range slots {
		byVenue[rs.row.Venue] = append(byVenue[rs.row.Venue], rs)
	}
	for _, rs := range byVenue {
		sort.Slice(rs, func(i, j int) bool { return rs[i].start < rs[j].start })
		for i := 0; i < len(rs); i++ {
			for j := i + 1; j < len(rs); j++ {
				if overlaps(rs[i], rs[j]) {
					if report(&Violation{
						Kind: "V2_venue_exclusivity", GroupA: rs[i].row.EventGroupID, GroupB: rs[j].row.EventGroupID,
						Message: fmt.Sprintf("both occupy venue %s at overlapping times", rs[i].row.Venue),
					}) {
						return violations
					}
				}
			}
		}
	}

	// V3 athlete non-conflict (mirrors C6), using the original roster.
	athleteGroups := make(map[string][]string)
	eventToGroup := make(map[string]string)
	for _, g := range groups {
		for _, e := range g.Events {
			eventToGroup[e.ID] = g.ID
		}
	}
	for _, a := range athletes {
		seen := make(map[string]bool)
		for _, e := range a.Events {
			gid, ok := eventToGroup[e.ID]
			if !ok || seen[gid] {
				continue
			}
			seen[gid] = true
			athleteGroups[a.Name] = append(athleteGroups[a.Name], gid)
		}
	}
	slotByGroup := make(map[string]rowSlot, len(slots))
	for _, rs := range slots {
		slotByGroup[rs.row.EventGroupID] = rs
	}
	for name, gids := range athleteGroups {
		for i := 0; i < len(gids); i++ {
			for j := i + 1; j < len(gids); j++ {
				s1, ok1 := slotByGroup[gids[i]]
				s2, ok2 := slotByGroup[gids[j]]
				if !ok1 || !ok2 {
					continue
				}
				if overlaps(s1, s2) {
					if report(&Violation{
						Kind: "V3_athlete_conflict", GroupA: gids[i], GroupB: gids[j],
						Message: fmt.Sprintf("athlete %s double-booked", name),
					}) {
						return violations
					}
				}
			}
		}
	}

	// V4 track ordering (mirrors C7), including within-block age ordering.
	canonical := scheduler.CanonicalTrackOrder(groups, athletes)
	for i := 0; i < len(canonical)-1; i++ {
		earlier, later := canonical[i], canonical[i+1]
		es, eok := slotByGroup[earlier.ID]
		ls, lok := slotByGroup[later.ID]
		if !eok || !lok {
			continue
		}
		gap := scheduler.TrackGapSlots(earlier, later)
		if ls.start < es.start+(es.end-es.start)+gap {
			if report(&Violation{
				Kind: "V4_track_order", GroupA: earlier.ID, GroupB: later.ID,
				Message: fmt.Sprintf("expected %s to start at least %d slots after %s begins+ends", later.ID, gap, earlier.ID),
			}) {
				return violations
			}
		}
	}

	return violations
}

func overlaps(a, b rowSlot) bool {
	return a.start < b.end && b.start < a.end
}

// FormatViolations renders violations as single-line causes for CLI
// output (§7 user-visible failure).
func FormatViolations(violations []*Violation) string {
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, v.Error())
	}
	return strings.Join(lines, "\n")
}
