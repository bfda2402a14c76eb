package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
)

func simpleRoster() (*Roster, []*Athlete) {
	e60 := &Event{ID: "e60_g13", EventType: EventM60, Category: CategoryG13, ParticipantCount: 2,
		DurationMinutes: BaseDurationMinutes(EventM60, CategoryG13, 2), PersonnelRequired: 8, PriorityWeight: 10}
	eShot := &Event{ID: "eshot_g13", EventType: EventShotPut, Category: CategoryG13, ParticipantCount: 2,
		DurationMinutes: BaseDurationMinutes(EventShotPut, CategoryG13, 2), PersonnelRequired: 4, PriorityWeight: 8}

	athletes := []*Athlete{
		{Name: "Kari Nordmann", Club: "IL Fart", Events: []*Event{e60, eShot}},
		{Name: "Ola Hansen", Club: "IL Fart", Events: []*Event{e60}},
	}

	log := zerolog.Nop()
	groups := FormEventGroups(athletes, []*Event{e60, eShot}, log)
	return &Roster{Athletes: athletes, EventGroups: groups}, athletes
}

func TestSolveProducesAConflictFreeSchedule(t *testing.T) {
	roster, _ := simpleRoster()
	cfg := Config{MaxTimeSlots: 48, SlotDurationMinutes: DefaultSlotDurationMinutes, VenueConfig: DefaultVenueResolutionConfig}

	result := Solve(roster, cfg, zerolog.Nop())
	if result.Status != StatusSolved {
		t.Fatalf("expected a solved schedule, got status=%s reason=%s", result.Status, result.FailureReason)
	}
	if len(result.Groups) != len(roster.EventGroups) {
		t.Fatalf("expected every event group placed, got %d of %d", len(result.Groups), len(roster.EventGroups))
	}

	// Kari runs both events; they must not overlap (C6 non-conflict).
	var kariSlots []*ScheduledGroup
	for _, sg := range result.Groups {
		for _, e := range sg.Group.Events {
			if e.ID == "e60_g13" || e.ID == "eshot_g13" {
				kariSlots = append(kariSlots, sg)
			}
		}
	}
	if len(kariSlots) != 2 {
		t.Fatalf("expected to find both of Kari's event groups, found %d", len(kariSlots))
	}
	a, b := kariSlots[0], kariSlots[1]
	aEnd := a.EndSlot(result.SlotDurationMinutes)
	bEnd := b.EndSlot(result.SlotDurationMinutes)
	overlap := a.StartSlot < bEnd && b.StartSlot < aEnd
	if overlap {
		t.Errorf("expected Kari's two events not to overlap: %+v / %+v", a, b)
	}
}

func TestSolveUnsolvableWithinTooFewSlots(t *testing.T) {
	roster, _ := simpleRoster()
	cfg := Config{MaxTimeSlots: 1, SlotDurationMinutes: DefaultSlotDurationMinutes, VenueConfig: DefaultVenueResolutionConfig}

	result := Solve(roster, cfg, zerolog.Nop())
	if result.Status != StatusUnsolvable {
		t.Fatalf("expected an unsolvable result with a 1-slot budget, got %s", result.Status)
	}
}
