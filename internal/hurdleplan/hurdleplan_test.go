package hurdleplan

import (
	"testing"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

func event(et scheduler.EventType, cat scheduler.Category, count int) *scheduler.Event {
	return &scheduler.Event{
		ID:               string(et) + "_" + string(cat),
		EventType:        et,
		Category:         cat,
		ParticipantCount: count,
	}
}

func TestAssignLanesCentersSingleZone(t *testing.T) {
	g := &scheduler.EventGroup{
		ID:        "g1",
		EventType: scheduler.EventM60Hurdles,
		Events:    []*scheduler.Event{event(scheduler.EventM60Hurdles, scheduler.CategoryG11, 4)},
	}

	lanes := assignLanes(g)
	if len(lanes) != 4 {
		t.Fatalf("expected 4 lanes, got %d", len(lanes))
	}
	// 4 lanes on an 8-lane track center at offset (8-4)/2 = 2, so lane numbers 3..6.
	for i, l := range lanes {
		want := 3 + i
		if l.Number != want {
			t.Errorf("lane %d: want number %d, got %d", i, want, l.Number)
		}
		if l.Gutter {
			t.Errorf("lane %d: unexpected gutter lane in a single height zone", i)
		}
	}
}

func TestAssignLanesInsertsGutterBetweenHeightZones(t *testing.T) {
	// G15 (91.4cm) and J15 (76.2cm) hurdle at different heights, so they
	// form two zones even within the same EventGroup.
	g := &scheduler.EventGroup{
		ID:        "g2",
		EventType: scheduler.EventM100Hurdles,
		Events: []*scheduler.Event{
			event(scheduler.EventM100Hurdles, scheduler.CategoryG15, 2),
			event(scheduler.EventM100Hurdles, scheduler.CategoryJ15, 2),
		},
	}

	lanes := assignLanes(g)

	gutterCount := 0
	for _, l := range lanes {
		if l.Gutter {
			gutterCount++
		}
	}
	if gutterCount != 1 {
		t.Errorf("expected exactly 1 gutter lane between the two height zones, got %d", gutterCount)
	}
	if len(lanes) != 5 {
		t.Errorf("expected 2+2 athletes plus 1 gutter lane = 5 lanes, got %d", len(lanes))
	}
}

func TestAssignLanesIgnoresEmptyEvents(t *testing.T) {
	g := &scheduler.EventGroup{
		ID:        "g3",
		EventType: scheduler.EventM60Hurdles,
		Events: []*scheduler.Event{
			event(scheduler.EventM60Hurdles, scheduler.CategoryG11, 0),
			event(scheduler.EventM60Hurdles, scheduler.CategoryJ11, 3),
		},
	}

	lanes := assignLanes(g)
	if len(lanes) != 3 {
		t.Errorf("expected the zero-participant event to contribute no lanes, got %d", len(lanes))
	}
}

func TestFormatMetersTrimsTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		12.0:  "12",
		13.72: "13.72",
		7.5:   "7.5",
	}
	for in, want := range cases {
		if got := FormatMeters(in); got != want {
			t.Errorf("FormatMeters(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildSkipsNonHurdleGroups(t *testing.T) {
	result := &scheduler.SchedulingResult{
		Status:              scheduler.StatusSolved,
		SlotDurationMinutes: 5,
		Groups: []*scheduler.ScheduledGroup{
			{
				Group: &scheduler.EventGroup{
					ID:        "g1",
					EventType: scheduler.EventM100,
					Events:    []*scheduler.Event{event(scheduler.EventM100, scheduler.CategoryG13, 4)},
				},
				StartSlot: 0,
			},
			{
				Group: &scheduler.EventGroup{
					ID:        "g2",
					EventType: scheduler.EventM60Hurdles,
					Events:    []*scheduler.Event{event(scheduler.EventM60Hurdles, scheduler.CategoryG11, 4)},
				},
				StartSlot: 3,
			},
		},
	}

	heats := Build(result, 9, 0)
	if len(heats) != 1 {
		t.Fatalf("expected 1 hurdle heat, got %d", len(heats))
	}
	if heats[0].Group.ID != "g2" {
		t.Errorf("expected the hurdles group, got %s", heats[0].Group.ID)
	}
	if heats[0].StartTime != "9:15" {
		t.Errorf("expected start time 9:15 (slot 3 * 5min), got %s", heats[0].StartTime)
	}
}
