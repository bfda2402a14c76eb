package htmlschedule

import (
	"bytes"
	"strings"
	"testing"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

func sampleResult() *scheduler.SchedulingResult {
	g1 := &scheduler.EventGroup{
		ID:        "g1",
		EventType: scheduler.EventM60,
		Events: []*scheduler.Event{
			{ID: "e1", EventType: scheduler.EventM60, Category: scheduler.CategoryG13, DurationMinutes: 5, ParticipantCount: 4},
		},
	}
	g2 := &scheduler.EventGroup{
		ID:        "g2",
		EventType: scheduler.EventShotPut,
		Events: []*scheduler.Event{
			{ID: "e2", EventType: scheduler.EventShotPut, Category: scheduler.CategoryG13, DurationMinutes: 12, ParticipantCount: 2},
		},
	}
	return &scheduler.SchedulingResult{
		Status:              scheduler.StatusSolved,
		SlotDurationMinutes: 5,
		Groups: []*scheduler.ScheduledGroup{
			{Group: g1, StartSlot: 0, Venue: scheduler.VenueTrack},
			{Group: g2, StartSlot: 0, Venue: scheduler.VenueShotPutCircle},
		},
	}
}

func TestRenderRejectsUnsolvedResult(t *testing.T) {
	result := &scheduler.SchedulingResult{Status: scheduler.StatusUnsolvable}
	var buf bytes.Buffer
	if err := Render(&buf, result, "Spring Meet", 9, 0); err == nil {
		t.Fatal("expected Render to reject a non-solved result")
	}
}

func TestRenderProducesOneColumnPerVenue(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleResult(), "Spring Meet", 9, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Spring Meet</title>") {
		t.Error("expected the title to appear in the page <title>")
	}
	if !strings.Contains(out, "<h1>Spring Meet</h1>") {
		t.Error("expected the title to appear as an <h1> heading")
	}
	if !strings.Contains(out, string(scheduler.VenueTrack)) {
		t.Error("expected the track venue as a column header")
	}
	if !strings.Contains(out, string(scheduler.VenueShotPutCircle)) {
		t.Error("expected the shot put circle venue as a column header")
	}
	if !strings.Contains(out, "g1") || !strings.Contains(out, "g2") {
		t.Error("expected both event group IDs to appear in cells")
	}
	if !strings.Contains(out, "09:00") {
		t.Error("expected the 9:00 start time anchored from startHour/startMinute")
	}
}
