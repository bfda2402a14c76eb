package reports

import (
	"context"
	"strings"
	"testing"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

func athlete(name, club string, events ...*scheduler.Event) *scheduler.Athlete {
	return &scheduler.Athlete{Name: name, Club: club, Events: events}
}

func TestCompetitorsByClubSortsByClubThenName(t *testing.T) {
	e60 := &scheduler.Event{ID: "e60", EventType: scheduler.EventM60, Category: scheduler.CategoryG13}
	athletes := []*scheduler.Athlete{
		athlete("Zed Nordmann", "IL Styrke", e60),
		athlete("Amy Hansen", "IL Fart", e60),
		athlete("Bo Hansen", "IL Fart", e60),
	}

	rows := CompetitorsByClub(athletes)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Club != "IL Fart" || rows[0].Name != "Amy Hansen" {
		t.Errorf("expected IL Fart/Amy Hansen first, got %s/%s", rows[0].Club, rows[0].Name)
	}
	if rows[2].Club != "IL Styrke" {
		t.Errorf("expected IL Styrke last, got %s", rows[2].Club)
	}
}

func TestWriteCompetitorsByClubHeader(t *testing.T) {
	var buf strings.Builder
	err := WriteCompetitorsByClub(&buf, []ClubRow{{Club: "IL Fart", Name: "Kari", Category: scheduler.CategoryJ13, Events: "60m"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Klubb,Navn,Klasse,Øvelser\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}
}

func TestTyrvingRowsLeavesBibAndPointsBlank(t *testing.T) {
	e := &scheduler.Event{ID: "e1", EventType: scheduler.EventM60, Category: scheduler.CategoryG13}
	rows := TyrvingRows([]*scheduler.Athlete{athlete("Kari Nordmann", "IL Fart", e)}, "Spring Meet")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	var buf strings.Builder
	if err := WriteTyrvingCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	fields := strings.Split(lines[1], ",")
	if fields[0] != "" {
		t.Errorf("expected blank Startnummer, got %q", fields[0])
	}
	if fields[len(fields)-1] != "" {
		t.Errorf("expected blank Tyrvingpoeng, got %q", fields[len(fields)-1])
	}
}

func TestStartListRowsCentersLanesPerTrackGroup(t *testing.T) {
	e1 := &scheduler.Event{ID: "e1", EventType: scheduler.EventM60, Category: scheduler.CategoryG13, ParticipantCount: 4}
	a1 := athlete("Kari Nordmann", "IL Fart", e1)
	group := &scheduler.EventGroup{ID: "g1", EventType: scheduler.EventM60, Events: []*scheduler.Event{e1}}
	result := &scheduler.SchedulingResult{
		Status: scheduler.StatusSolved,
		Groups: []*scheduler.ScheduledGroup{{Group: group, StartSlot: 0, Venue: scheduler.VenueTrack}},
	}

	rowsPerGroup, err := StartListRows(context.Background(), result, []*scheduler.Athlete{a1})
	if err != nil {
		t.Fatal(err)
	}
	if len(rowsPerGroup) != 1 {
		t.Fatalf("expected 1 track group, got %d", len(rowsPerGroup))
	}
	entries := rowsPerGroup[0]
	if len(entries) != 4 {
		t.Fatalf("expected 4 lane entries, got %d", len(entries))
	}
	// 4 participants on an 8-lane track center at offset (8-4)/2=2, lanes 3..6.
	for i, e := range entries {
		if e.Lane != 3+i {
			t.Errorf("entry %d: expected lane %d, got %d", i, 3+i, e.Lane)
		}
	}
}

func TestCompetitionManagerRowsMapsCategoriesAndCodes(t *testing.T) {
	e := &scheduler.Event{ID: "e1", EventType: scheduler.EventM60, Category: scheduler.CategoryMS}
	group := &scheduler.EventGroup{ID: "g1", EventType: scheduler.EventM60, Events: []*scheduler.Event{e}}
	result := &scheduler.SchedulingResult{
		Status:              scheduler.StatusSolved,
		SlotDurationMinutes: 5,
		Groups:              []*scheduler.ScheduledGroup{{Group: group, StartSlot: 2, Venue: scheduler.VenueTrack}},
	}

	rows, err := CompetitionManagerRows(result, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Category != "M" {
		t.Errorf("expected senior men to rewrite to M, got %s", rows[0].Category)
	}
	if rows[0].Event != "60m" {
		t.Errorf("expected event code 60m, got %s", rows[0].Event)
	}
	if rows[0].StartTime != "09:10" {
		t.Errorf("expected start time 09:10 (slot 2 * 5min after 09:00), got %s", rows[0].StartTime)
	}
}

func TestCompetitionManagerRowsRejectsUnsolvedResult(t *testing.T) {
	result := &scheduler.SchedulingResult{Status: scheduler.StatusTimeout}
	if _, err := CompetitionManagerRows(result, 9, 0); err == nil {
		t.Fatal("expected an error for a non-solved result")
	}
}
