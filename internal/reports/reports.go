// Package reports produces the post-scheduling CSV exports a meet
// organizer hands off to timing and results systems: competitors grouped
// by club, a Tyrving-format per-athlete-event row set, start-list lane
// assignments, and the competition-manager import CSV. Grounded on
// competitors_by_club.py, opentrack_to_tyrving_csv.py, start_lists.py,
// and csv_exporter.py.
package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// ClubRow is one athlete's entry in the competitors-by-club export,
// mirroring competitors_by_club.py's Klubb/Navn/Klasse/Øvelser row.
type ClubRow struct {
	Club     string
	Name     string
	Category scheduler.Category
	Events   string // semicolon-joined, sorted event names
}

// CompetitorsByClub groups a roster's athletes by club and lists each
// athlete's events, sorted by club then athlete name (competitors_by_club.py
// sorts by bib; this roster carries no bib numbers, so name is the stable
// tiebreaker).
func CompetitorsByClub(athletes []*scheduler.Athlete) []ClubRow {
	var rows []ClubRow
	for _, a := range athletes {
		seen := make(map[string]bool)
		var names []string
		for _, e := range a.Events {
			label := string(e.EventType)
			if !seen[label] {
				seen[label] = true
				names = append(names, label)
			}
		}
		sort.Strings(names)

		category := scheduler.Category("")
		if len(a.Events) > 0 {
			category = a.Events[0].Category
		}
		rows = append(rows, ClubRow{
			Club:     a.Club,
			Name:     a.Name,
			Category: category,
			Events:   joinSemicolon(names),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Club != rows[j].Club {
			return rows[i].Club < rows[j].Club
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// WriteCompetitorsByClub writes the Norwegian-headed CSV
// competitors_by_club.py produces.
func WriteCompetitorsByClub(w io.Writer, rows []ClubRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"Klubb", "Navn", "Klasse", "Øvelser"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Club, r.Name, string(r.Category), r.Events}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// TyrvingRow is one athlete-event entry in the Tyrving-format export. The
// points column is left blank: this module only runs before the meet, and
// opentrack_to_tyrving_csv.py's points come from results the timing system
// produces afterward.
type TyrvingRow struct {
	Name     string
	Club     string
	Category scheduler.Category
	Event    string
	Meeting  string
}

// TyrvingRows produces one row per athlete per event, grounded on
// opentrack_to_tyrving_csv.py's per-result row shape.
func TyrvingRows(athletes []*scheduler.Athlete, meetingName string) []TyrvingRow {
	var rows []TyrvingRow
	for _, a := range athletes {
		for _, e := range a.Events {
			rows = append(rows, TyrvingRow{
				Name:     a.Name,
				Club:     a.Club,
				Category: e.Category,
				Event:    string(e.EventType),
				Meeting:  meetingName,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Club != rows[j].Club {
			return rows[i].Club < rows[j].Club
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Event < rows[j].Event
	})
	return rows
}

// WriteTyrvingCSV writes the Startnummer/Navn/Klubb/Klasse/Øvelse/Stevne/
// Tyrvingpoeng header opentrack_to_tyrving_csv.py uses, with Startnummer
// and Tyrvingpoeng left blank (no bib assignment, no results yet).
func WriteTyrvingCSV(w io.Writer, rows []TyrvingRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"Startnummer", "Navn", "Klubb", "Klasse", "Øvelse", "Stevne", "Tyrvingpoeng"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{"", r.Name, r.Club, string(r.Category), r.Event, r.Meeting, ""}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// StartListEntry is one athlete's lane assignment within a scheduled
// track EventGroup, grounded on start_lists.py's lane-assignment data
// (PDF rendering itself is out of scope here, per SPEC_FULL.md's
// non-goals).
type StartListEntry struct {
	GroupID string
	Event   scheduler.EventType
	Lane    int
	Name    string
	Club    string
}

// StartListRows builds one StartListEntry slice per scheduled track
// EventGroup, computed concurrently across groups with errgroup since each
// group's lane assignment is independent — mirroring the `reports` CLI
// subcommand's concurrent per-event fan-out.
func StartListRows(ctx context.Context, result *scheduler.SchedulingResult, athletes []*scheduler.Athlete) ([][]StartListEntry, error) {
	var trackGroups []*scheduler.ScheduledGroup
	for _, sg := range result.Groups {
		if scheduler.IsTrackEvent(sg.Group.EventType) {
			trackGroups = append(trackGroups, sg)
		}
	}

	eventToAthlete := make(map[string]*scheduler.Athlete)
	for _, a := range athletes {
		for _, e := range a.Events {
			eventToAthlete[e.ID] = a
		}
	}

	out := make([][]StartListEntry, len(trackGroups))
	g, _ := errgroup.WithContext(ctx)
	for i, sg := range trackGroups {
		i, sg := i, sg
		g.Go(func() error {
			out[i] = laneAssignment(sg.Group, eventToAthlete)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reports: start list generation: %w", err)
	}
	return out, nil
}

// laneAssignment centers a track EventGroup's athletes across an 8-lane
// track, lane 1 first. Unlike the hurdle plan this never inserts gutter
// lanes: start_lists.py assigns every lane it has in sequence.
func laneAssignment(g *scheduler.EventGroup, eventToAthlete map[string]*scheduler.Athlete) []StartListEntry {
	const lanesOnTrack = 8

	total := 0
	for _, e := range g.Events {
		total += e.ParticipantCount
	}
	offset := (lanesOnTrack - total) / 2
	if offset < 0 {
		offset = 0
	}

	var entries []StartListEntry
	lane := 1 + offset
	for _, e := range g.Events {
		a := eventToAthlete[e.ID]
		name, club := "", ""
		if a != nil {
			name, club = a.Name, a.Club
		}
		for i := 0; i < e.ParticipantCount; i++ {
			entries = append(entries, StartListEntry{
				GroupID: g.ID,
				Event:   g.EventType,
				Lane:    lane,
				Name:    name,
				Club:    club,
			})
			lane++
		}
	}
	return entries
}

// eventTypeToCode maps an EventType to the competition-manager import
// system's short event code, ported verbatim from EVENT_TYPE_TO_CODE.
var eventTypeToCode = map[scheduler.EventType]string{
	scheduler.EventM60:         "60m",
	scheduler.EventM100:        "100m",
	scheduler.EventM200:        "200m",
	scheduler.EventM400:        "400m",
	scheduler.EventM800:        "800m",
	scheduler.EventM1500:       "1500m",
	scheduler.EventM5000:       "5000m",
	scheduler.EventM60Hurdles:  "60H",
	scheduler.EventM80Hurdles:  "80H",
	scheduler.EventM100Hurdles: "100H",
	scheduler.EventShotPut:     "SP",
	scheduler.EventLongJump:    "LJ",
	scheduler.EventTripleJump:  "TJ",
	scheduler.EventHighJump:    "HJ",
	scheduler.EventDiscus:      "DT",
	scheduler.EventJavelin:     "JT",
	scheduler.EventHammer:      "HT",
	scheduler.EventBallThrow:   "BT",
	scheduler.EventPoleVault:   "PV",
}

// categoryToCompetitionManager rewrites a Category into the competition
// manager's import format: recruit categories become "G-rekrutt"/
// "J-rekrutt", seniors collapse to "M"/"W", everything else passes
// through unchanged. Ported from `_category_to_opentrack`.
func categoryToCompetitionManager(c scheduler.Category) string {
	switch c {
	case scheduler.CategoryMS:
		return "M"
	case scheduler.CategoryKS:
		return "W"
	case scheduler.CategoryG10:
		return "G-rekrutt"
	case scheduler.CategoryJ10:
		return "J-rekrutt"
	default:
		return string(c)
	}
}

// CompetitionManagerRow is one category/event/start-time entry in the
// competition-manager import CSV.
type CompetitionManagerRow struct {
	Category  string
	Event     string
	StartTime string
}

// CompetitionManagerRows builds the import rows export_schedule_csv
// produces: one row per (category, event code, start time), sorted by
// time then event then category.
func CompetitionManagerRows(result *scheduler.SchedulingResult, startHour, startMinute int) ([]CompetitionManagerRow, error) {
	if result.Status != scheduler.StatusSolved {
		return nil, fmt.Errorf("reports: cannot export a %s schedule", result.Status)
	}

	var rows []CompetitionManagerRow
	for _, sg := range result.Groups {
		code, ok := eventTypeToCode[sg.Group.EventType]
		if !ok {
			continue
		}
		minutes := startHour*60 + startMinute + sg.StartSlot*result.SlotDurationMinutes
		timeStr := fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)

		seen := make(map[scheduler.Category]bool)
		for _, e := range sg.Group.Events {
			if seen[e.Category] {
				continue
			}
			seen[e.Category] = true
			rows = append(rows, CompetitionManagerRow{
				Category:  categoryToCompetitionManager(e.Category),
				Event:     code,
				StartTime: timeStr,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StartTime != rows[j].StartTime {
			return rows[i].StartTime < rows[j].StartTime
		}
		if rows[i].Event != rows[j].Event {
			return rows[i].Event < rows[j].Event
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}

// WriteCompetitionManagerCSV writes the category,event,start_time CSV
// export_schedule_csv produces.
func WriteCompetitionManagerCSV(w io.Writer, rows []CompetitionManagerRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"category", "event", "start_time"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Category, r.Event, r.StartTime}); err != nil {
			return err
		}
	}
	return cw.Error()
}

func joinSemicolon(items []string) string {
	s := ""
	for i, item := range items {
		if i > 0 {
			s += "; "
		}
		s += item
	}
	return s
}
