package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
)

func groupParticipantCount(g *EventGroup) int {
	total := 0
	for _, e := range g.Events {
		total += e.ParticipantCount
	}
	return total
}

// TestFormTrackGroupsForGenderSplitsOverCapacity exercises the greedy
// >8-athlete split within a single age-range bucket (G13-14): three
// events totalling 9 participants must come back as more than one
// group, and no group may exceed trackGroupMaxAthletes.
func TestFormTrackGroupsForGenderSplitsOverCapacity(t *testing.T) {
	events := []*Event{
		{ID: "e1", EventType: EventM60, Category: CategoryG13, ParticipantCount: 3},
		{ID: "e2", EventType: EventM60, Category: CategoryG13, ParticipantCount: 3},
		{ID: "e3", EventType: EventM60, Category: CategoryG14, ParticipantCount: 3},
	}
	groups := formTrackGroupsForGender(EventM60, events, boysAgeRanges)

	if len(groups) < 2 {
		t.Fatalf("expected the 9-participant bucket to split into at least 2 groups, got %d", len(groups))
	}
	seen := make(map[string]bool)
	for _, g := range groups {
		if n := groupParticipantCount(g); n > trackGroupMaxAthletes {
			t.Errorf("group %s holds %d athletes, want <= %d", g.ID, n, trackGroupMaxAthletes)
		}
		for _, e := range g.Events {
			seen[e.ID] = true
		}
	}
	for _, e := range events {
		if !seen[e.ID] {
			t.Errorf("event %s missing from the formed groups", e.ID)
		}
	}
}

// TestFormTrackGroupsForGenderSingleRangeStaysWhole confirms a bucket at
// or under the 8-athlete cap is kept as a single EventGroup rather than
// split needlessly.
func TestFormTrackGroupsForGenderSingleRangeStaysWhole(t *testing.T) {
	events := []*Event{
		{ID: "e1", EventType: EventM60, Category: CategoryG13, ParticipantCount: 4},
		{ID: "e2", EventType: EventM60, Category: CategoryG14, ParticipantCount: 4},
	}
	groups := formTrackGroupsForGender(EventM60, events, boysAgeRanges)
	if len(groups) != 1 {
		t.Fatalf("expected an 8-athlete bucket to stay in one group, got %d groups", len(groups))
	}
	if n := groupParticipantCount(groups[0]); n != 8 {
		t.Errorf("expected the combined group to hold 8 athletes, got %d", n)
	}
}

// TestFormFieldGroupsFoldsLoneOver15IntoYoungerTier covers the
// over15Count<=1 fold: a single 15+ athlete must not end up alone in its
// own tier but merged into the 11-14 group, producing a combined "11+"
// tier instead of separate "11-14"/"15+" tiers.
func TestFormFieldGroupsFoldsLoneOver15IntoYoungerTier(t *testing.T) {
	events := []*Event{
		{ID: "recruit", EventType: EventShotPut, Category: CategoryG10, ParticipantCount: 4},
		{ID: "under15", EventType: EventShotPut, Category: CategoryG12, ParticipantCount: 4},
		{ID: "over15", EventType: EventShotPut, Category: CategoryG16, ParticipantCount: 1},
	}
	groups := formFieldGroups(EventShotPut, events)

	var foundOver15Alone bool
	var foundCombined bool
	for _, g := range groups {
		hasUnder15, hasOver15 := false, false
		for _, e := range g.Events {
			if e.ID == "under15" {
				hasUnder15 = true
			}
			if e.ID == "over15" {
				hasOver15 = true
			}
		}
		if hasOver15 && len(g.Events) == 1 {
			foundOver15Alone = true
		}
		if hasUnder15 && hasOver15 {
			foundCombined = true
		}
	}
	if foundOver15Alone {
		t.Errorf("expected the lone 15+ athlete to be folded into the 11-14 tier, not left alone: %v", groups)
	}
	if !foundCombined {
		t.Errorf("expected the under-15 and over-15 events to share a group when over15Count<=1, got %v", groups)
	}
}

// TestFormFieldGroupsKeepsOver15SeparateWhenMoreThanOne confirms the fold
// only applies when over15Count<=1: with two 15+ athletes, the 11-14 and
// 15+ tiers must stay apart.
func TestFormFieldGroupsKeepsOver15SeparateWhenMoreThanOne(t *testing.T) {
	events := []*Event{
		{ID: "under15", EventType: EventShotPut, Category: CategoryG12, ParticipantCount: 4},
		{ID: "over15a", EventType: EventShotPut, Category: CategoryG16, ParticipantCount: 1},
		{ID: "over15b", EventType: EventShotPut, Category: CategoryG17, ParticipantCount: 1},
	}
	groups := formFieldGroups(EventShotPut, events)

	for _, g := range groups {
		hasUnder15, hasOver15 := false, false
		for _, e := range g.Events {
			if e.ID == "under15" {
				hasUnder15 = true
			}
			if e.ID == "over15a" || e.ID == "over15b" {
				hasOver15 = true
			}
		}
		if hasUnder15 && hasOver15 {
			t.Errorf("expected the 11-14 and 15+ tiers to stay separate with 2 older athletes, got merged group %v", g)
		}
	}
}

// TestFormTrackGroupsSeparatesGendersIntoDistinctGroups covers the
// gender-separation boundary: boys and girls entered in the same EventType must
// come back as distinct EventGroups, never mixed in one group.
func TestFormTrackGroupsSeparatesGendersIntoDistinctGroups(t *testing.T) {
	events := []*Event{
		{ID: "boy1", EventType: EventM100, Category: CategoryG15, ParticipantCount: 3},
		{ID: "boy2", EventType: EventM100, Category: CategoryG16, ParticipantCount: 3},
		{ID: "girl1", EventType: EventM100, Category: CategoryJ15, ParticipantCount: 3},
		{ID: "girl2", EventType: EventM100, Category: CategoryJ16, ParticipantCount: 3},
	}
	groups := formTrackGroups(EventM100, events)

	for _, g := range groups {
		boys, girls := false, false
		for _, e := range g.Events {
			if IsBoysCategory(e.Category) {
				boys = true
			} else {
				girls = true
			}
		}
		if boys && girls {
			t.Errorf("expected boys and girls never to share a group, got %v", g)
		}
	}

	var sawBoys, sawGirls bool
	for _, g := range groups {
		for _, e := range g.Events {
			if e.ID == "boy1" || e.ID == "boy2" {
				sawBoys = true
			}
			if e.ID == "girl1" || e.ID == "girl2" {
				sawGirls = true
			}
		}
	}
	if !sawBoys || !sawGirls {
		t.Fatalf("expected both genders represented across the formed groups, got %v", groups)
	}
}

// TestFormEventGroupsDispatchesTrackAndField is a small end-to-end smoke
// test of the Former entry point across both a track and a field
// EventType at once.
func TestFormEventGroupsDispatchesTrackAndField(t *testing.T) {
	track := &Event{ID: "t1", EventType: EventM60, Category: CategoryG13, ParticipantCount: 2}
	field := &Event{ID: "f1", EventType: EventHighJump, Category: CategoryG13, ParticipantCount: 2}
	athletes := []*Athlete{
		{Name: "A", Events: []*Event{track, field}},
	}
	groups := FormEventGroups(athletes, []*Event{track, field}, zerolog.Nop())
	if len(groups) != 2 {
		t.Fatalf("expected one track group and one field group, got %d groups: %v", len(groups), groups)
	}
}
