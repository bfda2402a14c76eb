package scheduler

import (
	"fmt"
)

// Config holds the tunable parameters of a scheduling run (§4.2).
type Config struct {
	TotalPersonnel      int
	MaxTimeSlots        int
	SlotDurationMinutes int
	VenueConfig         VenueResolutionConfig
}

// DefaultSlotDurationMinutes matches the source's default slot length.
const DefaultSlotDurationMinutes = 5

// placerMaxSteps bounds the backtracking search, mirroring the teacher's
// MaxIterations safety valve against runaway search on a pathological
// input.
const placerMaxSteps = 2_000_000

// placementConstraints narrows a placement attempt: the finish deadlines
// and recovery gap a given solver call must respect (§4.2 C9/C10), plus
// the makespan ceiling it must stay within.
type placementConstraints struct {
	maxSlots           int
	youngestFinishSlot int // -1 = unconstrained
	youngFinishSlot    int // -1 = unconstrained
	trackFinishSlot    int // -1 = unconstrained
	olderMinGapSlots   int // 0 = unconstrained
}

// problem is the fully-prepared, order-fixed scheduling input: every
// EventGroup in the single deterministic placement order the backtracking
// search walks (track groups in C7/C8 order, then field groups by ID),
// plus the duration-in-slots and venue of each, and the athlete/older-pair
// indices the placer checks incrementally.
type problem struct {
	ordered           []*EventGroup
	durationSlots     map[string]int
	venue             map[string]Venue
	athleteGroups     map[string][]string         // athlete name -> group IDs
	athleteConflicts  map[string]map[string]bool  // group ID -> conflicting group IDs (C6)
	olderAthletePairs [][2]string                 // group ID pairs sharing a 13+ athlete with 2+ groups
	youngestGroups    map[string]bool
	youngOnlyGroups   map[string]bool
	trackGroupIDs     map[string]bool
	trackOrder        []*EventGroup // track groups in C7/C8 order
}

func buildProblem(groups []*EventGroup, athletes []*Athlete, cfg Config) (*problem, error) {
	var trackGroups, fieldGroups []*EventGroup
	for _, g := range groups {
		if IsTrackEvent(g.EventType) {
			trackGroups = append(trackGroups, g)
		} else {
			fieldGroups = append(fieldGroups, g)
		}
	}

	trackOrder := sortTrackGroupsForSpacing(trackGroups, athletes)
	fieldOrder := sortFieldGroupsByID(fieldGroups)

	ordered := make([]*EventGroup, 0, len(groups))
	ordered = append(ordered, trackOrder...)
	ordered = append(ordered, fieldOrder...)

	durationSlots := make(map[string]int, len(ordered))
	venue := make(map[string]Venue, len(ordered))
	for _, g := range ordered {
		minutes := g.DurationMinutes()
		slots := (minutes + cfg.SlotDurationMinutes - 1) / cfg.SlotDurationMinutes
		if slots < 1 {
			slots = 1
		}
		durationSlots[g.ID] = slots

		v, ok := ResolveVenue(g.EventType, g.PrimaryCategory(), cfg.VenueConfig)
		if !ok {
			return nil, fmt.Errorf("scheduler: no venue resolved for event group %s", g.ID)
		}
		venue[g.ID] = v
	}

	roster := &Roster{Athletes: athletes, EventGroups: ordered}
	athleteGroups := roster.athleteEventGroups()

	youngestGroups := make(map[string]bool)
	youngGroups := make(map[string]bool)
	for _, g := range ordered {
		if g.HasYoungestAthlete() {
			youngestGroups[g.ID] = true
		}
		if g.HasYoungAthlete() {
			youngGroups[g.ID] = true
		}
	}
	youngOnlyGroups := make(map[string]bool)
	for gid := range youngGroups {
		if !youngestGroups[gid] {
			youngOnlyGroups[gid] = true
		}
	}

	olderPairs := buildOlderAthletePairs(ordered, athletes, athleteGroups, youngGroups)

	trackGroupIDs := make(map[string]bool, len(trackOrder))
	for _, g := range trackOrder {
		trackGroupIDs[g.ID] = true
	}

	athleteConflicts := make(map[string]map[string]bool, len(ordered))
	for _, g := range ordered {
		athleteConflicts[g.ID] = make(map[string]bool)
	}
	for _, gids := range athleteGroups {
		for i := 0; i < len(gids); i++ {
			for j := i + 1; j < len(gids); j++ {
				athleteConflicts[gids[i]][gids[j]] = true
				athleteConflicts[gids[j]][gids[i]] = true
			}
		}
	}

	return &problem{
		ordered:           ordered,
		durationSlots:     durationSlots,
		venue:             venue,
		athleteGroups:     athleteGroups,
		athleteConflicts:  athleteConflicts,
		olderAthletePairs: olderPairs,
		youngestGroups:    youngestGroups,
		youngOnlyGroups:   youngOnlyGroups,
		trackGroupIDs:     trackGroupIDs,
		trackOrder:        trackOrder,
	}, nil
}

// buildOlderAthletePairs finds every pair of EventGroups shared by a
// single 13+ (not young-category) athlete with 2+ groups, per
// `get_older_athletes_with_multiple_events`.
func buildOlderAthletePairs(groups []*EventGroup, athletes []*Athlete, athleteGroups map[string][]string, youngGroups map[string]bool) [][2]string {
	var pairs [][2]string
	seen := make(map[[2]string]bool)
	for _, a := range athletes {
		gids, ok := athleteGroups[a.Name]
		if !ok || len(gids) < 2 {
			continue
		}
		isYoung := false
		for _, e := range a.Events {
			if IsYoungCategory(e.Category) {
				isYoung = true
				break
			}
		}
		if isYoung {
			continue
		}
		for i := 0; i < len(gids); i++ {
			for j := i + 1; j < len(gids); j++ {
				g1, g2 := gids[i], gids[j]
				key := [2]string{g1, g2}
				if g1 > g2 {
					key = [2]string{g2, g1}
				}
				if !seen[key] {
					seen[key] = true
					pairs = append(pairs, key)
				}
			}
		}
	}
	return pairs
}

// placement is one feasible assignment of start slots, indexed by group
// ID, produced by the backtracking search.
type placement map[string]int

// placeSchedule runs the deterministic constructive/backtracking search
// (§9 Design Notes, alternative (ii)) that stands in for the source's Z3
// binding: groups are tried in the single fixed order `buildProblem`
// establishes, each at the earliest slot that satisfies every hard
// constraint against groups already placed; if no slot works the search
// backtracks to the previous group and tries its next candidate. This
// generalizes the teacher's `constructedSchedule.Add` earliest-candidate-
// with-retry idiom from a single resource dimension (room) to this
// problem's five (venue, athlete, track order, track spacing, age/older
// deadlines).
//
// Because the group order and the per-group slot search are both fully
// deterministic, identical input always yields identical output (P8).
func placeSchedule(p *problem, c placementConstraints) (placement, bool) {
	result := make(placement, len(p.ordered))
	steps := 0
	ok := backtrack(p, c, 0, result, &steps)
	if !ok {
		return nil, false
	}
	return result, true
}

func backtrack(p *problem, c placementConstraints, idx int, partial placement, steps *int) bool {
	if idx == len(p.ordered) {
		return true
	}
	g := p.ordered[idx]
	duration := p.durationSlots[g.ID]
	maxStart := c.maxSlots - duration
	if maxStart < 0 {
		return false
	}

	for start := 0; start <= maxStart; start++ {
		*steps++
		if *steps > placerMaxSteps {
			return false
		}
		if feasible(p, c, g, start, partial) {
			partial[g.ID] = start
			if backtrack(p, c, idx+1, partial, steps) {
				return true
			}
			delete(partial, g.ID)
		}
	}
	return false
}

// feasible checks a candidate (group, start) against every already-placed
// group for C5/C6/C8/C9/C10/C11.
func feasible(p *problem, c placementConstraints, g *EventGroup, start int, placed placement) bool {
	duration := p.durationSlots[g.ID]
	end := start + duration

	if c.trackFinishSlot >= 0 && p.trackGroupIDs[g.ID] && end > c.trackFinishSlot+1 {
		return false
	}
	if c.youngestFinishSlot >= 0 && p.youngestGroups[g.ID] && end > c.youngestFinishSlot+1 {
		return false
	}
	if c.youngFinishSlot >= 0 && p.youngOnlyGroups[g.ID] && end > c.youngFinishSlot+1 {
		return false
	}

	// C11 symmetry breaking: the first track group must start at slot 0.
	if len(p.trackOrder) > 0 && p.trackOrder[0].ID == g.ID && start != 0 {
		return false
	}

	// C7/C8: strict precedence + spacing against the immediately
	// preceding track group in the fixed C7/C8 order.
	if p.trackGroupIDs[g.ID] {
		for i, tg := range p.trackOrder {
			if tg.ID != g.ID || i == 0 {
				continue
			}
			prev := p.trackOrder[i-1]
			prevStart, ok := placed[prev.ID]
			if !ok {
				return false
			}
			gap := trackGapSlots(prev, g)
			if start < prevStart+p.durationSlots[prev.ID]+gap {
				return false
			}
			break
		}
	}

	myVenue := p.venue[g.ID]
	myConflicts := p.athleteConflicts[g.ID]

	for otherID, otherStart := range placed {
		otherDuration := p.durationSlots[otherID]
		otherEnd := otherStart + otherDuration
		overlaps := start < otherEnd && otherStart < end
		if !overlaps {
			continue
		}

		// C5 venue exclusivity.
		if p.venue[otherID] == myVenue {
			return false
		}

		// C6 athlete non-conflict.
		if myConflicts[otherID] {
			return false
		}
	}

	// C10 older-athlete recovery gap (OR-constraint): checked against any
	// already-placed partner group from the same pair.
	if c.olderMinGapSlots > 0 {
		for _, pair := range p.olderAthletePairs {
			var partnerID string
			switch {
			case pair[0] == g.ID:
				partnerID = pair[1]
			case pair[1] == g.ID:
				partnerID = pair[0]
			default:
				continue
			}
			partnerStart, ok := placed[partnerID]
			if !ok {
				continue
			}
			partnerDuration := p.durationSlots[partnerID]
			satisfied := start >= partnerStart+partnerDuration+c.olderMinGapSlots ||
				partnerStart >= start+duration+c.olderMinGapSlots
			if !satisfied {
				return false
			}
		}
	}

	return true
}

