package scheduler

import (
	"github.com/rs/zerolog"
)

// Solve runs the full three-phase scheduling pipeline (§4.2 Solve driver)
// over a Roster: Phase 1 minimizes makespan, Phase 2a/2b minimize the
// age-10 and age-11/12 finish slots in priority order, and Phase 3
// maximizes the recovery gap between an older multi-event athlete's
// EventGroups, all while respecting the hard constraints C1-C11.
func Solve(roster *Roster, cfg Config, log zerolog.Logger) *SchedulingResult {
	if cfg.SlotDurationMinutes <= 0 {
		cfg.SlotDurationMinutes = DefaultSlotDurationMinutes
	}

	p, err := buildProblem(roster.EventGroups, roster.Athletes, cfg)
	if err != nil {
		return &SchedulingResult{Status: StatusUnsolvable, FailureReason: err.Error(), SlotDurationMinutes: cfg.SlotDurationMinutes}
	}

	log.Info().Int("event_groups", len(p.ordered)).Int("max_time_slots", cfg.MaxTimeSlots).
		Msg("phase 1: finding minimum slot count")

	base := placementConstraints{
		maxSlots:           cfg.MaxTimeSlots,
		youngestFinishSlot: -1,
		youngFinishSlot:    -1,
		trackFinishSlot:    -1,
	}
	initial, ok := placeSchedule(p, base)
	if !ok {
		return &SchedulingResult{
			Status:              StatusUnsolvable,
			SlotDurationMinutes: cfg.SlotDurationMinutes,
			FailureReason:       "no feasible schedule within max_time_slots",
		}
	}
	initialSlots := makespanOf(p, initial)

	bestSlots := initialSlots
	low, high := 1, initialSlots-1
	for low <= high {
		mid := (low + high) / 2
		c := base
		c.maxSlots = mid
		if _, ok := placeSchedule(p, c); ok {
			bestSlots = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}
	log.Info().Int("minimum_slots", bestSlots).Msg("phase 1 complete")

	// Phase 2a: youngest (age-10) finish slot.
	bestYoungestFinish := -1
	if len(p.youngestGroups) > 0 {
		minFinish := maxDurationAmong(p, p.youngestGroups) - 1
		if minFinish < 0 {
			minFinish = 0
		}
		lo, hi := minFinish, bestSlots-1
		candidate := bestSlots - 1
		found := false
		for lo <= hi {
			mid := (lo + hi) / 2
			c := base
			c.maxSlots = bestSlots
			c.youngestFinishSlot = mid
			if _, ok := placeSchedule(p, c); ok {
				candidate = mid
				found = true
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}
		if found {
			bestYoungestFinish = candidate
		}
		log.Info().Int("youngest_finish_slot", bestYoungestFinish).Msg("phase 2a complete")
	}

	// Phase 2b: young (ages 11-12) finish slot.
	bestYoungFinish := -1
	if len(p.youngOnlyGroups) > 0 {
		minFinish := maxDurationAmong(p, p.youngOnlyGroups) - 1
		if minFinish < 0 {
			minFinish = 0
		}
		lo, hi := minFinish, bestSlots-1
		candidate := bestSlots - 1
		found := false
		for lo <= hi {
			mid := (lo + hi) / 2
			c := base
			c.maxSlots = bestSlots
			c.youngestFinishSlot = bestYoungestFinish
			c.youngFinishSlot = mid
			if _, ok := placeSchedule(p, c); ok {
				candidate = mid
				found = true
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}
		if found {
			bestYoungFinish = candidate
		}
		log.Info().Int("young_finish_slot", bestYoungFinish).Msg("phase 2b complete")
	}

	// Phase 3: maximize older-athlete recovery gap, allowing the timeline
	// to expand back up to the full configured max_time_slots.
	bestGap := 0
	finalConstraints := placementConstraints{
		maxSlots:           cfg.MaxTimeSlots,
		youngestFinishSlot: bestYoungestFinish,
		youngFinishSlot:    bestYoungFinish,
		trackFinishSlot:    -1,
	}
	bestAssignment, ok := placeSchedule(p, finalConstraints)
	if !ok {
		return &SchedulingResult{
			Status:              StatusUnsolvable,
			SlotDurationMinutes: cfg.SlotDurationMinutes,
			FailureReason:       "no feasible schedule honoring age-tier deadlines",
		}
	}

	if len(p.olderAthletePairs) > 0 {
		availableExtra := cfg.MaxTimeSlots - bestSlots
		maxPossibleGap := (availableExtra + bestSlots) / 3
		if half := bestSlots / 2; maxPossibleGap < half {
			maxPossibleGap = half
		}
		if maxPossibleGap < 1 {
			maxPossibleGap = 1
		}

		lo, hi := 1, maxPossibleGap
		for lo <= hi {
			mid := (lo + hi) / 2
			c := finalConstraints
			c.olderMinGapSlots = mid
			if assignment, ok := placeSchedule(p, c); ok {
				bestGap = mid
				bestAssignment = assignment
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		log.Info().Int("older_min_gap_slots", bestGap).Msg("phase 3 complete")
	}

	groups := make([]*ScheduledGroup, 0, len(p.ordered))
	for _, g := range p.ordered {
		groups = append(groups, &ScheduledGroup{
			Group:     g,
			StartSlot: bestAssignment[g.ID],
			Venue:     p.venue[g.ID],
		})
	}

	result := &SchedulingResult{
		Status:              StatusSolved,
		Groups:              groups,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		MakespanSlots:       makespanOf(p, bestAssignment),
	}
	if bestYoungestFinish >= 0 {
		result.YoungestFinishSlot = bestYoungestFinish
	}
	if bestYoungFinish >= 0 {
		result.YoungFinishSlot = bestYoungFinish
	}
	return result
}

func makespanOf(p *problem, assignment placement) int {
	max := 0
	for gid, start := range assignment {
		end := start + p.durationSlots[gid]
		if end > max {
			max = end
		}
	}
	return max
}

func maxDurationAmong(p *problem, groupIDs map[string]bool) int {
	max := 0
	for gid := range groupIDs {
		if d := p.durationSlots[gid]; d > max {
			max = d
		}
	}
	return max
}
