// Package hurdleplan generates the hurdle setup plan (§6): per-heat
// hurdle count/spacing and a lane allocation table, grounded on the
// source's hurdle_plan_generator.py.
package hurdleplan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

const lanesOnTrack = 8

// Lane is one lane's allocation: either an athlete category/height, or a
// gutter lane (Category == "" marks a gutter) inserted between height
// zones.
type Lane struct {
	Number   int
	Category scheduler.Category
	HeightCM float64
	Gutter   bool
}

// Heat is one hurdle EventGroup's setup plan: the physical hurdle
// configuration plus its lane allocation.
type Heat struct {
	Group             *scheduler.EventGroup
	StartTime         string
	NumHurdles        int
	FirstHurdleMeters float64
	SpacingMeters     float64
	Lanes             []Lane
}

// Build walks a solved SchedulingResult and produces one Heat per hurdle
// EventGroup, in ascending start-slot order, using the athlete counts
// already carried on each Event.
func Build(result *scheduler.SchedulingResult, startHour, startMinute int) []Heat {
	var heats []Heat

	sortedGroups := make([]*scheduler.ScheduledGroup, len(result.Groups))
	copy(sortedGroups, result.Groups)
	sort.SliceStable(sortedGroups, func(i, j int) bool {
		return sortedGroups[i].StartSlot < sortedGroups[j].StartSlot
	})

	for _, sg := range sortedGroups {
		g := sg.Group
		if !scheduler.IsHurdlesEvent(g.EventType) {
			continue
		}
		spec, ok := firstSpec(g)
		if !ok {
			continue
		}

		minutes := startHour*60 + startMinute + sg.StartSlot*result.SlotDurationMinutes
		startTime := fmt.Sprintf("%d:%02d", minutes/60, minutes%60)

		heats = append(heats, Heat{
			Group:             g,
			StartTime:         startTime,
			NumHurdles:        spec.NumHurdles,
			FirstHurdleMeters: spec.FirstHurdleMeters,
			SpacingMeters:     spec.SpacingMeters,
			Lanes:             assignLanes(g),
		})
	}

	return heats
}

func firstSpec(g *scheduler.EventGroup) (scheduler.HurdleSpec, bool) {
	for _, e := range g.Events {
		if spec, ok := scheduler.GetHurdleSpec(g.EventType, e.Category); ok {
			return spec, true
		}
	}
	return scheduler.HurdleSpec{}, false
}

type catInfo struct {
	category scheduler.Category
	heightCM float64
	count    int
}

// assignLanes packs each category's athletes into contiguous lanes
// grouped by hurdle height, inserting one gutter lane between adjacent
// height zones, and centers the populated block across the 8-lane track
// — a direct port of `_assign_lanes`.
func assignLanes(g *scheduler.EventGroup) []Lane {
	var infos []catInfo
	for _, e := range g.Events {
		spec, ok := scheduler.GetHurdleSpec(g.EventType, e.Category)
		if !ok || e.ParticipantCount <= 0 {
			continue
		}
		infos = append(infos, catInfo{e.Category, spec.HeightCM, e.ParticipantCount})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].heightCM != infos[j].heightCM {
			return infos[i].heightCM < infos[j].heightCM
		}
		return infos[i].category < infos[j].category
	})

	var zones [][]catInfo
	var currentHeight float64
	haveHeight := false
	for _, info := range infos {
		if !haveHeight || info.heightCM != currentHeight {
			zones = append(zones, nil)
			currentHeight = info.heightCM
			haveHeight = true
		}
		zones[len(zones)-1] = append(zones[len(zones)-1], info)
	}

	totalLanes := 0
	for _, info := range infos {
		totalLanes += info.count
	}
	if len(zones) > 1 {
		totalLanes += len(zones) - 1
	}

	offset := (lanesOnTrack - totalLanes) / 2
	if offset < 0 {
		offset = 0
	}

	var lanes []Lane
	laneNum := 1 + offset
	for zoneIdx, zone := range zones {
		if zoneIdx > 0 {
			lanes = append(lanes, Lane{Number: laneNum, Gutter: true})
			laneNum++
		}
		for _, info := range zone {
			for i := 0; i < info.count; i++ {
				lanes = append(lanes, Lane{Number: laneNum, Category: info.category, HeightCM: info.heightCM})
				laneNum++
			}
		}
	}

	return lanes
}

// FormatMeters renders a distance the way the source's `_fmt` does:
// minimal decimal representation, no trailing zeros.
func FormatMeters(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
	return strings.TrimRight(s, ".")
}
