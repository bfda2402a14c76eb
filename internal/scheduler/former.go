package scheduler

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// ageRange is one named bucket of categories used to merge track events of
// a single gender into EventGroups (§4.1 Step 3).
type ageRange struct {
	name       string
	categories []Category
}

var boysAgeRanges = []ageRange{
	{"G-recruit", []Category{CategoryG10}},
	{"G11-12", []Category{CategoryG11, CategoryG12}},
	{"G13-14", []Category{CategoryG13, CategoryG14}},
	{"G15+", []Category{CategoryG15, CategoryG16, CategoryG17, CategoryG1819, CategoryMS}},
}

var girlsAgeRanges = []ageRange{
	{"J-recruit", []Category{CategoryJ10}},
	{"J11-12", []Category{CategoryJ11, CategoryJ12}},
	{"J13-14", []Category{CategoryJ13, CategoryJ14}},
	{"J15+", []Category{CategoryJ15, CategoryJ16, CategoryJ17, CategoryJ1819, CategoryKS}},
}

const trackGroupMaxAthletes = 8

// FormEventGroups is the Event-Group Former (§4.1): it takes the Events
// parsed from a roster and packs them into EventGroups the Scheduler can
// place. Track events are split by gender then walked through fixed
// age-range buckets with greedy packing; field events are split into
// Rekrutt/11-14/15+ tiers with greedy packing targeting 4-8 athletes per
// group, folding a lone 15+ athlete into the 11-14 tier so they never
// compete alone.
//
// Grouping is driven entirely by EventType and Category, never by
// insertion order, so the result is stable across runs given the same
// roster (P8).
func FormEventGroups(athletes []*Athlete, events []*Event, log zerolog.Logger) []*EventGroup {
	byType := make(map[EventType][]*Event)
	var order []EventType
	for _, e := range events {
		if _, ok := byType[e.EventType]; !ok {
			order = append(order, e.EventType)
		}
		byType[e.EventType] = append(byType[e.EventType], e)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var groups []*EventGroup
	for _, et := range order {
		evs := byType[et]
		if IsTrackEvent(et) {
			groups = append(groups, formTrackGroups(et, evs)...)
		} else {
			groups = append(groups, formFieldGroups(et, evs)...)
		}
	}

	log.Debug().Int("event_groups", len(groups)).Int("events", len(events)).
		Int("athletes", len(athletes)).Msg("formed event groups")
	return groups
}

func formTrackGroups(et EventType, events []*Event) []*EventGroup {
	var boys, girls []*Event
	for _, e := range events {
		if IsBoysCategory(e.Category) {
			boys = append(boys, e)
		} else {
			girls = append(girls, e)
		}
	}
	var groups []*EventGroup
	groups = append(groups, formTrackGroupsForGender(et, boys, boysAgeRanges)...)
	groups = append(groups, formTrackGroupsForGender(et, girls, girlsAgeRanges)...)
	return groups
}

func formTrackGroupsForGender(et EventType, events []*Event, ranges []ageRange) []*EventGroup {
	remaining := make([]*Event, len(events))
	copy(remaining, events)
	remove := func(target *Event) {
		for i, e := range remaining {
			if e == target {
				remaining = append(remaining[:i], remaining[i+1:]...)
				return
			}
		}
	}

	var groups []*EventGroup
	for _, ar := range ranges {
		want := make(map[Category]bool, len(ar.categories))
		for _, c := range ar.categories {
			want[c] = true
		}
		var rangeEvents []*Event
		for _, e := range remaining {
			if want[e.Category] {
				rangeEvents = append(rangeEvents, e)
			}
		}
		if len(rangeEvents) == 0 {
			continue
		}

		total := 0
		for _, e := range rangeEvents {
			total += e.ParticipantCount
		}

		switch {
		case len(rangeEvents) == 1:
			groups = append(groups, makeTrackGroup(et, rangeEvents))
			remove(rangeEvents[0])
		case total <= trackGroupMaxAthletes:
			groups = append(groups, makeTrackGroup(et, rangeEvents))
			for _, e := range rangeEvents {
				remove(e)
			}
		default:
			sort.SliceStable(rangeEvents, func(i, j int) bool {
				return rangeEvents[i].ParticipantCount < rangeEvents[j].ParticipantCount
			})
			var current []*Event
			currentCount := 0
			flush := func() {
				if len(current) == 0 {
					return
				}
				groups = append(groups, makeTrackGroup(et, current))
				for _, e := range current {
					remove(e)
				}
				current = nil
				currentCount = 0
			}
			for _, e := range rangeEvents {
				if currentCount+e.ParticipantCount <= trackGroupMaxAthletes && len(current) > 0 {
					current = append(current, e)
					currentCount += e.ParticipantCount
				} else {
					flush()
					current = []*Event{e}
					currentCount = e.ParticipantCount
				}
			}
			flush()
		}
	}

	for _, e := range remaining {
		groups = append(groups, makeTrackGroup(et, []*Event{e}))
	}
	return groups
}

func makeTrackGroup(et EventType, events []*Event) *EventGroup {
	return &EventGroup{ID: groupID(et, events), EventType: et, Events: events}
}

var fieldRecruitCategories = []Category{CategoryG10, CategoryJ10}
var fieldUnder15Categories = []Category{
	CategoryG11, CategoryJ11, CategoryG12, CategoryJ12,
	CategoryG13, CategoryJ13, CategoryG14, CategoryJ14,
}
var fieldOver15Categories = []Category{
	CategoryG15, CategoryJ15, CategoryG16, CategoryJ16,
	CategoryG17, CategoryJ17, CategoryG1819, CategoryJ1819,
	CategoryMS, CategoryKS,
}

const (
	fieldGroupMinAthletes = 4
	fieldGroupMaxAthletes = 8
)

// formFieldGroups packs field-event Events into groups of 4-8 athletes,
// keeping the age-10 recruit tier separate (it must finish first) while
// letting 11-14 merge freely, and folding a lone 15+ athlete into the
// 11-14 tier rather than leaving them to compete alone.
func formFieldGroups(et EventType, events []*Event) []*EventGroup {
	if len(events) == 0 {
		return nil
	}

	over15Count := 0
	over15Set := toSet(fieldOver15Categories)
	for _, e := range events {
		if over15Set[e.Category] {
			over15Count += e.ParticipantCount
		}
	}

	type tier struct {
		name       string
		categories []Category
	}
	var tiers []tier
	if over15Count <= 1 {
		tiers = []tier{
			{"recruit", fieldRecruitCategories},
			{"11+", append(append([]Category{}, fieldUnder15Categories...), fieldOver15Categories...)},
		}
	} else {
		tiers = []tier{
			{"recruit", fieldRecruitCategories},
			{"11-14", fieldUnder15Categories},
			{"15+", fieldOver15Categories},
		}
	}

	var groups []*EventGroup
	for _, t := range tiers {
		want := toSet(t.categories)
		var tierEvents []*Event
		for _, e := range events {
			if want[e.Category] {
				tierEvents = append(tierEvents, e)
			}
		}
		if len(tierEvents) == 0 {
			continue
		}

		sort.SliceStable(tierEvents, func(i, j int) bool {
			return tierEvents[i].Category < tierEvents[j].Category
		})

		var current []*Event
		currentCount := 0
		for _, e := range tierEvents {
			if len(current) > 0 && currentCount+e.ParticipantCount > fieldGroupMaxAthletes {
				groups = append(groups, makeFieldGroup(et, current))
				current = nil
				currentCount = 0
			}
			current = append(current, e)
			currentCount += e.ParticipantCount
		}

		if len(current) > 0 {
			if currentCount < fieldGroupMinAthletes && len(groups) > 0 {
				last := groups[len(groups)-1]
				lastCount := 0
				for _, e := range last.Events {
					lastCount += e.ParticipantCount
				}
				if lastCount+currentCount <= fieldGroupMaxAthletes && sameTier(last, want) {
					last.Events = append(last.Events, current...)
					last.ID = groupID(et, last.Events)
					continue
				}
			}
			groups = append(groups, makeFieldGroup(et, current))
		}
	}

	return groups
}

func sameTier(g *EventGroup, want map[Category]bool) bool {
	for _, e := range g.Events {
		if !want[e.Category] {
			return false
		}
	}
	return true
}

func makeFieldGroup(et EventType, events []*Event) *EventGroup {
	return &EventGroup{ID: groupID(et, events), EventType: et, Events: events}
}

func toSet(cats []Category) map[Category]bool {
	m := make(map[Category]bool, len(cats))
	for _, c := range cats {
		m[c] = true
	}
	return m
}

// groupID builds a deterministic identifier from an EventType and the set
// of categories it contains, mirroring the source's "<type>_<cats>_group"
// scheme so IDs stay stable and human-readable across write/read cycles.
func groupID(et EventType, events []*Event) string {
	if len(events) == 1 {
		return fmt.Sprintf("%s_%s_group", et, events[0].Category)
	}
	cats := make([]string, 0, len(events))
	seen := make(map[Category]bool)
	for _, e := range events {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, string(e.Category))
		}
	}
	sort.Strings(cats)
	id := string(et)
	for _, c := range cats {
		id += "_" + c
	}
	return id + "_group"
}
