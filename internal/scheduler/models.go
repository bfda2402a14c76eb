// Package scheduler is the scheduling core of a track-and-field meet
// management system. Given a registration roster it produces a
// conflict-free, time-ordered plan that assigns each event group a start
// slot on a discrete timeline, and can validate and re-materialize that
// plan after a human has hand-edited it.
//
// The package is a pure function from (roster, config) to a
// SchedulingResult: no process-wide mutable state, no persistence between
// invocations. See SPEC_FULL.md at the repository root for the full
// specification this package implements.
package scheduler

// EventType is a closed enumeration of athletic disciplines.
type EventType string

const (
	EventM60           EventType = "60m"
	EventM100          EventType = "100m"
	EventM200          EventType = "200m"
	EventM400          EventType = "400m"
	EventM800          EventType = "800m"
	EventM1500         EventType = "1500m"
	EventM5000         EventType = "5000m"
	EventM60Hurdles    EventType = "60m-hurdles"
	EventM80Hurdles    EventType = "80m-hurdles"
	EventM100Hurdles   EventType = "100m-hurdles"
	EventShotPut       EventType = "shot-put"
	EventLongJump      EventType = "long-jump"
	EventTripleJump    EventType = "triple-jump"
	EventHighJump      EventType = "high-jump"
	EventDiscus        EventType = "discus"
	EventJavelin       EventType = "javelin"
	EventHammer        EventType = "hammer"
	EventBallThrow     EventType = "ball-throw"
	EventPoleVault     EventType = "pole-vault"
)

// Category is a closed enumeration of age-gender classes.
type Category string

const (
	CategoryJ10   Category = "J10" // recruit
	CategoryJ11   Category = "J11"
	CategoryJ12   Category = "J12"
	CategoryJ13   Category = "J13"
	CategoryJ14   Category = "J14"
	CategoryJ15   Category = "J15"
	CategoryJ16   Category = "J16"
	CategoryJ17   Category = "J17"
	CategoryJ1819 Category = "J18-19"
	CategoryG10   Category = "G10" // recruit
	CategoryG11   Category = "G11"
	CategoryG12   Category = "G12"
	CategoryG13   Category = "G13"
	CategoryG14   Category = "G14"
	CategoryG15   Category = "G15"
	CategoryG16   Category = "G16"
	CategoryG17   Category = "G17"
	CategoryG1819 Category = "G18-19"
	CategoryKS    Category = "KS" // women senior
	CategoryMS    Category = "MS" // men senior
	// CategoryFIFA is the synthetic category for non-athletic breaks
	// manually inserted into the event-overview table.
	CategoryFIFA Category = "FIFA"
)

// Venue is a physical resource; at most one EventGroup may be active on a
// venue per slot.
type Venue string

const (
	VenueTrack            Venue = "track"
	VenueThrowingCircle   Venue = "throwing_circle"
	VenueShotPutCircle    Venue = "shot_put_circle"
	VenueShotPutCircle2   Venue = "shot_put_circle_2"
	VenueJumpingPit       Venue = "jumping_pit"
	VenueHighJumpArea     Venue = "high_jump_area"
	VenueHighJumpArea2    Venue = "high_jump_area_2"
	VenueJavelinArea      Venue = "javelin_area"
)

// youngestCategories are age-10 (recruit) classes: highest priority to
// finish early.
var youngestCategories = map[Category]bool{
	CategoryJ10: true,
	CategoryG10: true,
}

// youngCategories are age 10/11/12 classes: secondary finish priority.
var youngCategories = map[Category]bool{
	CategoryJ10: true, CategoryG10: true,
	CategoryJ11: true, CategoryG11: true,
	CategoryJ12: true, CategoryG12: true,
}

// IsYoungestCategory reports whether a category is age 10 (recruit).
func IsYoungestCategory(c Category) bool { return youngestCategories[c] }

// IsYoungCategory reports whether a category is age 10, 11, or 12.
func IsYoungCategory(c Category) bool { return youngCategories[c] }

// categoryAgeOrder gives the ordinal age used for sorting; seniors sort
// last.
var categoryAgeOrder = map[Category]int{
	CategoryJ10: 10, CategoryG10: 10,
	CategoryJ11: 11, CategoryG11: 11,
	CategoryJ12: 12, CategoryG12: 12,
	CategoryJ13: 13, CategoryG13: 13,
	CategoryJ14: 14, CategoryG14: 14,
	CategoryJ15: 15, CategoryG15: 15,
	CategoryJ16: 16, CategoryG16: 16,
	CategoryJ17: 17, CategoryG17: 17,
	CategoryJ1819: 18, CategoryG1819: 18,
	CategoryKS: 99, CategoryMS: 99,
}

// CategoryAgeOrder returns the ordinal age for a category (lower =
// younger); unknown categories (including FIFA) sort last.
func CategoryAgeOrder(c Category) int {
	if order, ok := categoryAgeOrder[c]; ok {
		return order
	}
	return 99
}

// IsBoysCategory reports whether a category belongs to the boys/men side
// of the roster (used for track gender separation, §4.1 Step 3a).
func IsBoysCategory(c Category) bool {
	switch c {
	case CategoryG10, CategoryG11, CategoryG12, CategoryG13, CategoryG14,
		CategoryG15, CategoryG16, CategoryG17, CategoryG1819, CategoryMS:
		return true
	default:
		return false
	}
}

// TrackDistanceOrder is the physical starting-position order track events
// run in, counter-clockwise around the track by distance-to-goal. Index in
// this slice is the event's ordering key for C7/C8.
var TrackDistanceOrder = []EventType{
	EventM60,
	EventM60Hurdles,
	EventM80Hurdles,
	EventM100,
	EventM100Hurdles,
	EventM200,
	EventM5000,
	EventM1500,
	EventM400,
	EventM800,
}

var trackDistanceOrderIndex = func() map[EventType]int {
	m := make(map[EventType]int, len(TrackDistanceOrder))
	for i, et := range TrackDistanceOrder {
		m[et] = i
	}
	return m
}()

// GetTrackEventOrder returns the ordering index for a track event type
// (lower = earlier); non-track event types return 999.
func GetTrackEventOrder(et EventType) int {
	if order, ok := trackDistanceOrderIndex[et]; ok {
		return order
	}
	return 999
}

var hurdlesEvents = map[EventType]bool{
	EventM60Hurdles:  true,
	EventM80Hurdles:  true,
	EventM100Hurdles: true,
}

// IsHurdlesEvent reports whether an event type is a hurdles discipline.
func IsHurdlesEvent(et EventType) bool { return hurdlesEvents[et] }

// distanceBlock is one of the five physical starting-position blocks on
// the track, in TrackDistanceOrder index ranges. A transition across
// blocks means the starter crew must physically relocate, which is the
// root cause of the 2-slot "position change" gap in C8.
type distanceBlock struct{ lo, hi int }

var distanceBlocks = []distanceBlock{
	{0, 2}, // 60m, 60m-hurdles, 80m-hurdles
	{3, 4}, // 100m, 100m-hurdles
	{5, 7}, // 200m, 5000m, 1500m (all at the +200m mark or beyond)
	{8, 8}, // 400m
	{9, 9}, // 800m
}

func blockOf(order int) int {
	for i, b := range distanceBlocks {
		if order >= b.lo && order <= b.hi {
			return i
		}
	}
	return -1
}

// EventVenueMapping is the total function EventType -> primary Venue.
var EventVenueMapping = map[EventType]Venue{
	EventM60:         VenueTrack,
	EventM100:        VenueTrack,
	EventM200:        VenueTrack,
	EventM400:        VenueTrack,
	EventM800:        VenueTrack,
	EventM1500:       VenueTrack,
	EventM5000:       VenueTrack,
	EventM60Hurdles:  VenueTrack,
	EventM80Hurdles:  VenueTrack,
	EventM100Hurdles: VenueTrack,
	EventShotPut:     VenueShotPutCircle,
	EventDiscus:      VenueThrowingCircle,
	EventHammer:      VenueThrowingCircle,
	EventJavelin:     VenueJavelinArea,
	EventBallThrow:   VenueJavelinArea,
	EventLongJump:    VenueJumpingPit,
	EventTripleJump:  VenueJumpingPit,
	EventHighJump:    VenueHighJumpArea,
	EventPoleVault:   VenueHighJumpArea,
}

// secondaryVenueRule routes an (EventType, eligible Category set) pair to
// a secondary venue instead of the primary one.
type secondaryVenueRule struct {
	venue    Venue
	eligible map[Category]bool
}

// SecondaryVenueConfig maps EventType to its secondary-venue rule, if any.
var SecondaryVenueConfig = map[EventType]secondaryVenueRule{
	EventShotPut: {venue: VenueShotPutCircle2, eligible: youngestCategories},
}

// VenueResolutionConfig toggles whether SecondaryVenueConfig redirection
// applies at all. Exposed as configuration per §9 Open Questions: the
// source toggled this with a module-level boolean; this spec makes it a
// per-meet setting instead of a global installation setting.
type VenueResolutionConfig struct {
	UseSecondaryVenues bool
}

// DefaultVenueResolutionConfig matches the source's default: secondary
// venues enabled.
var DefaultVenueResolutionConfig = VenueResolutionConfig{UseSecondaryVenues: true}

// ResolveVenue returns the venue used by an EventGroup of the given event
// type whose first Event has the given category. Pure function, no solver
// involvement (§4.3).
func ResolveVenue(et EventType, category Category, cfg VenueResolutionConfig) (Venue, bool) {
	primary, ok := EventVenueMapping[et]
	if !ok {
		return "", false
	}
	if !cfg.UseSecondaryVenues {
		return primary, true
	}
	if rule, ok := SecondaryVenueConfig[et]; ok && rule.eligible[category] {
		return rule.venue, true
	}
	return primary, true
}

// EventDuration is the base duration (minutes) for each event type before
// any per-category override or participant-count scaling.
var EventDuration = map[EventType]int{
	EventM60:         5,
	EventM100:        5,
	EventM200:        5,
	EventM400:        5,
	EventM800:        5,
	EventM1500:       10,
	EventM5000:       15,
	EventM60Hurdles:  5,
	EventM80Hurdles:  5,
	EventM100Hurdles: 5,
	EventShotPut:     6,
	EventDiscus:      6,
	EventJavelin:     6,
	EventHammer:      6,
	EventBallThrow:   3,
	EventLongJump:    6,
	EventTripleJump:  6,
	EventHighJump:    6,
	EventPoleVault:   12,
}

// eventCategoryOverrideKey keys EventCategoryDurationOverride.
type eventCategoryOverrideKey struct {
	eventType EventType
	category  Category
}

// EventCategoryDurationOverride overrides the base per-event-type duration
// for specific (EventType, Category) pairs, e.g. younger athletes take
// less time per attempt.
var EventCategoryDurationOverride = map[eventCategoryOverrideKey]int{
	{EventShotPut, CategoryJ10}: 3,
	{EventShotPut, CategoryJ11}: 4,
	{EventShotPut, CategoryJ12}: 4,
	{EventShotPut, CategoryG10}: 3,
	{EventShotPut, CategoryG11}: 4,
	{EventShotPut, CategoryG12}: 4,
	{EventHammer, CategoryJ11}:  4,
	{EventHammer, CategoryJ12}:  4,
	{EventHammer, CategoryG11}:  4,
	{EventHammer, CategoryG12}:  4,
	{EventDiscus, CategoryJ11}:  4,
	{EventDiscus, CategoryJ12}:  4,
	{EventDiscus, CategoryG11}:  4,
	{EventDiscus, CategoryG12}:  4,
	{EventLongJump, CategoryJ10}: 3,
	{EventLongJump, CategoryJ11}: 4,
	{EventLongJump, CategoryJ12}: 4,
	{EventLongJump, CategoryG10}: 3,
	{EventLongJump, CategoryG11}: 4,
	{EventLongJump, CategoryG12}: 4,
}

// jumpingSetupEvents get extra setup time per participant in
// BaseDurationMinutes field-duration scaling (§3 Event duration rule).
var jumpingSetupEvents = map[EventType]bool{
	EventHighJump:  true,
	EventPoleVault: true,
}

// fieldEvents is the set of event types whose EventGroup duration sums
// rather than maxes (sequential attempts on shared equipment).
var fieldEvents = map[EventType]bool{
	EventShotPut: true, EventDiscus: true, EventJavelin: true,
	EventHammer: true, EventBallThrow: true, EventLongJump: true,
	EventTripleJump: true, EventHighJump: true, EventPoleVault: true,
}

// IsFieldEvent reports whether an event type is a field (not track)
// discipline.
func IsFieldEvent(et EventType) bool { return fieldEvents[et] }

// IsTrackEvent reports whether an event type runs on the track.
func IsTrackEvent(et EventType) bool { return EventVenueMapping[et] == VenueTrack }

// maxFieldEventDurationMinutes caps a single field Event's duration, per
// the source's 60-minute clamp (isonen_parser._calculate_event_duration).
const maxFieldEventDurationMinutes = 60

// BaseDurationMinutes computes an individual Event's duration given its
// type, category, and participant count. Track events scale by heat count
// (ceil(count/8)); field events scale by participant count (sequential
// attempts), with extra setup time for the two jumping-pole/high-jump
// disciplines, capped at maxFieldEventDurationMinutes.
func BaseDurationMinutes(et EventType, category Category, participantCount int) int {
	base, ok := EventCategoryDurationOverride[eventCategoryOverrideKey{et, category}]
	if !ok {
		base = EventDuration[et]
	}

	if participantCount < 1 {
		participantCount = 1
	}

	if IsFieldEvent(et) {
		scaled := base * participantCount
		if jumpingSetupEvents[et] {
			scaled += 5
		}
		if scaled > maxFieldEventDurationMinutes {
			scaled = maxFieldEventDurationMinutes
		}
		return scaled
	}

	heats := (participantCount + 7) / 8
	return base * heats
}

// HurdleSpec describes the physical hurdle setup for one (EventType,
// Category) combination: how many hurdles, how far to the first one, the
// spacing between them, and the hurdle height.
type HurdleSpec struct {
	NumHurdles        int
	FirstHurdleMeters float64
	SpacingMeters     float64
	HeightCM          float64
}

// hurdleSpecs is keyed by (EventType, Category). Distances and heights
// follow World Athletics youth hurdle specifications.
var hurdleSpecs = map[eventCategoryOverrideKeyHurdle]HurdleSpec{
	{EventM60Hurdles, CategoryG11}: {8, 12.0, 7.0, 68.6},
	{EventM60Hurdles, CategoryJ11}: {8, 12.0, 7.0, 68.6},
	{EventM60Hurdles, CategoryG12}: {8, 12.0, 7.0, 68.6},
	{EventM60Hurdles, CategoryJ12}: {8, 12.0, 7.0, 68.6},
	{EventM80Hurdles, CategoryG13}: {8, 12.0, 7.5, 76.2},
	{EventM80Hurdles, CategoryJ13}: {8, 11.5, 7.5, 76.2},
	{EventM80Hurdles, CategoryG14}: {8, 12.5, 8.0, 76.2},
	{EventM80Hurdles, CategoryJ14}: {8, 12.0, 7.5, 76.2},
	{EventM100Hurdles, CategoryG15}: {10, 13.0, 8.5, 91.4},
	{EventM100Hurdles, CategoryJ15}: {10, 13.0, 8.0, 76.2},
	{EventM100Hurdles, CategoryG16}: {10, 13.72, 9.14, 100.0},
	{EventM100Hurdles, CategoryJ16}: {10, 13.0, 8.5, 76.2},
	{EventM100Hurdles, CategoryG17}: {10, 13.72, 9.14, 106.7},
	{EventM100Hurdles, CategoryJ17}: {10, 13.0, 8.5, 84.0},
	{EventM100Hurdles, CategoryG1819}: {10, 13.72, 9.14, 106.7},
	{EventM100Hurdles, CategoryJ1819}: {10, 13.0, 8.5, 84.0},
	{EventM100Hurdles, CategoryMS}: {10, 13.72, 9.14, 106.7},
	{EventM100Hurdles, CategoryKS}: {10, 13.0, 8.5, 84.0},
}

type eventCategoryOverrideKeyHurdle = eventCategoryOverrideKey

// GetHurdleSpec returns the hurdle setup for an (EventType, Category)
// pair, or false if the pair has no hurdle specification (e.g. it isn't a
// hurdles event).
func GetHurdleSpec(et EventType, category Category) (HurdleSpec, bool) {
	spec, ok := hurdleSpecs[eventCategoryOverrideKey{et, category}]
	return spec, ok
}
