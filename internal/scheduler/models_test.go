package scheduler

import "testing"

func TestBaseDurationMinutesTrackScalesByHeats(t *testing.T) {
	// 12 participants need 2 heats of up to 8 lanes each.
	got := BaseDurationMinutes(EventM60, CategoryG13, 12)
	want := EventDuration[EventM60] * 2
	if got != want {
		t.Errorf("BaseDurationMinutes(M60, G13, 12) = %d, want %d", got, want)
	}
}

func TestBaseDurationMinutesFieldSumsPerParticipant(t *testing.T) {
	got := BaseDurationMinutes(EventShotPut, CategoryG14, 3)
	want := EventDuration[EventShotPut] * 3
	if got != want {
		t.Errorf("BaseDurationMinutes(ShotPut, G14, 3) = %d, want %d", got, want)
	}
}

func TestBaseDurationMinutesAppliesCategoryOverride(t *testing.T) {
	// G10 shot put has a 3-minute-per-athlete override instead of the 6-minute base.
	got := BaseDurationMinutes(EventShotPut, CategoryG10, 2)
	if got != 6 {
		t.Errorf("expected the G10 shot put override (3min x 2), got %d", got)
	}
}

func TestBaseDurationMinutesCapsFieldEventsAt60(t *testing.T) {
	got := BaseDurationMinutes(EventDiscus, CategoryMS, 100)
	if got != maxFieldEventDurationMinutes {
		t.Errorf("expected field event duration to clamp at %d, got %d", maxFieldEventDurationMinutes, got)
	}
}

func TestBaseDurationMinutesAddsJumpSetupTime(t *testing.T) {
	highJump := BaseDurationMinutes(EventHighJump, CategoryMS, 1)
	if highJump != EventDuration[EventHighJump]+5 {
		t.Errorf("expected high jump to add 5min setup, got %d", highJump)
	}
}

func TestResolveVenueRedirectsYoungestShotPut(t *testing.T) {
	venue, ok := ResolveVenue(EventShotPut, CategoryG10, DefaultVenueResolutionConfig)
	if !ok {
		t.Fatal("expected shot put to resolve a venue")
	}
	if venue != VenueShotPutCircle2 {
		t.Errorf("expected youngest-category shot put to redirect to the secondary circle, got %s", venue)
	}

	venue, _ = ResolveVenue(EventShotPut, CategoryMS, DefaultVenueResolutionConfig)
	if venue != VenueShotPutCircle {
		t.Errorf("expected senior shot put to stay on the primary circle, got %s", venue)
	}
}

func TestResolveVenueIgnoresSecondaryWhenDisabled(t *testing.T) {
	cfg := VenueResolutionConfig{UseSecondaryVenues: false}
	venue, _ := ResolveVenue(EventShotPut, CategoryG10, cfg)
	if venue != VenueShotPutCircle {
		t.Errorf("expected secondary venue routing disabled, got %s", venue)
	}
}

func TestGetHurdleSpecUnknownPairFails(t *testing.T) {
	if _, ok := GetHurdleSpec(EventM60, CategoryG13); ok {
		t.Error("expected a non-hurdles event to have no hurdle spec")
	}
	if _, ok := GetHurdleSpec(EventM60Hurdles, CategoryG11); !ok {
		t.Error("expected M60Hurdles/G11 to have a hurdle spec")
	}
}

func TestCategoryAgeOrderUnknownSortsLast(t *testing.T) {
	if CategoryAgeOrder(CategoryFIFA) != 99 {
		t.Errorf("expected FIFA category to sort last, got order %d", CategoryAgeOrder(CategoryFIFA))
	}
	if CategoryAgeOrder(CategoryG10) >= CategoryAgeOrder(CategoryMS) {
		t.Error("expected a recruit category to sort before senior")
	}
}

func TestEventGroupDurationTrackTakesMaxFieldSums(t *testing.T) {
	track := &EventGroup{
		EventType: EventM60,
		Events: []*Event{
			{DurationMinutes: 5},
			{DurationMinutes: 10},
		},
	}
	if got := track.DurationMinutes(); got != 10 {
		t.Errorf("expected track group duration to be the max of its events, got %d", got)
	}

	field := &EventGroup{
		EventType: EventShotPut,
		Events: []*Event{
			{DurationMinutes: 5},
			{DurationMinutes: 10},
		},
	}
	if got := field.DurationMinutes(); got != 15 {
		t.Errorf("expected field group duration to be the sum of its events, got %d", got)
	}
}
