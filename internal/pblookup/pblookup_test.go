package pblookup

import (
	"context"
	"testing"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

func TestUnavailableSourceAlwaysErrors(t *testing.T) {
	var src Source = Unavailable{}
	_, err := src.Lookup(context.Background(), "Kari Nordmann", scheduler.EventM60)
	if err == nil {
		t.Fatal("expected Unavailable.Lookup to always error")
	}
}

func TestNewWithoutRedisAddrNeverCaches(t *testing.T) {
	client, err := New(Unavailable{}, "")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	_, err = client.Lookup(context.Background(), "Kari Nordmann", scheduler.EventM60)
	if err == nil {
		t.Fatal("expected the lookup to surface the Unavailable source's error")
	}
}

func TestNewRejectsInvalidRedisAddr(t *testing.T) {
	if _, err := New(Unavailable{}, "not a valid redis url \x00"); err == nil {
		t.Fatal("expected an invalid redis address to fail New")
	}
}

type stubSource struct {
	rec *Record
}

func (s stubSource) Lookup(ctx context.Context, athleteName string, eventType scheduler.EventType) (*Record, error) {
	return s.rec, nil
}

func TestLookupReturnsSourceRecordWithoutCache(t *testing.T) {
	want := &Record{AthleteName: "Kari Nordmann", EventType: scheduler.EventM60, Mark: "8.1", Date: "2026-05-01"}
	client, err := New(stubSource{rec: want}, "")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	got, err := client.Lookup(context.Background(), "Kari Nordmann", scheduler.EventM60)
	if err != nil {
		t.Fatal(err)
	}
	if got.Mark != want.Mark {
		t.Errorf("expected mark %q, got %q", want.Mark, got.Mark)
	}
}
