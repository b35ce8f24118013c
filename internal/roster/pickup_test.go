package roster

import (
	"testing"
	"time"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestResolvePickupTimePrefersDeliverySlot(t *testing.T) {
	c := &models.Case{
		DeliveryDate: datePtr(2025, time.June, 10),
		DeliveryTime: strPtr("08:30"),
		FuneralDate:  datePtr(2025, time.June, 10),
		FuneralTime:  strPtr("11:00"),
	}

	got := ResolvePickupTime(c, nil, time.Now())
	want := time.Date(2025, time.June, 10, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected delivery slot %v, got %v", want, got)
	}
}

func TestResolvePickupTimeFallsBackToFuneralLead(t *testing.T) {
	c := &models.Case{
		FuneralDate: datePtr(2025, time.June, 10),
		FuneralTime: strPtr("11:00"),
	}

	got := ResolvePickupTime(c, nil, time.Now())
	want := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected funeral time minus lead %v, got %v", want, got)
	}
}

func TestResolvePickupTimeMalformedClockFallsThrough(t *testing.T) {
	requested := time.Date(2025, time.June, 9, 15, 0, 0, 0, time.UTC)
	c := &models.Case{
		DeliveryDate: datePtr(2025, time.June, 10),
		DeliveryTime: strPtr("around noon"),
		FuneralDate:  datePtr(2025, time.June, 10),
	}

	got := ResolvePickupTime(c, &requested, time.Now())
	if !got.Equal(requested) {
		t.Fatalf("expected caller-supplied time %v, got %v", requested, got)
	}
}

func TestResolvePickupTimeDefaultsToNow(t *testing.T) {
	now := time.Date(2025, time.June, 9, 12, 0, 0, 0, time.UTC)

	got := ResolvePickupTime(&models.Case{}, nil, now)
	if !got.Equal(now) {
		t.Fatalf("expected now %v, got %v", now, got)
	}
}
