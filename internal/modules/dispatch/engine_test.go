package dispatch

import (
	"testing"

	"ridedispatch/internal/modules/driver"
	"ridedispatch/internal/modules/zone"
)

func TestNearestPicksMinimumDistance(t *testing.T) {
	// Request from the airport (50); drivers sit at 10, 20, and 50. The
	// zero-distance driver must win over scores 40 and 30.
	cands := []driver.Driver{
		{ID: 1, DriverID: "DRV-A", Location: zone.DowntownCore},
		{ID: 2, DriverID: "DRV-B", Location: zone.CentralStation},
		{ID: 3, DriverID: "DRV-C", Location: zone.AirportTerminal},
	}
	best, dist, ok := nearest(cands, zone.AirportTerminal)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.DriverID != "DRV-C" {
		t.Errorf("expected DRV-C, got %s", best.DriverID)
	}
	if dist != 0 {
		t.Errorf("expected distance 0, got %d", dist)
	}
}

func TestNearestTieBreaksOnLowestID(t *testing.T) {
	// Downtown (10) and University (30) are both 10 away from Central
	// Station (20); the lower primary key must win regardless of slice order.
	cands := []driver.Driver{
		{ID: 7, DriverID: "DRV-HIGH", Location: zone.UniversityArea},
		{ID: 3, DriverID: "DRV-LOW", Location: zone.DowntownCore},
	}
	best, dist, ok := nearest(cands, zone.CentralStation)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.DriverID != "DRV-LOW" {
		t.Errorf("expected lowest-id driver to win tie, got %s", best.DriverID)
	}
	if dist != 10 {
		t.Errorf("expected distance 10, got %d", dist)
	}
}

func TestNearestSkipsUnknownZones(t *testing.T) {
	cands := []driver.Driver{
		{ID: 1, DriverID: "DRV-LOST", Location: "Atlantis"},
		{ID: 2, DriverID: "DRV-FAR", Location: zone.AirportTerminal},
	}
	best, _, ok := nearest(cands, zone.DowntownCore)
	if !ok {
		t.Fatal("expected the known-zone driver to qualify")
	}
	if best.DriverID != "DRV-FAR" {
		t.Errorf("expected DRV-FAR, got %s", best.DriverID)
	}
}

func TestNearestAllUnknownIsNoMatch(t *testing.T) {
	cands := []driver.Driver{
		{ID: 1, DriverID: "DRV-LOST", Location: "Atlantis"},
		{ID: 2, DriverID: "DRV-ALSO-LOST", Location: "El Dorado"},
	}
	if _, _, ok := nearest(cands, zone.DowntownCore); ok {
		t.Error("expected no match when every driver's zone is unknown")
	}
}

func TestNearestEmptySet(t *testing.T) {
	if _, _, ok := nearest(nil, zone.DowntownCore); ok {
		t.Error("expected no match for an empty driver set")
	}
}
