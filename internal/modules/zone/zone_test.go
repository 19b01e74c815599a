package zone

import (
	"errors"
	"testing"
	"time"
)

func TestCoordinate(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want int
	}{
		{"downtown", DowntownCore, 10},
		{"central station", CentralStation, 20},
		{"university", UniversityArea, 30},
		{"suburbs", TheSuburbs, 40},
		{"airport", AirportTerminal, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coordinate(tt.zone)
			if err != nil {
				t.Fatalf("Coordinate(%q): %v", tt.zone, err)
			}
			if got != tt.want {
				t.Errorf("Coordinate(%q) = %d, want %d", tt.zone, got, tt.want)
			}
		})
	}
}

func TestCoordinateUnknown(t *testing.T) {
	_, err := Coordinate("Atlantis")
	if !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("expected ErrUnknownZone, got %v", err)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same zone", DowntownCore, DowntownCore, 0},
		{"adjacent", DowntownCore, CentralStation, 10},
		{"full span", DowntownCore, AirportTerminal, 40},
		{"reversed", AirportTerminal, DowntownCore, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Distance(%q, %q): %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceUnknown(t *testing.T) {
	if _, err := Distance("Atlantis", DowntownCore); !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("expected ErrUnknownZone for unknown source, got %v", err)
	}
	if _, err := Distance(DowntownCore, "Atlantis"); !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("expected ErrUnknownZone for unknown destination, got %v", err)
	}
}

func TestServiceDurationZeroDistance(t *testing.T) {
	if got := ServiceDuration(TheSuburbs, TheSuburbs); got != MinDuration {
		t.Errorf("ServiceDuration(A, A) = %v, want %v", got, MinDuration)
	}
}

func TestServiceDurationSymmetry(t *testing.T) {
	d1 := ServiceDuration(DowntownCore, AirportTerminal)
	d2 := ServiceDuration(AirportTerminal, DowntownCore)
	if d1 != d2 {
		t.Errorf("ServiceDuration is not symmetric: %v vs %v", d1, d2)
	}
}

func TestServiceDurationDistancePlusFloor(t *testing.T) {
	// Central Station (20) to Airport Terminal (50): distance 30 → 32s.
	want := 30*time.Second + MinDuration
	if got := ServiceDuration(CentralStation, AirportTerminal); got != want {
		t.Errorf("ServiceDuration = %v, want %v", got, want)
	}
}

func TestServiceDurationUnknownFallsBack(t *testing.T) {
	if got := ServiceDuration("Atlantis", DowntownCore); got != FallbackDuration {
		t.Errorf("ServiceDuration with unknown zone = %v, want %v", got, FallbackDuration)
	}
}

func TestNamesCoversTable(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("expected 5 zones, got %d", len(names))
	}
	for _, n := range names {
		if _, err := Coordinate(n); err != nil {
			t.Errorf("Names() returned unresolvable zone %q", n)
		}
	}
}
