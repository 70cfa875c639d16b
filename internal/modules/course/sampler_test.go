package course

import (
	"math"
	"math/rand"
	"testing"

	"cycle-course-recommender/internal/geodesic"
	"cycle-course-recommender/internal/models"
)

var seoul = models.Coordinate{Lat: 37.50, Lon: 127.00}

func TestSampleDestinationsStayInBand(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 0
	for dest := range SampleDestinations(rng, seoul, 5, 200, 0.30) {
		n++
		km := geodesic.Distance(seoul, dest) / 1000
		if km < 3.5*0.999 || km > 6.5*1.001 {
			t.Errorf("sample %d at %.3f km; want within [3.5, 6.5]", n, km)
		}
	}
	if n != 200 {
		t.Errorf("got %d samples; want 200", n)
	}
}

func TestSampleDestinationsReproducible(t *testing.T) {
	var a, b []models.Coordinate
	for p := range SampleDestinations(rand.New(rand.NewSource(42)), seoul, 10, 20, 0.30) {
		a = append(a, p)
	}
	for p := range SampleDestinations(rand.New(rand.NewSource(42)), seoul, 10, 20, 0.30) {
		b = append(b, p)
	}
	if len(a) != len(b) {
		t.Fatalf("len = %d, %d; want equal", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sample %d = %v, %v; want equal", i, a[i], b[i])
		}
	}
}

func TestSampleDestinationsStopsEarly(t *testing.T) {
	rng := &countingRand{src: rand.New(rand.NewSource(1))}
	n := 0
	for range SampleDestinations(rng, seoul, 5, 80, 0.30) {
		n++
		if n == 3 {
			break
		}
	}
	// two draws (bearing, radius) per yielded sample
	if rng.draws != 6 {
		t.Errorf("draws = %d; want 6", rng.draws)
	}
}

func TestSampleDestinationsBearingAndRadius(t *testing.T) {
	// Float64 == 0 gives bearing 0 (due north) at the inner radius.
	var got []models.Coordinate
	for p := range SampleDestinations(constRand(0), seoul, 5, 1, 0.30) {
		got = append(got, p)
	}
	if len(got) != 1 {
		t.Fatalf("got %d samples; want 1", len(got))
	}
	if got[0].Lat <= seoul.Lat || math.Abs(got[0].Lon-seoul.Lon) > 1e-9 {
		t.Errorf("sample = %v; want due north of %v", got[0], seoul)
	}
	if d := geodesic.Distance(seoul, got[0]); math.Abs(d-3500) > 3.5 {
		t.Errorf("distance = %.1f m; want 3500", d)
	}
}

func TestSampleDestinationsZeroSamples(t *testing.T) {
	for p := range SampleDestinations(constRand(0.5), seoul, 5, 0, 0.30) {
		t.Errorf("unexpected sample %v", p)
	}
}

func TestAcceptDistance(t *testing.T) {
	tests := []struct {
		meters    float64
		targetKm  float64
		tolerance float64
		want      bool
	}{
		{5000, 5, 0.30, true},
		{3501, 5, 0.30, true},
		{6499, 5, 0.30, true},
		{3499, 5, 0.30, false},
		{6501, 5, 0.30, false},
		{0, 5, 0.30, false},
		// 0.5 keeps the band edges exact
		{1000, 2, 0.5, true},
		{3000, 2, 0.5, true},
		{999.9, 2, 0.5, false},
		{3000.1, 2, 0.5, false},
	}
	for _, tt := range tests {
		got := AcceptDistance(tt.meters, tt.targetKm, tt.tolerance)
		if got != tt.want {
			t.Errorf("AcceptDistance(%v, %v, %v) = %v; want %v", tt.meters, tt.targetKm, tt.tolerance, got, tt.want)
		}
	}
}
