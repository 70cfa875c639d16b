package course

import (
	"iter"

	"cycle-course-recommender/internal/geodesic"
	"cycle-course-recommender/internal/models"
)

// RandomSource is the randomness the sampler consumes. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// radiusBand returns the [min, max] band around target for a tolerance fraction.
func radiusBand(target, tolerance float64) (float64, float64) {
	return target * (1 - tolerance), target * (1 + tolerance)
}

// SampleDestinations lazily yields samples destinations around start. Each
// one is projected along a uniform bearing in [0, 360) at a uniform radius
// inside the tolerance band of targetKm. Points are not deduplicated.
// Iterating again continues to consume rng; pass a fresh source to restart.
func SampleDestinations(rng RandomSource, start models.Coordinate, targetKm float64, samples int, tolerance float64) iter.Seq[models.Coordinate] {
	rMin, rMax := radiusBand(targetKm, tolerance)
	return func(yield func(models.Coordinate) bool) {
		for i := 0; i < samples; i++ {
			bearing := rng.Float64() * 360
			radius := rMin + rng.Float64()*(rMax-rMin)
			if !yield(geodesic.Destination(start, bearing, radius)) {
				return
			}
		}
	}
}
