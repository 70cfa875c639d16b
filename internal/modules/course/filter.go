package course

// AcceptDistance reports whether a routed distance (meters) lies inside the
// inclusive tolerance band around targetKm. It runs before any elevation
// lookup is spent on the candidate.
func AcceptDistance(reportedMeters, targetKm, tolerance float64) bool {
	minD, maxD := radiusBand(targetKm*1000, tolerance)
	return minD <= reportedMeters && reportedMeters <= maxD
}
