package audio

// dcBlockerPole controls the DC blocker's cutoff, roughly 8 Hz at 44.1 kHz.
//
// Reference: Julius O. Smith III, "Introduction to Digital Filters with
// Audio Applications" (DC blocker form y[n] = x[n] - x[n-1] + R*y[n-1]).
const dcBlockerPole = 0.995

// RemoveDC applies a first-order DC blocking filter and returns a new
// slice. Recordings from cheap capture paths often carry a constant
// offset that would otherwise leak into RMS amplitude measurements.
func RemoveDC(samples []float64) []float64 {
	out := make([]float64, len(samples))
	if len(samples) == 0 {
		return out
	}

	x1 := 0.0
	y1 := 0.0
	for i, x := range samples {
		y := x - x1 + dcBlockerPole*y1
		out[i] = y
		x1 = x
		y1 = y
	}

	return out
}
